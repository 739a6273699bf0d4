package detector

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestWireHand_ToHandLandmarks(t *testing.T) {
	payload := `{
		"points": [
			{"x": 0.1, "y": 0.2, "z": -0.05},
			{"x": 0.3, "y": 0.4, "z": 0.0}
		],
		"handedness": "Left",
		"score": 0.87
	}`

	var h wireHand
	if err := json.Unmarshal([]byte(payload), &h); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	lm := h.toHandLandmarks()

	if lm.Handedness != "Left" {
		t.Errorf("handedness = %q, want %q", lm.Handedness, "Left")
	}
	if lm.Score != 0.87 {
		t.Errorf("score = %f, want 0.87", lm.Score)
	}
	if lm.Points[Wrist].X != 0.1 || lm.Points[Wrist].Z != -0.05 {
		t.Errorf("wrist = %+v", lm.Points[Wrist])
	}
	if lm.Points[ThumbCMC].Y != 0.4 {
		t.Errorf("thumb CMC = %+v", lm.Points[ThumbCMC])
	}
	// Missing points stay zero rather than erroring.
	if lm.Points[PinkyTip] != (Point3D{}) {
		t.Errorf("pinky tip = %+v, want zero value", lm.Points[PinkyTip])
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("len = %d, want 0", len(hands))
	}

	m.SetHands([]HandLandmarks{FistAt(Point3D{X: 0.5, Y: 0.5})})
	hands, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("len = %d, want 1", len(hands))
	}

	wantErr := errors.New("detector offline")
	m.SetError(wantErr)
	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}
