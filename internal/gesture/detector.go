package gesture

import (
	"sync"

	"github.com/ayusman/mudra/internal/detector"
)

// Two-hand zoom tuning.
const (
	// SpanDeadZone is the minimum inter-palm distance change, per frame,
	// before a zoom gesture is emitted. Changes at or below it are noise.
	SpanDeadZone = 0.008
	// StrengthGain converts a span delta into a [0,1] gesture strength.
	StrengthGain = 12.0
)

// Classify turns one frame's hands into exactly one gesture and the next
// cross-frame state. It is a pure function of its inputs: feeding the same
// hands and state always produces the same result.
//
// The mode is implied by the hand count. Zero hands clears everything. One
// hand is fist-drag mode. Two or more hands is zoom mode; only the first two
// hands, in upstream detection order, participate.
func Classify(hands []detector.HandLandmarks, st State) (Gesture, State) {
	switch len(hands) {
	case 0:
		return None, State{}
	case 1:
		return classifySingle(&hands[0], st)
	default:
		return classifyPair(&hands[0], &hands[1], st)
	}
}

// classifySingle handles fist-drag mode for a single visible hand.
func classifySingle(hand *detector.HandLandmarks, st State) (Gesture, State) {
	// Entering single-hand mode invalidates any two-hand baseline.
	st.LastSpan = nil
	st.LastCenter = nil

	if !IsFist(hand) {
		// Open hand releases the grip so the user can reposition before
		// grabbing again.
		st.LastPalm = nil
		return None, st
	}

	pos := PalmCenter(hand)
	g := Gesture{Kind: KindFist, Position: pos}
	if st.LastPalm != nil {
		g.Delta = &detector.Point3D{
			X: pos.X - st.LastPalm.X,
			Y: pos.Y - st.LastPalm.Y,
			Z: pos.Z - st.LastPalm.Z,
		}
	}
	st.LastPalm = &pos
	return g, st
}

// classifyPair handles two-hand zoom mode.
func classifyPair(first, second *detector.HandLandmarks, st State) (Gesture, State) {
	// Entering two-hand mode invalidates the single-hand grip.
	st.LastPalm = nil

	p1 := PalmCenter(first)
	p2 := PalmCenter(second)
	span := dist(p1, p2)
	center := detector.Point3D{
		X: (p1.X + p2.X) / 2,
		Y: (p1.Y + p2.Y) / 2,
		Z: (p1.Z + p2.Z) / 2,
	}

	g := None
	// Zoom is gated on both hands being pinched, but the span baseline is
	// refreshed every frame regardless, so the first both-pinched frame
	// measures movement against the previous frame rather than against
	// whenever the hands were last pinched.
	if IsPinched(first) && IsPinched(second) && st.LastSpan != nil {
		g = zoomGesture(span - *st.LastSpan)
	}

	st.LastSpan = &span
	st.LastCenter = &center
	return g, st
}

// zoomGesture converts a span delta into a zoom gesture. Changes whose
// magnitude is at or inside the dead zone yield None; the boundary itself
// is not a gesture.
func zoomGesture(delta float64) Gesture {
	switch {
	case delta > SpanDeadZone:
		return Gesture{Kind: KindSpread, Strength: min(1, delta*StrengthGain)}
	case delta < -SpanDeadZone:
		return Gesture{Kind: KindPinch, Strength: min(1, -delta*StrengthGain)}
	}
	return None
}

// Detector owns the cross-frame State and feeds it through Classify once per
// vision frame. It is safe for concurrent use, though the vision loop is the
// only expected caller.
type Detector struct {
	mu    sync.Mutex
	state State
}

// NewDetector creates a Detector with empty state.
func NewDetector() *Detector {
	return &Detector{}
}

// Feed classifies one frame's hands and advances the internal state.
func (d *Detector) Feed(hands []detector.HandLandmarks) Gesture {
	d.mu.Lock()
	defer d.mu.Unlock()

	g, next := Classify(hands, d.state)
	d.state = next
	return g
}

// Reset clears all cross-frame memory. It is called when tracking is
// disabled so that no delta survives into the next session.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = State{}
}
