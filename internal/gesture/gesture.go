package gesture

import "github.com/ayusman/mudra/internal/detector"

// Kind identifies the gesture recognized for one vision frame.
type Kind string

const (
	// KindNone means no actionable gesture this frame.
	KindNone Kind = "none"
	// KindFist is a single closed hand dragging the viewpoint.
	KindFist Kind = "fist"
	// KindPinch is two pinched hands moving together (zoom out).
	KindPinch Kind = "pinch"
	// KindSpread is two pinched hands moving apart (zoom in).
	KindSpread Kind = "spread"
)

// Gesture is the classification result for one vision frame.
// Exactly one gesture (or none) is produced per frame.
type Gesture struct {
	Kind Kind `json:"kind"`

	// Position is the palm center for fist gestures.
	Position detector.Point3D `json:"position"`

	// Delta is the palm-center movement since the previous frame. It is nil
	// on the first frame of a new grip so that re-gripping never causes a
	// jump in the viewpoint.
	Delta *detector.Point3D `json:"delta,omitempty"`

	// Strength in [0,1] scales pinch and spread zoom moves.
	Strength float64 `json:"strength,omitempty"`
}

// None is the explicit no-gesture value. Downstream consumers must treat it
// as a stop signal, never as "reuse the previous gesture".
var None = Gesture{Kind: KindNone}

// State is the cross-frame memory of the classifier. At most one of the
// single-hand or two-hand halves is live at a time: entering either mode
// clears the other's fields.
type State struct {
	// LastPalm is the palm center of the previous single-hand fist frame.
	LastPalm *detector.Point3D

	// LastSpan is the inter-palm distance of the previous two-hand frame.
	// It is refreshed every two-hand frame, pinched or not, so a gated frame
	// never leaves a stale zoom baseline behind.
	LastSpan *float64

	// LastCenter is the midpoint between the two palms of the previous
	// two-hand frame, refreshed together with LastSpan.
	LastCenter *detector.Point3D
}
