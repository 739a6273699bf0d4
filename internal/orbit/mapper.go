package orbit

import "github.com/ayusman/mudra/internal/gesture"

// Mapper translates one gesture per render tick into camera moves. It
// mutates only the Camera; gesture state belongs to the vision side.
type Mapper struct {
	cam Camera
}

// NewMapper creates a Mapper driving the given camera.
func NewMapper(cam Camera) *Mapper {
	return &Mapper{cam: cam}
}

// Apply performs the moves for one gesture and then runs the damping pass.
// A None gesture changes nothing itself, but the damping pass still runs so
// glides keep easing while no hands are tracked. A fist without a delta is
// the first frame of a new grip and leaves the azimuth alone.
func (m *Mapper) Apply(g gesture.Gesture) {
	switch g.Kind {
	case gesture.KindFist:
		if g.Delta != nil {
			m.cam.SetAzimuth(m.cam.Azimuth() - g.Delta.X*RotateSensitivity)
		}
	case gesture.KindPinch:
		m.cam.SetDistance(m.cam.Distance() + g.Strength*ZoomStep)
	case gesture.KindSpread:
		m.cam.SetDistance(m.cam.Distance() - g.Strength*ZoomStep)
	}
	m.cam.DampingStep()
}
