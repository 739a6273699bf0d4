package orbit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

func TestMapper_FistRotatesAzimuth(t *testing.T) {
	c := NewController()
	m := NewMapper(c)

	delta := detector.Point3D{X: 0.02, Y: 0.01}
	m.Apply(gesture.Gesture{Kind: gesture.KindFist, Delta: &delta})

	want := -0.02 * RotateSensitivity
	if math.Abs(c.Azimuth()-want) > 1e-9 {
		t.Errorf("azimuth = %f, want %f", c.Azimuth(), want)
	}

	// Only the horizontal component drives the azimuth.
	c.SetAzimuth(0)
	vertical := detector.Point3D{Y: 0.5}
	m.Apply(gesture.Gesture{Kind: gesture.KindFist, Delta: &vertical})
	if c.Azimuth() != 0 {
		t.Errorf("azimuth = %f, want 0 for a vertical drag", c.Azimuth())
	}
}

func TestMapper_FistWithoutDeltaIsStationary(t *testing.T) {
	c := NewController()
	m := NewMapper(c)
	c.SetAzimuth(1.5)

	// First frame of a new grip: no delta, no move.
	m.Apply(gesture.Gesture{Kind: gesture.KindFist})

	if c.Azimuth() != 1.5 {
		t.Errorf("azimuth = %f, want 1.5", c.Azimuth())
	}
}

func TestMapper_PinchAndSpreadZoom(t *testing.T) {
	c := NewController()
	m := NewMapper(c)
	c.SetDistance(10)

	// Pinch (hands together) zooms out.
	m.Apply(gesture.Gesture{Kind: gesture.KindPinch, Strength: 0.5})
	if math.Abs(c.Distance()-(10+0.5*ZoomStep)) > 1e-9 {
		t.Errorf("distance after pinch = %f, want %f", c.Distance(), 10+0.5*ZoomStep)
	}

	// Spread (hands apart) zooms in.
	c.SetDistance(10)
	m.Apply(gesture.Gesture{Kind: gesture.KindSpread, Strength: 1})
	if math.Abs(c.Distance()-(10-ZoomStep)) > 1e-9 {
		t.Errorf("distance after spread = %f, want %f", c.Distance(), 10-ZoomStep)
	}
}

func TestMapper_NoneOnlyDamps(t *testing.T) {
	c := NewController()
	m := NewMapper(c)
	c.SetAzimuth(2.0)
	c.SetDistance(8.0)

	m.Apply(gesture.None)
	if c.Azimuth() != 2.0 || c.Distance() != 8.0 {
		t.Errorf("None moved the camera to (%f, %f)", c.Azimuth(), c.Distance())
	}

	// But a glide in progress keeps easing through None ticks.
	c.GlideTo(0, 8.0)
	m.Apply(gesture.None)
	if c.Azimuth() == 2.0 {
		t.Error("expected the damping pass to run on a None tick")
	}
}

func TestMapper_DistanceNeverLeavesBounds(t *testing.T) {
	c := NewController()
	m := NewMapper(c)

	rng := rand.New(rand.NewSource(1))
	kinds := []gesture.Kind{gesture.KindPinch, gesture.KindSpread}

	// Any sequence of zoom gestures keeps the distance inside its bounds.
	for i := 0; i < 10000; i++ {
		m.Apply(gesture.Gesture{
			Kind:     kinds[rng.Intn(len(kinds))],
			Strength: rng.Float64(),
		})
		if d := c.Distance(); d < MinDistance || d > MaxDistance {
			t.Fatalf("distance %f left [%f, %f] at step %d", d, MinDistance, MaxDistance, i)
		}
	}
}
