package orbit

import (
	"math"
	"testing"
)

func TestController_Defaults(t *testing.T) {
	c := NewController()

	if c.Azimuth() != 0 {
		t.Errorf("azimuth = %f, want 0", c.Azimuth())
	}
	if c.Distance() != DefaultDistance {
		t.Errorf("distance = %f, want %f", c.Distance(), DefaultDistance)
	}
}

func TestController_SetDistanceClamps(t *testing.T) {
	c := NewController()

	c.SetDistance(1.0)
	if c.Distance() != MinDistance {
		t.Errorf("distance = %f, want clamped to %f", c.Distance(), MinDistance)
	}

	c.SetDistance(100.0)
	if c.Distance() != MaxDistance {
		t.Errorf("distance = %f, want clamped to %f", c.Distance(), MaxDistance)
	}

	c.SetDistance(7.5)
	if c.Distance() != 7.5 {
		t.Errorf("distance = %f, want 7.5", c.Distance())
	}
}

func TestController_DirectWritesCancelGlide(t *testing.T) {
	c := NewController()

	c.GlideTo(2.0, 15.0)
	c.SetAzimuth(1.0)
	c.SetDistance(5.0)

	// With current and target aligned, damping must not move anything.
	for i := 0; i < 10; i++ {
		c.DampingStep()
	}

	if c.Azimuth() != 1.0 {
		t.Errorf("azimuth = %f, want 1.0", c.Azimuth())
	}
	if c.Distance() != 5.0 {
		t.Errorf("distance = %f, want 5.0", c.Distance())
	}
}

func TestController_DampingConverges(t *testing.T) {
	c := NewController()
	c.SetAzimuth(0)
	c.SetDistance(10)

	c.GlideTo(1.0, 5.0)

	// A single step covers the damping fraction of the remaining way.
	c.DampingStep()
	if math.Abs(c.Azimuth()-DampingFactor) > 1e-9 {
		t.Errorf("azimuth after one step = %f, want %f", c.Azimuth(), DampingFactor)
	}
	if math.Abs(c.Distance()-(10-5*DampingFactor)) > 1e-9 {
		t.Errorf("distance after one step = %f, want %f", c.Distance(), 10-5*DampingFactor)
	}

	// Many steps approach the target.
	for i := 0; i < 500; i++ {
		c.DampingStep()
	}
	if math.Abs(c.Azimuth()-1.0) > 1e-3 {
		t.Errorf("azimuth = %f, want ~1.0", c.Azimuth())
	}
	if math.Abs(c.Distance()-5.0) > 1e-3 {
		t.Errorf("distance = %f, want ~5.0", c.Distance())
	}
}

func TestController_GlideTargetClamped(t *testing.T) {
	c := NewController()
	c.GlideTo(0, 1000)

	for i := 0; i < 2000; i++ {
		c.DampingStep()
		if d := c.Distance(); d < MinDistance || d > MaxDistance {
			t.Fatalf("distance %f left [%f, %f] during glide", d, MinDistance, MaxDistance)
		}
	}
}
