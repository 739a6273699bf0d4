package orbit

import "sync"

// DefaultDistance is the orbit distance a fresh controller starts at.
const DefaultDistance = 10.0

// Controller is the default Camera implementation. It tracks a current and a
// target value per axis: gesture writes move both at once, GlideTo moves
// only the target and lets DampingStep ease the current value toward it.
// Preset recall and any other externally-initiated motion go through GlideTo.
type Controller struct {
	mu             sync.Mutex
	azimuth        float64
	targetAzimuth  float64
	distance       float64
	targetDistance float64
}

// NewController creates a Controller at azimuth 0 and the default distance.
func NewController() *Controller {
	return &Controller{
		distance:       DefaultDistance,
		targetDistance: DefaultDistance,
	}
}

// Azimuth returns the current horizontal orbit angle in radians.
func (c *Controller) Azimuth() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.azimuth
}

// SetAzimuth rotates immediately and cancels any azimuth glide in progress.
func (c *Controller) SetAzimuth(radians float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.azimuth = radians
	c.targetAzimuth = radians
}

// Distance returns the current orbit distance.
func (c *Controller) Distance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

// SetDistance zooms immediately, clamped, and cancels any distance glide.
func (c *Controller) SetDistance(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d = clamp(d)
	c.distance = d
	c.targetDistance = d
}

// GlideTo retargets the viewpoint without moving it; successive DampingStep
// calls ease the current values toward the target.
func (c *Controller) GlideTo(azimuth, distance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targetAzimuth = azimuth
	c.targetDistance = clamp(distance)
}

// DampingStep moves each axis a fixed fraction of its remaining way toward
// the target. A no-op when current and target already agree.
func (c *Controller) DampingStep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.azimuth += (c.targetAzimuth - c.azimuth) * DampingFactor
	c.distance += (c.targetDistance - c.distance) * DampingFactor
}
