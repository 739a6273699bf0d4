// Package orbit maps recognized gestures onto a bounded orbiting viewpoint.
//
// The package owns no rendering: it drives whatever 3D engine sits behind
// the Camera interface, typically a browser scene fed over the tracking
// WebSocket.
package orbit

// Viewpoint bounds and tuning. Azimuth is unbounded; orbit distance is
// clamped so the point cloud can never be zoomed out of sight.
const (
	// MinDistance is the closest allowed orbit distance.
	MinDistance = 3.0
	// MaxDistance is the farthest allowed orbit distance.
	MaxDistance = 20.0
	// DampingFactor eases the viewpoint toward its target each render tick.
	DampingFactor = 0.05
	// RotateSensitivity converts a fist drag, in normalized image units,
	// into radians of azimuth.
	RotateSensitivity = 15.0
	// ZoomStep is the distance change applied per tick at full gesture
	// strength.
	ZoomStep = 0.5
)

// Camera is the contract the gesture pipeline needs from a 3D scene: a
// readable and writable azimuth angle and orbit distance, plus a per-tick
// damping pass. Implementations must clamp distance to
// [MinDistance, MaxDistance] on every write.
type Camera interface {
	// Azimuth returns the horizontal orbit angle in radians.
	Azimuth() float64

	// SetAzimuth rotates the viewpoint immediately.
	SetAzimuth(radians float64)

	// Distance returns the current orbit distance.
	Distance() float64

	// SetDistance zooms the viewpoint immediately, clamped.
	SetDistance(d float64)

	// DampingStep advances any eased motion by one render tick. It must be
	// invoked every tick whether or not a gesture is active, so that
	// externally-initiated moves stay smooth.
	DampingStep()
}

// clamp bounds an orbit distance.
func clamp(d float64) float64 {
	if d < MinDistance {
		return MinDistance
	}
	if d > MaxDistance {
		return MaxDistance
	}
	return d
}
