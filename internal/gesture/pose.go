// Package gesture classifies per-frame hand landmarks into viewpoint-control gestures.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// PinchThreshold is the maximum thumb-to-index fingertip distance, in
// normalized image coordinates, for a hand to count as pinched.
const PinchThreshold = 0.1

// palmLandmarks are the five landmarks averaged into the palm center.
var palmLandmarks = [5]int{
	detector.Wrist,
	detector.IndexMCP,
	detector.MiddleMCP,
	detector.RingMCP,
	detector.PinkyMCP,
}

// fingerPairs maps each non-thumb fingertip to its MCP joint.
// The thumb is deliberately excluded from the fist check: a hand with four
// fingers curled but the thumb extended still counts as a fist.
var fingerPairs = [4][2]int{
	{detector.IndexTip, detector.IndexMCP},
	{detector.MiddleTip, detector.MiddleMCP},
	{detector.RingTip, detector.RingMCP},
	{detector.PinkyTip, detector.PinkyMCP},
}

// IsPinched reports whether the thumb tip and index fingertip are touching.
func IsPinched(hand *detector.HandLandmarks) bool {
	return dist(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip]) < PinchThreshold
}

// IsFist reports whether the hand is closed. A finger counts as curled when
// its tip sits below its MCP joint in image coordinates (y grows downward).
func IsFist(hand *detector.HandLandmarks) bool {
	for _, pair := range fingerPairs {
		tip, mcp := hand.Points[pair[0]], hand.Points[pair[1]]
		if tip.Y <= mcp.Y {
			return false
		}
	}
	return true
}

// PalmCenter returns the centroid of the wrist and the four finger MCP
// joints, a stable proxy for where the palm is in the frame.
func PalmCenter(hand *detector.HandLandmarks) detector.Point3D {
	var c detector.Point3D
	for _, i := range palmLandmarks {
		p := hand.Points[i]
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(palmLandmarks))
	c.X /= n
	c.Y /= n
	c.Z /= n
	return c
}

// dist calculates the Euclidean distance between two landmarks.
func dist(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
