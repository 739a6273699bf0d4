package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to script the per-frame detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture hands for tests. Each constructor places a stylized hand so that
// its palm centroid (wrist plus the four finger MCP joints) lands exactly on
// the given point, letting tests move hands around the frame and predict the
// resulting palm centers.

// palmOffsets position the wrist and MCP joints around the palm center.
// They sum to zero per coordinate so the centroid is the center itself.
var palmOffsets = [5]Point3D{
	{X: 0.00, Y: 0.12},   // wrist
	{X: 0.06, Y: -0.03},  // index MCP
	{X: 0.02, Y: -0.04},  // middle MCP
	{X: -0.02, Y: -0.04}, // ring MCP
	{X: -0.06, Y: -0.01}, // pinky MCP
}

// baseHand lays out the palm around center and fills the thumb chain.
func baseHand(center Point3D) HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	palm := [5]int{Wrist, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	for i, idx := range palm {
		hand.Points[idx] = Point3D{
			X: center.X + palmOffsets[i].X,
			Y: center.Y + palmOffsets[i].Y,
			Z: center.Z + palmOffsets[i].Z,
		}
	}

	// Thumb base; the tip is placed by each fixture.
	hand.Points[ThumbCMC] = Point3D{X: center.X + 0.06, Y: center.Y + 0.08, Z: center.Z}
	hand.Points[ThumbMCP] = Point3D{X: center.X + 0.10, Y: center.Y + 0.05, Z: center.Z}
	hand.Points[ThumbIP] = Point3D{X: center.X + 0.13, Y: center.Y + 0.03, Z: center.Z}

	return hand
}

// fingerChains lists PIP, DIP and tip per non-thumb finger.
var fingerChains = [4][3]int{
	{IndexPIP, IndexDIP, IndexTip},
	{MiddlePIP, MiddleDIP, MiddleTip},
	{RingPIP, RingDIP, RingTip},
	{PinkyPIP, PinkyDIP, PinkyTip},
}

var fingerMCPs = [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// extendFingers points the four fingers upward (tips well above the MCPs).
func extendFingers(hand *HandLandmarks) {
	for f, chain := range fingerChains {
		mcp := hand.Points[fingerMCPs[f]]
		hand.Points[chain[0]] = Point3D{X: mcp.X, Y: mcp.Y - 0.05, Z: mcp.Z}
		hand.Points[chain[1]] = Point3D{X: mcp.X + 0.01, Y: mcp.Y - 0.10, Z: mcp.Z}
		hand.Points[chain[2]] = Point3D{X: mcp.X + 0.01, Y: mcp.Y - 0.15, Z: mcp.Z}
	}
}

// curlFingers folds the four fingers so every tip sits below its MCP.
func curlFingers(hand *HandLandmarks) {
	for f, chain := range fingerChains {
		mcp := hand.Points[fingerMCPs[f]]
		hand.Points[chain[0]] = Point3D{X: mcp.X, Y: mcp.Y - 0.02, Z: mcp.Z - 0.03}
		hand.Points[chain[1]] = Point3D{X: mcp.X - 0.01, Y: mcp.Y + 0.02, Z: mcp.Z - 0.04}
		hand.Points[chain[2]] = Point3D{X: mcp.X - 0.01, Y: mcp.Y + 0.04, Z: mcp.Z - 0.02}
	}
}

// OpenHandAt returns an open hand (fingers extended, thumb away from the
// index tip) with its palm centroid at center. Neither a fist nor pinched.
func OpenHandAt(center Point3D) HandLandmarks {
	hand := baseHand(center)
	extendFingers(&hand)
	hand.Points[ThumbTip] = Point3D{X: center.X + 0.16, Y: center.Y + 0.02, Z: center.Z}
	return hand
}

// FistAt returns a closed hand (all four fingertips below their MCP joints)
// with its palm centroid at center.
func FistAt(center Point3D) HandLandmarks {
	hand := baseHand(center)
	curlFingers(&hand)
	hand.Points[ThumbTip] = Point3D{X: center.X + 0.14, Y: center.Y + 0.08, Z: center.Z}
	return hand
}

// PinchedHandAt returns an otherwise open hand whose thumb tip touches the
// index fingertip, with its palm centroid at center.
func PinchedHandAt(center Point3D) HandLandmarks {
	hand := baseHand(center)
	extendFingers(&hand)
	tip := hand.Points[IndexTip]
	hand.Points[ThumbTip] = Point3D{X: tip.X + 0.01, Y: tip.Y + 0.01, Z: tip.Z}
	return hand
}
