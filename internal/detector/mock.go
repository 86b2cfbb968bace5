package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
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

// Pose presets for a 640x480 frame with the wrist at (320, 400).
// Image-space y grows downward, so extended fingertips sit at lower y
// values than their PIP joints.

// baseHand returns a hand with every finger curled and the thumb tucked.
func baseHand() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 320, Y: 400, Z: 0}

	// Thumb tucked against the palm: tip barely farther from the wrist
	// than the MCP, well under the 1.2x radial threshold.
	landmarks.Points[ThumbCMC] = Point3D{X: 300, Y: 380, Z: 0}
	landmarks.Points[ThumbMCP] = Point3D{X: 280, Y: 360, Z: 0}
	landmarks.Points[ThumbIP] = Point3D{X: 285, Y: 365, Z: 0}
	landmarks.Points[ThumbTip] = Point3D{X: 290, Y: 370, Z: 0}

	curl := func(mcp, pip, dip, tip int, x float64) {
		landmarks.Points[mcp] = Point3D{X: x, Y: 300, Z: 0}
		landmarks.Points[pip] = Point3D{X: x, Y: 280, Z: -0.02}
		landmarks.Points[dip] = Point3D{X: x + 2, Y: 300, Z: -0.03}
		landmarks.Points[tip] = Point3D{X: x + 4, Y: 320, Z: -0.02}
	}

	curl(IndexMCP, IndexPIP, IndexDIP, IndexTip, 300)
	curl(MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 320)
	curl(RingMCP, RingPIP, RingDIP, RingTip, 340)
	curl(PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 360)

	return landmarks
}

// extendFinger straightens a finger so its tip sits above the PIP joint.
func extendFinger(h *HandLandmarks, mcp, pip, dip, tip int, x float64) {
	h.Points[mcp] = Point3D{X: x, Y: 300, Z: 0}
	h.Points[pip] = Point3D{X: x, Y: 260, Z: 0}
	h.Points[dip] = Point3D{X: x, Y: 220, Z: 0}
	h.Points[tip] = Point3D{X: x, Y: 180, Z: 0}
}

// extendThumb moves the thumb tip well past the radial-distance threshold.
func extendThumb(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 295, Y: 375, Z: 0}
	h.Points[ThumbMCP] = Point3D{X: 280, Y: 360, Z: 0}
	h.Points[ThumbIP] = Point3D{X: 258, Y: 345, Z: 0}
	h.Points[ThumbTip] = Point3D{X: 240, Y: 330, Z: 0}
}

// FistLandmarks returns a hand with no fingers extended.
func FistLandmarks() HandLandmarks {
	return baseHand()
}

// TwoFingerLandmarks returns the tap/select pose: index and middle
// extended, ring and pinky flexed, thumb tucked. The index and middle
// fingertips average to x=320 horizontally.
func TwoFingerLandmarks() HandLandmarks {
	return TwoFingerLandmarksAt(320)
}

// TwoFingerLandmarksAt returns the tap/select pose with the index and
// middle fingertips centered horizontally on x.
func TwoFingerLandmarksAt(x float64) HandLandmarks {
	h := baseHand()
	extendFinger(&h, IndexMCP, IndexPIP, IndexDIP, IndexTip, x-10)
	extendFinger(&h, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, x+10)
	return h
}

// ThreeFingerLandmarks returns the planet-entry pose: index, middle and
// ring extended, thumb and pinky not.
func ThreeFingerLandmarks() HandLandmarks {
	h := baseHand()
	extendFinger(&h, IndexMCP, IndexPIP, IndexDIP, IndexTip, 300)
	extendFinger(&h, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 320)
	extendFinger(&h, RingMCP, RingPIP, RingDIP, RingTip, 340)
	return h
}

// OpenPalmLandmarks returns a fully open hand: all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	h := baseHand()
	extendThumb(&h)
	extendFinger(&h, IndexMCP, IndexPIP, IndexDIP, IndexTip, 300)
	extendFinger(&h, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 320)
	extendFinger(&h, RingMCP, RingPIP, RingDIP, RingTip, 340)
	extendFinger(&h, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 360)
	return h
}

// PinchLandmarks returns a pinching hand with the thumb tip and index tip
// separated by pixelDist pixels. Middle, ring and pinky are flexed so the
// pose cannot match the tap or entry predicates.
func PinchLandmarks(pixelDist float64) HandLandmarks {
	h := baseHand()
	extendFinger(&h, IndexMCP, IndexPIP, IndexDIP, IndexTip, 300)
	h.Points[ThumbTip] = Point3D{X: 300 + pixelDist, Y: 180, Z: 0}
	return h
}
