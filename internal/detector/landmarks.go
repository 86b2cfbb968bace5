// Package detector provides hand landmark acquisition for the Orrery
// gesture navigation system.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
//
// Landmarks are in frame pixel space (x right, y down) with z as relative
// depth. Each finger is a quadruplet ending at its tip.
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point with x, y in pixels and z as relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for one hand in
// one frame. Frames carry no identity; continuity across frames lives only
// in the tracker's history buffers.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Palm returns the palm base position (the wrist landmark).
func (h *HandLandmarks) Palm() Point3D {
	return h.Points[Wrist]
}

// Distance calculates the Euclidean distance between two 3D points.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PinchDistance returns the thumb-tip to index-tip distance normalized by
// the frame width. Width values <= 0 yield the raw pixel distance.
func (h *HandLandmarks) PinchDistance(frameWidth float64) float64 {
	d := Distance(h.Points[ThumbTip], h.Points[IndexTip])
	if frameWidth <= 0 {
		return d
	}
	return d / frameWidth
}
