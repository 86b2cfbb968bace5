// Package gesture converts per-frame hand landmarks into a stable,
// mutually exclusive stream of discrete gestures.
package gesture

import "github.com/ayusman/orrery/internal/detector"

// OpenHandMinExtended is the number of extended fingers that counts as an
// open hand. Both the rotate and throw preconditions use this single
// threshold.
const OpenHandMinExtended = 4

// thumbRadialFactor is the ratio of tip-to-palm over base-to-palm distance
// above which the thumb counts as extended. The thumb's extension axis is
// not vertical, so a radial heuristic replaces the y comparison used for
// the other fingers.
const thumbRadialFactor = 1.2

// IsExtended reports whether the finger defined by (baseIdx, tipIdx) is
// extended in the given frame. It is a pure function of the frame: no
// history is consulted.
//
// For the thumb, extension is radial: the tip must sit farther from the
// palm base than thumbRadialFactor times the base's distance. For all
// other fingers the tip must be above the PIP joint (image-space y grows
// downward, so above means a smaller y).
func IsExtended(h *detector.HandLandmarks, baseIdx, tipIdx int) bool {
	if tipIdx == detector.ThumbTip {
		palm := h.Palm()
		tipDist := detector.Distance(h.Points[tipIdx], palm)
		baseDist := detector.Distance(h.Points[baseIdx], palm)
		return tipDist > thumbRadialFactor*baseDist
	}
	return h.Points[tipIdx].Y < h.Points[tipIdx-2].Y
}

// FingerState holds the per-frame extended flag for each of the five
// fingers. It is a projection of a single landmark frame and carries no
// lifetime of its own.
type FingerState struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// Fingers classifies all five fingers of the given frame.
func Fingers(h *detector.HandLandmarks) FingerState {
	return FingerState{
		Thumb:  IsExtended(h, detector.ThumbMCP, detector.ThumbTip),
		Index:  IsExtended(h, detector.IndexMCP, detector.IndexTip),
		Middle: IsExtended(h, detector.MiddleMCP, detector.MiddleTip),
		Ring:   IsExtended(h, detector.RingMCP, detector.RingTip),
		Pinky:  IsExtended(h, detector.PinkyMCP, detector.PinkyTip),
	}
}

// ExtendedCount returns how many fingers are extended.
func (f FingerState) ExtendedCount() int {
	n := 0
	for _, ext := range []bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky} {
		if ext {
			n++
		}
	}
	return n
}

// TwoFingerPose reports the tap/select pose: index and middle extended,
// ring and pinky flexed.
func (f FingerState) TwoFingerPose() bool {
	return f.Index && f.Middle && !f.Ring && !f.Pinky
}

// ThreeFingerPose reports the planet-entry pose: index, middle and ring
// extended with the thumb flexed.
func (f FingerState) ThreeFingerPose() bool {
	return f.Index && f.Middle && f.Ring && !f.Thumb
}

// OpenHand reports whether enough fingers are extended to count as an
// open hand.
func (f FingerState) OpenHand() bool {
	return f.ExtendedCount() >= OpenHandMinExtended
}

// OnlyIndex reports whether the index finger alone is extended.
func (f FingerState) OnlyIndex() bool {
	return f.Index && !f.Thumb && !f.Middle && !f.Ring && !f.Pinky
}
