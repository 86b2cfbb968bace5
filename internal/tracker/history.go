package tracker

import (
	"github.com/ayusman/orrery/internal/detector"
	"github.com/ayusman/orrery/internal/vmath"
)

// HistoryDepth is the capacity of the landmark and palm history buffers.
const HistoryDepth = 5

// frameHistory keeps the most recent landmark frames, newest first.
type frameHistory struct {
	frames []detector.HandLandmarks
}

func (h *frameHistory) Push(f detector.HandLandmarks) {
	h.frames = append([]detector.HandLandmarks{f}, h.frames...)
	if len(h.frames) > HistoryDepth {
		h.frames = h.frames[:HistoryDepth]
	}
}

func (h *frameHistory) Latest() (detector.HandLandmarks, bool) {
	if len(h.frames) == 0 {
		return detector.HandLandmarks{}, false
	}
	return h.frames[0], true
}

func (h *frameHistory) Clear() {
	h.frames = h.frames[:0]
}

// palmHistory keeps the most recent smoothed palm world positions, newest
// first, for throw-velocity estimation.
type palmHistory struct {
	points []vmath.Vec3
}

func (h *palmHistory) Push(p vmath.Vec3) {
	h.points = append([]vmath.Vec3{p}, h.points...)
	if len(h.points) > HistoryDepth {
		h.points = h.points[:HistoryDepth]
	}
}

func (h *palmHistory) Points() []vmath.Vec3 {
	return h.points
}

func (h *palmHistory) Clear() {
	h.points = h.points[:0]
}
