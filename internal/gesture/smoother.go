package gesture

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/orrery/internal/detector"
)

// SmootherWindow is the default number of recent points averaged by the
// Smoother.
const SmootherWindow = 5

// Smoother suppresses per-frame jitter in a fingertip position by
// averaging over a bounded window of the most recent raw points, each
// axis independently.
type Smoother struct {
	window int
	xs     []float64
	ys     []float64
	zs     []float64
}

// NewSmoother creates a Smoother with the given window size. Sizes <= 0
// fall back to SmootherWindow.
func NewSmoother(window int) *Smoother {
	if window <= 0 {
		window = SmootherWindow
	}
	return &Smoother{window: window}
}

// Smooth pushes a raw point into the window and returns the arithmetic
// mean of all buffered points. On the first call the single available
// point is returned as-is.
func (s *Smoother) Smooth(raw detector.Point3D) detector.Point3D {
	s.xs = push(s.xs, raw.X, s.window)
	s.ys = push(s.ys, raw.Y, s.window)
	s.zs = push(s.zs, raw.Z, s.window)

	return detector.Point3D{
		X: stat.Mean(s.xs, nil),
		Y: stat.Mean(s.ys, nil),
		Z: stat.Mean(s.zs, nil),
	}
}

// Reset clears the window, e.g. after hand loss.
func (s *Smoother) Reset() {
	s.xs = s.xs[:0]
	s.ys = s.ys[:0]
	s.zs = s.zs[:0]
}

// push appends v and evicts the oldest value once the window is full.
func push(buf []float64, v float64, window int) []float64 {
	buf = append(buf, v)
	if len(buf) > window {
		copy(buf, buf[1:])
		buf = buf[:window]
	}
	return buf
}
