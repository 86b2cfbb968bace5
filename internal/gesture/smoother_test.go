package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/orrery/internal/detector"
)

func TestSmoother_ConstantInputIsIdentity(t *testing.T) {
	s := NewSmoother(SmootherWindow)
	p := detector.Point3D{X: 100, Y: 200, Z: -0.05}

	for i := 0; i < 10; i++ {
		got := s.Smooth(p)
		if got != p {
			t.Fatalf("Smooth(constant) = %+v, want %+v", got, p)
		}
	}
}

func TestSmoother_AveragesWindow(t *testing.T) {
	s := NewSmoother(5)

	var got detector.Point3D
	for _, x := range []float64{10, 20, 30, 40, 50} {
		got = s.Smooth(detector.Point3D{X: x})
	}
	if got.X != 30 {
		t.Errorf("mean of full window = %v, want 30", got.X)
	}

	// A sixth point evicts the oldest.
	got = s.Smooth(detector.Point3D{X: 60})
	if got.X != 40 {
		t.Errorf("mean after eviction = %v, want 40", got.X)
	}
}

func TestSmoother_FirstPointPassesThrough(t *testing.T) {
	s := NewSmoother(5)
	got := s.Smooth(detector.Point3D{X: 7, Y: 8, Z: 9})
	if got.X != 7 || got.Y != 8 || got.Z != 9 {
		t.Errorf("first Smooth() = %+v, want raw point", got)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(5)
	s.Smooth(detector.Point3D{X: 100})
	s.Smooth(detector.Point3D{X: 200})
	s.Reset()

	got := s.Smooth(detector.Point3D{X: 10})
	if math.Abs(got.X-10) > 1e-12 {
		t.Errorf("Smooth() after Reset() = %v, want 10", got.X)
	}
}
