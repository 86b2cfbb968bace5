package scene

import (
	"math"
	"testing"

	"github.com/ayusman/orrery/internal/vmath"
)

func TestOrbitController_ZoomClamps(t *testing.T) {
	cam := NewCamera(vmath.Vec3{Z: 80}, vmath.Vec3{})
	orbit := NewOrbitController(cam, vmath.Vec3{})

	if d := orbit.Distance(); d != 80 {
		t.Fatalf("initial Distance = %v, want 80", d)
	}

	// Factor 2 halves the distance.
	orbit.Zoom(2)
	if d := orbit.Distance(); d != 40 {
		t.Errorf("Distance after Zoom(2) = %v, want 40", d)
	}

	// Zooming way in stops at the minimum.
	orbit.Zoom(100)
	if d := orbit.Distance(); d != MinZoomDistance {
		t.Errorf("Distance after extreme zoom in = %v, want %v", d, MinZoomDistance)
	}

	// Zooming way out stops at the maximum.
	orbit.Zoom(0.001)
	if d := orbit.Distance(); d != MaxZoomDistance {
		t.Errorf("Distance after extreme zoom out = %v, want %v", d, MaxZoomDistance)
	}

	// Non-positive factors are ignored.
	orbit.Zoom(0)
	if d := orbit.Distance(); d != MaxZoomDistance {
		t.Errorf("Distance after Zoom(0) = %v, want unchanged %v", d, MaxZoomDistance)
	}
}

func TestOrbitController_RotateUpClampsAtPoles(t *testing.T) {
	cam := NewCamera(vmath.Vec3{Z: 50}, vmath.Vec3{})
	orbit := NewOrbitController(cam, vmath.Vec3{})

	// Rotate far past the top pole.
	orbit.RotateUp(10)
	orbit.Update()

	// The camera must stay off the vertical axis.
	offset := cam.Position
	horizontal := math.Hypot(offset.X, offset.Z)
	if horizontal < 1e-6 {
		t.Errorf("camera reached the pole: position %+v", cam.Position)
	}
	if math.Abs(offset.Length()-50) > 1e-9 {
		t.Errorf("rotation changed the radius: %v, want 50", offset.Length())
	}
}

func TestOrbitController_RotateLeftPreservesRadius(t *testing.T) {
	cam := NewCamera(vmath.Vec3{Z: 50}, vmath.Vec3{})
	orbit := NewOrbitController(cam, vmath.Vec3{})

	orbit.RotateLeft(math.Pi / 2)
	orbit.Update()

	if r := cam.Position.Length(); math.Abs(r-50) > 1e-9 {
		t.Errorf("radius after rotate = %v, want 50", r)
	}
	// A quarter turn moves the camera onto the x axis.
	if math.Abs(cam.Position.Z) > 1e-9 {
		t.Errorf("Position.Z after quarter turn = %v, want ~0", cam.Position.Z)
	}
}

func TestOrbitController_Retarget(t *testing.T) {
	cam := NewCamera(vmath.Vec3{Z: 50}, vmath.Vec3{})
	orbit := NewOrbitController(cam, vmath.Vec3{})

	target := vmath.Vec3{X: 10}
	orbit.Retarget(target)

	if cam.Target() != target {
		t.Errorf("camera target = %+v, want %+v", cam.Target(), target)
	}
	want := cam.Position.Sub(target).Length()
	if math.Abs(orbit.Distance()-want) > 1e-9 {
		t.Errorf("Distance after retarget = %v, want %v", orbit.Distance(), want)
	}
}

func TestRotateAboutTarget_Fallback(t *testing.T) {
	cam := NewCamera(vmath.Vec3{Z: 30}, vmath.Vec3{})

	RotateAboutTarget(cam, vmath.Vec3{}, math.Pi/2, 0)

	if r := cam.Position.Length(); math.Abs(r-30) > 1e-9 {
		t.Errorf("radius after fallback rotate = %v, want 30", r)
	}
	if cam.Target() != (vmath.Vec3{}) {
		t.Errorf("target = %+v, want origin", cam.Target())
	}
}

func TestCamera_GetWorldDirection(t *testing.T) {
	cam := NewCamera(vmath.Vec3{Z: 10}, vmath.Vec3{})
	dir := cam.GetWorldDirection()
	want := vmath.Vec3{Z: -1}
	if dir != want {
		t.Errorf("GetWorldDirection = %+v, want %+v", dir, want)
	}
}
