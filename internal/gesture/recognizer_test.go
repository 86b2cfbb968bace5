package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/ayusman/orrery/internal/detector"
	"github.com/ayusman/orrery/internal/vmath"
)

// testClock drives the recognizer's time source deterministically.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRecognizer(p Profile) (*Recognizer, *testClock) {
	r := NewRecognizer(p)
	clock := newTestClock()
	r.now = clock.now
	return r, clock
}

func solarContext() Context {
	return Context{
		FrameWidth:   640,
		FrameHeight:  480,
		Calibration:  IdentityCalibration(),
		PlanetCount:  8,
		HasHighlight: true,
	}
}

// shiftHand translates every landmark of the hand in image space.
func shiftHand(h detector.HandLandmarks, dx, dy float64) detector.HandLandmarks {
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}

func TestRecognizer_EntryOutranksTap(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())

	// The three-finger pose contains the two-finger tap pose; the entry
	// rule must claim it.
	h := detector.ThreeFingerLandmarks()
	action := r.Update(&h, solarContext())

	if action.State != StateThreeFingerEntry {
		t.Fatalf("State = %v, want StateThreeFingerEntry", action.State)
	}
	if !action.Fired {
		t.Error("first entry should fire")
	}
}

func TestRecognizer_EntryCooldown(t *testing.T) {
	r, clock := newTestRecognizer(SolarProfile())
	h := detector.ThreeFingerLandmarks()
	ctx := solarContext()

	if action := r.Update(&h, ctx); !action.Fired {
		t.Fatal("first entry should fire")
	}

	clock.advance(100 * time.Millisecond)
	if action := r.Update(&h, ctx); action.Fired {
		t.Error("entry within cooldown should not fire")
	}

	clock.advance(SolarProfile().EntryCooldown)
	if action := r.Update(&h, ctx); !action.Fired {
		t.Error("entry after cooldown should fire again")
	}
}

func TestRecognizer_EntryRequiresHighlight(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	h := detector.ThreeFingerLandmarks()

	// No planet highlighted: the pose is claimed but nothing fires, and
	// the cooldown is not consumed.
	ctx := solarContext()
	ctx.HasHighlight = false

	action := r.Update(&h, ctx)
	if action.State != StateThreeFingerEntry {
		t.Fatalf("State = %v, want StateThreeFingerEntry", action.State)
	}
	if action.Fired {
		t.Error("entry without a highlight should not fire")
	}

	// The frame a highlight appears, entry fires immediately.
	ctx.HasHighlight = true
	if action := r.Update(&h, ctx); !action.Fired {
		t.Error("entry should fire as soon as a highlight exists")
	}
}

func TestRecognizer_EntrySuppressedInPlanetMode(t *testing.T) {
	r, _ := newTestRecognizer(SurfaceProfile())
	h := detector.ThreeFingerLandmarks()

	ctx := solarContext()
	ctx.InPlanetMode = true

	action := r.Update(&h, ctx)
	if action.State == StateThreeFingerEntry {
		t.Error("entry should not trigger inside a planet environment")
	}
}

func TestRecognizer_TapSelectsPlanetByX(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())

	// Fingertips centered at x=320 on a 640px frame: normalized 0.5,
	// bucket 4 of 8.
	h := detector.TwoFingerLandmarks()
	action := r.Update(&h, solarContext())

	if action.State != StateTapping {
		t.Fatalf("State = %v, want StateTapping", action.State)
	}
	if action.PlanetIndex != 4 {
		t.Errorf("PlanetIndex = %d, want 4", action.PlanetIndex)
	}
	if action.Commit {
		t.Error("single tap should not commit")
	}

	// Far left of the frame selects the first planet.
	r.Reset()
	h = detector.TwoFingerLandmarksAt(40)
	action = r.Update(&h, solarContext())
	if action.PlanetIndex != 0 {
		t.Errorf("PlanetIndex at x=40 = %d, want 0", action.PlanetIndex)
	}
}

func TestRecognizer_DoubleTapCommits(t *testing.T) {
	r, clock := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	tap := detector.TwoFingerLandmarks()
	fist := detector.FistLandmarks()

	if action := r.Update(&tap, ctx); action.Commit {
		t.Fatal("first tap should not commit")
	}

	// Fingers bend between the two taps.
	clock.advance(200 * time.Millisecond)
	if action := r.Update(&fist, ctx); action.State != StateIdle {
		t.Fatalf("fist State = %v, want StateIdle", action.State)
	}

	clock.advance(200 * time.Millisecond)
	action := r.Update(&tap, ctx)
	if !action.Commit || !action.Fired {
		t.Errorf("second tap within window: Commit = %v, Fired = %v, want true, true",
			action.Commit, action.Fired)
	}
}

func TestRecognizer_DoubleTapWindowLapses(t *testing.T) {
	r, clock := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	tap := detector.TwoFingerLandmarks()
	fist := detector.FistLandmarks()

	r.Update(&tap, ctx)
	r.Update(&fist, ctx)

	clock.advance(SolarProfile().TapWindow + time.Millisecond)
	if action := r.Update(&tap, ctx); action.Commit {
		t.Error("tap after the window lapsed should not commit")
	}
}

func TestRecognizer_OtherGestureCancelsPendingTap(t *testing.T) {
	r, clock := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	tap := detector.TwoFingerLandmarks()
	entry := detector.ThreeFingerLandmarks()

	r.Update(&tap, ctx)
	clock.advance(100 * time.Millisecond)
	r.Update(&entry, ctx)

	clock.advance(100 * time.Millisecond)
	if action := r.Update(&tap, ctx); action.Commit {
		t.Error("tap after an intervening gesture should not commit")
	}
}

func TestRecognizer_PinchStartThreshold(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	// 192px on a 640px frame is 0.3 normalized: above the 0.22 start
	// threshold, no pinch.
	wide := detector.PinchLandmarks(192)
	if action := r.Update(&wide, ctx); action.State == StatePinching {
		t.Error("distance above threshold should not start a pinch")
	}

	// 128px is 0.2 normalized: below the threshold.
	narrow := detector.PinchLandmarks(128)
	action := r.Update(&narrow, ctx)
	if action.State != StatePinching {
		t.Fatalf("State = %v, want StatePinching", action.State)
	}
	if action.Zoom != 1 {
		t.Errorf("initial Zoom = %v, want 1", action.Zoom)
	}
	if r.pinchStart != 0.2 {
		t.Errorf("pinchStart = %v, want 0.2", r.pinchStart)
	}
}

func TestRecognizer_PinchZoomAndRelease(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	start := detector.PinchLandmarks(128) // 0.2 normalized
	r.Update(&start, ctx)

	// Widening the pinch zooms out: ratio 1.25, shaped and damped.
	wider := detector.PinchLandmarks(160) // 0.25 normalized
	action := r.Update(&wider, ctx)
	if action.State != StatePinching {
		t.Fatalf("State = %v, want StatePinching", action.State)
	}
	want := 1 + (math.Pow(0.25/0.2, 1.2)-1)*0.7
	if math.Abs(action.Zoom-want) > 1e-9 {
		t.Errorf("Zoom = %v, want %v", action.Zoom, want)
	}

	// Past twice the start distance the pinch releases and the frame
	// re-evaluates against lower rules.
	released := detector.PinchLandmarks(320) // 0.5 > 2 * 0.22
	action = r.Update(&released, ctx)
	if action.State == StatePinching {
		t.Error("pinch should release past the release distance")
	}
	if r.pinchStart != 0 {
		t.Errorf("pinchStart after release = %v, want 0", r.pinchStart)
	}
}

func TestRecognizer_OpenHandReleasesPinch(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	start := detector.PinchLandmarks(128)
	r.Update(&start, ctx)

	open := detector.OpenPalmLandmarks()
	action := r.Update(&open, ctx)
	if action.State != StateRotating {
		t.Errorf("open hand after pinch: State = %v, want StateRotating", action.State)
	}
}

func TestRecognizer_ZoomClamped(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	start := detector.PinchLandmarks(64) // 0.1 normalized
	r.Update(&start, ctx)

	// 0.19 normalized keeps the pinch held (release is at 0.44) while
	// the raw ratio 1.9 shapes past the 2.0 clamp boundary region.
	wide := detector.PinchLandmarks(121.6)
	action := r.Update(&wide, ctx)
	maxZoom := 1 + (2.0-1)*0.7
	if action.Zoom > maxZoom+1e-9 {
		t.Errorf("Zoom = %v, want <= %v", action.Zoom, maxZoom)
	}
}

func TestRecognizer_GrabClaimsTwoFingerPoseInPlanetMode(t *testing.T) {
	r, _ := newTestRecognizer(SurfaceProfile())

	ctx := solarContext()
	ctx.InPlanetMode = true
	ctx.BallAvailable = true

	// The tucked thumb sits close to the index tip, but a pinch needs an
	// extended thumb, so the pose reaches the grab rule.
	h := detector.TwoFingerLandmarks()
	action := r.Update(&h, ctx)
	if action.State != StateGrabbing {
		t.Fatalf("State = %v, want StateGrabbing", action.State)
	}
	if !action.Fired {
		t.Error("first grab should fire")
	}
}

func TestRecognizer_GrabDebounce(t *testing.T) {
	r, clock := newTestRecognizer(SurfaceProfile())

	ctx := solarContext()
	ctx.InPlanetMode = true
	ctx.BallAvailable = true

	h := detector.TwoFingerLandmarks()
	if action := r.Update(&h, ctx); !action.Fired {
		t.Fatal("first grab should fire")
	}

	clock.advance(200 * time.Millisecond)
	if action := r.Update(&h, ctx); action.Fired {
		t.Error("grab within debounce window should not fire")
	}

	clock.advance(SurfaceProfile().GrabDebounce)
	if action := r.Update(&h, ctx); !action.Fired {
		t.Error("grab after debounce window should fire")
	}
}

func TestRecognizer_ThrowRequiresFastPalm(t *testing.T) {
	r, _ := newTestRecognizer(SurfaceProfile())

	ctx := solarContext()
	ctx.InPlanetMode = true
	ctx.HoldingBall = true
	ctx.HasPalmVelocity = true

	open := detector.OpenPalmLandmarks()

	// Slow palm: scaled magnitude 0.5 is under the 1.2 threshold, the
	// open hand drives rotation instead.
	ctx.PalmVelocity = vmath.Vec3{X: 0.05}
	action := r.Update(&open, ctx)
	if action.State != StateRotating {
		t.Errorf("slow palm: State = %v, want StateRotating", action.State)
	}

	// Fast palm throws.
	ctx.PalmVelocity = vmath.Vec3{X: 0.1, Y: 0.15, Z: 0.05}
	action = r.Update(&open, ctx)
	if action.State != StateThrowing {
		t.Fatalf("fast palm: State = %v, want StateThrowing", action.State)
	}
	if !action.Fired {
		t.Error("throw should fire")
	}
	want := vmath.Vec3{X: 1, Y: 1.5, Z: -0.5}
	if action.Velocity != want {
		t.Errorf("Velocity = %+v, want %+v", action.Velocity, want)
	}
}

func TestRecognizer_RotateFromPalmDelta(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	open := detector.OpenPalmLandmarks()

	// First open-hand frame only seeds the palm anchor.
	action := r.Update(&open, ctx)
	if action.State != StateRotating {
		t.Fatalf("State = %v, want StateRotating", action.State)
	}
	if action.RotateX != 0 || action.RotateY != 0 {
		t.Errorf("first frame rotation = (%v, %v), want (0, 0)", action.RotateX, action.RotateY)
	}

	// A 64px shift on a 640px frame is a 0.1 normalized delta.
	moved := shiftHand(open, 64, 0)
	action = r.Update(&moved, ctx)
	if math.Abs(action.RotateX-0.1*SolarProfile().RotateSensitivity) > 1e-9 {
		t.Errorf("RotateX = %v, want %v", action.RotateX, 0.1*SolarProfile().RotateSensitivity)
	}
	if action.RotateY != 0 {
		t.Errorf("RotateY = %v, want 0", action.RotateY)
	}
}

func TestRecognizer_RotateDeadZone(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	open := detector.OpenPalmLandmarks()
	r.Update(&open, ctx)

	// A 1px jitter is under the 0.005 normalized dead zone.
	jittered := shiftHand(open, 1, 1)
	action := r.Update(&jittered, ctx)
	if action.RotateX != 0 || action.RotateY != 0 {
		t.Errorf("jitter rotation = (%v, %v), want (0, 0)", action.RotateX, action.RotateY)
	}
}

func TestRecognizer_PalmAnchorResetsOnTransition(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	open := detector.OpenPalmLandmarks()
	r.Update(&open, ctx)

	fist := detector.FistLandmarks()
	r.Update(&fist, ctx)

	// Re-entering rotation after idle must not apply the stale anchor as
	// a jump.
	moved := shiftHand(open, 200, 0)
	action := r.Update(&moved, ctx)
	if action.RotateX != 0 {
		t.Errorf("RotateX after re-entry = %v, want 0", action.RotateX)
	}
}

func TestRecognizer_FistIsIdle(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	h := detector.FistLandmarks()

	action := r.Update(&h, solarContext())
	if action.State != StateIdle {
		t.Errorf("State = %v, want StateIdle", action.State)
	}
	if got := action.State.String(); got != "idle" {
		t.Errorf("State.String() = %q, want %q", got, "idle")
	}
}

func TestRecognizer_Reset(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	pinch := detector.PinchLandmarks(128)
	r.Update(&pinch, ctx)

	r.Reset()
	if r.State() != StateIdle {
		t.Errorf("State after Reset = %v, want StateIdle", r.State())
	}
	if r.pinchStart != 0 {
		t.Errorf("pinchStart after Reset = %v, want 0", r.pinchStart)
	}
}

func TestRecognizer_SetProfileResets(t *testing.T) {
	r, _ := newTestRecognizer(SolarProfile())
	ctx := solarContext()

	pinch := detector.PinchLandmarks(128)
	r.Update(&pinch, ctx)

	r.SetProfile(SurfaceProfile())
	if r.State() != StateIdle {
		t.Errorf("State after SetProfile = %v, want StateIdle", r.State())
	}
	if r.Profile().Name != "surface" {
		t.Errorf("Profile().Name = %q, want %q", r.Profile().Name, "surface")
	}
}

func TestPalmVelocity(t *testing.T) {
	if _, ok := PalmVelocity([]vmath.Vec3{{X: 1}}); ok {
		t.Error("PalmVelocity with one point should report false")
	}

	// Most-recent-first: a steady drift of +1 per frame in x.
	history := []vmath.Vec3{{X: 3}, {X: 2}, {X: 1}, {X: 0}}
	v, ok := PalmVelocity(history)
	if !ok {
		t.Fatal("PalmVelocity = false, want true")
	}
	if math.Abs(v.X-1) > 1e-12 || v.Y != 0 || v.Z != 0 {
		t.Errorf("PalmVelocity = %+v, want {1 0 0}", v)
	}
}

func TestThrowVelocity_InvertsDepth(t *testing.T) {
	v := ThrowVelocity(vmath.Vec3{X: 0.1, Y: 0.2, Z: 0.3})
	want := vmath.Vec3{X: 1, Y: 2, Z: -3}
	if v != want {
		t.Errorf("ThrowVelocity = %+v, want %+v", v, want)
	}
}

func TestProfileByName(t *testing.T) {
	if got := ProfileByName("surface").PinchStart; got != 0.5 {
		t.Errorf("surface PinchStart = %v, want 0.5", got)
	}
	if got := ProfileByName("solar").PinchStart; got != 0.22 {
		t.Errorf("solar PinchStart = %v, want 0.22", got)
	}
	if got := ProfileByName("bogus").Name; got != "solar" {
		t.Errorf("unknown profile = %q, want solar fallback", got)
	}
}
