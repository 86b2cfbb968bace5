package scene

import (
	"testing"
	"time"

	"github.com/ayusman/orrery/internal/gesture"
	"github.com/ayusman/orrery/internal/vmath"
)

func TestEffects_TapHighlightsAndCommits(t *testing.T) {
	w := NewWorld()
	e := NewEffects(w)
	now := time.Now()

	e.Apply(gesture.Action{State: gesture.StateTapping, PlanetIndex: 4}, now)
	if w.Highlighted() != "jupiter" {
		t.Errorf("Highlighted = %q, want jupiter", w.Highlighted())
	}
	if w.InPlanetMode() {
		t.Error("single tap entered the planet")
	}

	e.Apply(gesture.Action{State: gesture.StateTapping, PlanetIndex: 4, Commit: true, Fired: true}, now)
	if !w.InPlanetMode() {
		t.Error("committed double tap did not enter the planet")
	}
}

func TestEffects_EntryFiresOnEnterHook(t *testing.T) {
	w := NewWorld()
	e := NewEffects(w)

	var entered string
	e.OnEnterPlanet(func(planet string) { entered = planet })

	w.HighlightIndex(0)

	// An unfired entry (cooldown) must not enter.
	e.Apply(gesture.Action{State: gesture.StateThreeFingerEntry}, time.Now())
	if w.InPlanetMode() {
		t.Fatal("unfired entry entered the planet")
	}

	e.Apply(gesture.Action{State: gesture.StateThreeFingerEntry, Fired: true}, time.Now())
	if !w.InPlanetMode() {
		t.Fatal("fired entry did not enter the planet")
	}
	if entered != "mercury" {
		t.Errorf("OnEnterPlanet got %q, want mercury", entered)
	}
}

func TestEffects_PickupAndThrowCallbacks(t *testing.T) {
	w := NewWorld()
	e := NewEffects(w)
	now := time.Now()

	var pickups int
	var thrown vmath.Vec3
	e.SetPickupCallback(func() { pickups++ })
	e.SetThrowCallback(func(v vmath.Vec3) { thrown = v })

	e.Apply(gesture.Action{State: gesture.StateGrabbing, Fired: true}, now)
	if pickups != 1 {
		t.Errorf("pickups = %d, want 1", pickups)
	}

	// Unfired grab (debounce) does not invoke the callback.
	e.Apply(gesture.Action{State: gesture.StateGrabbing}, now)
	if pickups != 1 {
		t.Errorf("pickups after unfired grab = %d, want 1", pickups)
	}

	v := vmath.Vec3{X: 2, Y: 3, Z: -1}
	e.Apply(gesture.Action{State: gesture.StateThrowing, Velocity: v, Fired: true}, now)
	if thrown != v {
		t.Errorf("thrown = %+v, want %+v", thrown, v)
	}
}

func TestEffects_DefaultsToEnvironmentBall(t *testing.T) {
	w := NewWorld()
	e := NewEffects(w)
	now := time.Now()

	w.HighlightIndex(2)
	w.EnterHighlighted()

	e.Apply(gesture.Action{State: gesture.StateGrabbing, Fired: true}, now)
	if !w.HoldingBall() {
		t.Fatal("default pickup did not grab the ball")
	}

	e.Apply(gesture.Action{State: gesture.StateThrowing, Velocity: vmath.Vec3{X: 3, Y: 4}, Fired: true}, now)
	if w.HoldingBall() {
		t.Error("default throw left the ball held")
	}
	if !w.Env().BallThrown() {
		t.Error("default throw did not launch the ball")
	}
}

func TestEffects_ZoomAndRotate(t *testing.T) {
	w := NewWorld()
	e := NewEffects(w)
	now := time.Now()

	before := w.Camera().Position

	e.Apply(gesture.Action{State: gesture.StatePinching, Zoom: 1.5}, now)
	if w.Camera().Position == before {
		t.Error("zoom did not move the camera")
	}

	before = w.Camera().Position
	e.Apply(gesture.Action{State: gesture.StateRotating, RotateX: 0.2, RotateY: 0.1}, now)
	if w.Camera().Position == before {
		t.Error("rotate did not move the camera")
	}

	// Zero deltas leave the camera alone.
	before = w.Camera().Position
	e.Apply(gesture.Action{State: gesture.StateRotating}, now)
	if w.Camera().Position != before {
		t.Error("zero rotation moved the camera")
	}
}

func TestEffects_InvalidPlanetIndexIsSafe(t *testing.T) {
	w := NewWorld()
	e := NewEffects(w)

	e.Apply(gesture.Action{State: gesture.StateTapping, PlanetIndex: 99}, time.Now())
	if w.Highlighted() != "" {
		t.Errorf("Highlighted = %q, want empty after invalid index", w.Highlighted())
	}
}

func TestEffects_NilWorldIsSafe(t *testing.T) {
	e := NewEffects(nil)
	e.Apply(gesture.Action{State: gesture.StateTapping, PlanetIndex: 1}, time.Now())
	e.Apply(gesture.Action{State: gesture.StateThrowing, Fired: true}, time.Now())
}
