package scene

import (
	"log"
	"time"

	"github.com/ayusman/orrery/internal/gesture"
	"github.com/ayusman/orrery/internal/vmath"
)

// Effects translates recognized gestures into world mutations. Ball
// handling goes through injected callbacks when set, falling back to the
// environment's own methods, so the gesture layer never depends on a
// concrete ball implementation. Every effect no-ops safely when its
// collaborator is absent.
type Effects struct {
	world *World

	pickupFn func()
	throwFn  func(velocity vmath.Vec3)
	onEnter  func(planet string)
}

// NewEffects creates the effect handlers for the given world.
func NewEffects(world *World) *Effects {
	return &Effects{world: world}
}

// SetPickupCallback injects a pickup handler that replaces the default
// environment pickup.
func (e *Effects) SetPickupCallback(fn func()) {
	e.pickupFn = fn
}

// SetThrowCallback injects a throw handler that replaces the default
// environment throw.
func (e *Effects) SetThrowCallback(fn func(velocity vmath.Vec3)) {
	e.throwFn = fn
}

// OnEnterPlanet registers a hook invoked after a planet environment is
// entered, e.g. to switch the recognizer's threshold profile.
func (e *Effects) OnEnterPlanet(fn func(planet string)) {
	e.onEnter = fn
}

// Apply runs the effect for one recognized gesture. At most one effect
// runs per tick because the recognizer emits at most one non-idle state.
func (e *Effects) Apply(action gesture.Action, now time.Time) {
	if e.world == nil {
		return
	}

	switch action.State {
	case gesture.StateTapping:
		if err := e.world.HighlightIndex(action.PlanetIndex); err != nil {
			log.Printf("highlight planet %d: %v", action.PlanetIndex, err)
			return
		}
		if action.Commit {
			e.enterHighlighted()
		}

	case gesture.StateThreeFingerEntry:
		if action.Fired {
			e.enterHighlighted()
		}

	case gesture.StatePinching:
		if action.Zoom > 0 {
			e.world.Zoom(action.Zoom)
		}

	case gesture.StateRotating:
		if action.RotateX != 0 || action.RotateY != 0 {
			e.world.Rotate(action.RotateX, action.RotateY)
		}

	case gesture.StateGrabbing:
		if action.Fired {
			e.pickup()
		}

	case gesture.StateThrowing:
		if action.Fired {
			e.throw(action.Velocity, now)
		}
	}
}

func (e *Effects) enterHighlighted() {
	planet := e.world.EnterHighlighted()
	if planet == "" {
		return
	}
	log.Printf("Entered planet environment: %s", planet)
	if e.onEnter != nil {
		e.onEnter(planet)
	}
}

func (e *Effects) pickup() {
	if e.pickupFn != nil {
		e.pickupFn()
		return
	}
	e.world.Pickup()
}

func (e *Effects) throw(velocity vmath.Vec3, now time.Time) {
	if e.throwFn != nil {
		e.throwFn(velocity)
		return
	}
	e.world.Throw(velocity, now)
}
