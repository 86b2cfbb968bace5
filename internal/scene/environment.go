package scene

import (
	"time"

	"github.com/ayusman/orrery/internal/physics"
	"github.com/ayusman/orrery/internal/vmath"
)

// ballHoldOffset places a held ball slightly in front of and above the
// character.
var ballHoldOffset = vmath.Vec3{Y: 1.5, Z: -1}

// Environment is the planet-surface view: a character and a throwable
// ball simulated under the planet's gravity. The rigid-body engine lives
// in the renderer; this side owns hold state and the analytic flight.
type Environment struct {
	Planet  string
	Gravity float64

	Character *Node
	Ball      *Node

	ballOnGround bool
	holding      bool
	thrown       bool
	flight       *physics.Flight

	// Pre-throw aim captured from the latest palm velocity estimate,
	// used for the trajectory preview only; the actual throw freezes
	// its own parameters at launch.
	aimVelocity vmath.Vec3
	aimValid    bool
}

// NewEnvironment creates the surface environment for the given planet
// with the ball resting on the ground near the character.
func NewEnvironment(planet string) *Environment {
	character := NewNode("character")
	character.Position = vmath.Vec3{Y: 1}

	ball := NewNode("ball")
	ball.Position = vmath.Vec3{X: 2}

	return &Environment{
		Planet:       planet,
		Gravity:      physics.GravityFor(planet),
		Character:    character,
		Ball:         ball,
		ballOnGround: true,
	}
}

// IsHoldingBall reports whether the character currently holds the ball.
func (e *Environment) IsHoldingBall() bool {
	return e.holding
}

// BallThrown reports whether the ball is in flight.
func (e *Environment) BallThrown() bool {
	return e.thrown
}

// BallAvailable reports whether the ball can be picked up: it exists, is
// on the ground and is not held.
func (e *Environment) BallAvailable() bool {
	return e.Ball != nil && e.ballOnGround && !e.holding
}

// PickupBall attaches the ball to the character. Picking up a ball that
// is not available is a no-op.
func (e *Environment) PickupBall() {
	if !e.BallAvailable() {
		return
	}
	e.holding = true
	e.ballOnGround = false
	e.Ball.Position = e.Character.Position.Add(ballHoldOffset)
}

// ThrowBall launches the held ball with the given velocity. The flight
// parameters are frozen at this instant: later character or camera
// movement cannot perturb the trajectory.
func (e *Environment) ThrowBall(velocity vmath.Vec3, at time.Time) *physics.Flight {
	if !e.holding {
		return nil
	}

	start := e.Ball.Position
	params := physics.ParamsFromVelocity(velocity, start, e.Gravity)

	e.flight = physics.Launch(params, at)
	e.holding = false
	e.thrown = true
	e.aimValid = false

	return e.flight
}

// SetAim records the current throw-velocity estimate for the preview.
func (e *Environment) SetAim(velocity vmath.Vec3) {
	e.aimVelocity = velocity
	e.aimValid = true
}

// Preview returns the pre-throw trajectory for the current aim, or false
// when the ball is not held or no aim has been recorded. Unlike an
// in-flight ball, the preview is re-derived from the live aim each call.
func (e *Environment) Preview() (physics.Prediction, bool) {
	if !e.holding || !e.aimValid {
		return physics.Prediction{}, false
	}
	params := physics.ParamsFromVelocity(e.aimVelocity, e.Ball.Position, e.Gravity)
	return physics.Predict(params), true
}

// Flight returns the active flight record, or nil.
func (e *Environment) Flight() *physics.Flight {
	return e.flight
}

// Step advances a ball in flight to the given time. A held ball tracks
// the character instead. Returns true when the ball lands this step.
func (e *Environment) Step(now time.Time) bool {
	if e.holding {
		e.Ball.Position = e.Character.Position.Add(ballHoldOffset)
		return false
	}
	if e.flight == nil {
		return false
	}

	pos, landed := e.flight.PositionAt(now)
	e.Ball.Position = pos
	if landed {
		e.flight = nil
		e.thrown = false
		e.ballOnGround = true
	}
	return landed
}
