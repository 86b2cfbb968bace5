package gesture

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/orrery/internal/detector"
	"github.com/ayusman/orrery/internal/vmath"
)

// State identifies the single active gesture for a tick.
type State int

const (
	StateIdle State = iota
	StateTapping
	StatePinching
	StateGrabbing
	StateRotating
	StateThrowing
	StateThreeFingerEntry
)

// String returns the gesture name surfaced to callers and the UI.
func (s State) String() string {
	switch s {
	case StateTapping:
		return "Tap"
	case StatePinching:
		return "Pinch/Zoom"
	case StateGrabbing:
		return "Grab"
	case StateRotating:
		return "Rotate"
	case StateThrowing:
		return "Throw"
	case StateThreeFingerEntry:
		return "ThreeFingerEntry"
	default:
		return "idle"
	}
}

// throwScale converts mean per-frame palm displacement into a throw
// velocity. The depth axis sign is inverted to match the rendering
// coordinate convention.
const throwScale = 10.0

// Context carries the per-frame inputs the recognizer needs beyond the
// landmarks themselves: frame geometry, calibration, scene mode and ball
// state, and the palm velocity estimated from the tracker's history
// buffer.
type Context struct {
	FrameWidth  float64
	FrameHeight float64
	Calibration Calibration
	PlanetCount int

	InPlanetMode  bool
	HasHighlight  bool // a planet is highlighted, so entry has a target
	BallAvailable bool // ball exists, is on the ground and not held
	HoldingBall   bool

	PalmVelocity    vmath.Vec3 // mean frame-to-frame displacement
	HasPalmVelocity bool
}

// Action is the recognizer's verdict for one tick: the active state plus
// the payload its effect handler needs. At most one non-idle state is
// produced per tick.
type Action struct {
	State State

	// Fired marks discrete one-shot effects: planet entry, tap commit,
	// pickup and throw. Continuous effects (zoom, rotate, highlight)
	// apply every tick their state is active.
	Fired bool

	// Tap payload.
	PlanetIndex int
	Commit      bool // double-tap: commit entry into the highlighted planet

	// Pinch payload: damped, clamped zoom factor relative to the pinch
	// baseline.
	Zoom float64

	// Rotate payload: scaled palm deltas driving azimuth and polar angle.
	RotateX float64
	RotateY float64

	// Throw payload.
	Velocity vmath.Vec3
}

// Recognizer is the gesture disambiguator. It evaluates a fixed priority
// order every frame — entry, tap, pinch, grab, throw, rotate — and the
// first matching rule wins; later rules are not evaluated that frame.
// All cross-frame gesture memory lives here.
type Recognizer struct {
	profile Profile
	state   State

	// Pinch baseline, valid while pinching.
	pinchStart float64

	// Tap bookkeeping. The counter survives brief excursions through
	// idle so a bend-and-straighten within the window reads as a
	// double tap; it is cleared when the window lapses or another
	// gesture takes over.
	tapCount    int
	tapDeadline time.Time

	// Last palm screen position, valid while rotating.
	lastPalmX float64
	lastPalmY float64
	palmValid bool

	// Debounce anchors. These survive state transitions: they are the
	// re-arm windows for their one-shot effects.
	lastGrab     time.Time
	entryReadyAt time.Time

	now func() time.Time
}

// NewRecognizer creates a Recognizer with the given threshold profile.
func NewRecognizer(profile Profile) *Recognizer {
	return &Recognizer{
		profile: profile,
		now:     time.Now,
	}
}

// SetProfile swaps the threshold profile, e.g. when entering or leaving a
// planet environment. The gesture state resets to idle.
func (r *Recognizer) SetProfile(profile Profile) {
	r.profile = profile
	r.Reset()
}

// Profile returns the active threshold profile.
func (r *Recognizer) Profile() Profile {
	return r.profile
}

// State returns the currently active gesture state.
func (r *Recognizer) State() State {
	return r.state
}

// Reset returns the recognizer to idle and clears all auxiliary state.
// Called on hand loss and tracking stop.
func (r *Recognizer) Reset() {
	r.transition(StateIdle)
	r.tapCount = 0
	r.tapDeadline = time.Time{}
	r.pinchStart = 0
	r.palmValid = false
}

// Update runs the priority-ordered decision tree for one frame and
// returns the single active gesture with its payload.
func (r *Recognizer) Update(h *detector.HandLandmarks, ctx Context) Action {
	now := r.now()
	fingers := Fingers(h)

	// Lapsed double-tap window.
	if r.tapCount > 0 && now.After(r.tapDeadline) {
		r.tapCount = 0
		r.tapDeadline = time.Time{}
	}

	// 1. Three-finger entry. Without a highlighted planet there is nothing
	// to enter: the pose is still claimed, but no one-shot fires and the
	// cooldown stays armed for the frame a target appears.
	if fingers.ThreeFingerPose() && !ctx.InPlanetMode {
		fired := ctx.HasHighlight && !now.Before(r.entryReadyAt)
		if fired {
			r.entryReadyAt = now.Add(r.profile.EntryCooldown)
		}
		r.transition(StateThreeFingerEntry)
		return Action{State: StateThreeFingerEntry, Fired: fired}
	}

	// 2. Two-finger tap/select. Inside a planet environment there is
	// nothing to select, so the pose falls through to the grab rule.
	if fingers.TwoFingerPose() && !ctx.InPlanetMode {
		avgX := (h.Points[detector.IndexTip].X + h.Points[detector.MiddleTip].X) / 2
		normX := ctx.Calibration.NormalizeX(avgX, ctx.FrameWidth)
		idx := PlanetIndex(normX, ctx.PlanetCount)

		commit := false
		if r.state != StateTapping {
			if r.tapCount > 0 && !now.After(r.tapDeadline) {
				commit = true
				r.tapCount = 0
				r.tapDeadline = time.Time{}
			} else {
				r.tapCount = 1
				r.tapDeadline = now.Add(r.profile.TapWindow)
			}
		}
		r.transition(StateTapping)
		return Action{State: StateTapping, PlanetIndex: idx, Commit: commit, Fired: commit}
	}

	// 3. Pinch/zoom.
	pinchDist := h.PinchDistance(ctx.FrameWidth)
	if r.state == StatePinching {
		released := pinchDist > r.profile.PinchReleaseFactor*r.profile.PinchStart || fingers.OpenHand()
		if !released {
			return Action{State: StatePinching, Zoom: r.zoomFactor(pinchDist)}
		}
		// Fall through: the frame is re-evaluated against the lower
		// priority rules with the pinch baseline cleared.
		r.transition(StateIdle)
	} else if pinchDist < r.profile.PinchStart && fingers.Thumb && !fingers.OpenHand() {
		// A tucked thumb sits close to the index tip without pinching;
		// requiring an extended thumb keeps the grab pose from reading
		// as a pinch.
		r.transition(StatePinching)
		r.pinchStart = pinchDist
		return Action{State: StatePinching, Zoom: 1}
	}

	// 4. Grab. Only meaningful when a ball is on the ground; one pickup
	// per debounce window.
	if fingers.TwoFingerPose() && ctx.BallAvailable {
		fired := now.Sub(r.lastGrab) >= r.profile.GrabDebounce
		if fired {
			r.lastGrab = now
		}
		r.transition(StateGrabbing)
		return Action{State: StateGrabbing, Fired: fired}
	}

	// 5. Throw. Open hand while holding the ball, fast palm movement.
	if ctx.HoldingBall && fingers.OpenHand() && ctx.HasPalmVelocity {
		v := ThrowVelocity(ctx.PalmVelocity)
		if v.Length() > r.profile.ThrowThreshold {
			r.transition(StateThrowing)
			return Action{State: StateThrowing, Velocity: v, Fired: true}
		}
	}

	// 6. Rotate. Open hand not claimed by a higher rule drives the
	// camera orbit from the palm delta.
	if fingers.OpenHand() {
		palm := h.Palm()
		nx := ctx.Calibration.NormalizeX(palm.X, ctx.FrameWidth)
		ny := ctx.Calibration.NormalizeY(palm.Y, ctx.FrameHeight)

		var dx, dy float64
		if r.palmValid {
			dx = nx - r.lastPalmX
			dy = ny - r.lastPalmY
			if math.Abs(dx) < r.profile.RotateDeadZone && math.Abs(dy) < r.profile.RotateDeadZone {
				dx, dy = 0, 0
			}
		}
		r.transition(StateRotating)
		r.lastPalmX = nx
		r.lastPalmY = ny
		r.palmValid = true

		return Action{
			State:   StateRotating,
			RotateX: dx * r.profile.RotateSensitivity,
			RotateY: dy * r.profile.RotateSensitivity,
		}
	}

	// 7. Nothing matched.
	r.transition(StateIdle)
	return Action{State: StateIdle}
}

// zoomFactor shapes the current pinch distance into the damped, clamped
// zoom factor applied to the camera.
func (r *Recognizer) zoomFactor(pinchDist float64) float64 {
	if r.pinchStart <= 0 {
		return 1
	}
	raw := math.Pow(pinchDist/r.pinchStart, r.profile.ZoomExponent)
	clamped := vmath.Clamp(raw, r.profile.ZoomMin, r.profile.ZoomMax)
	return 1 + (clamped-1)*r.profile.ZoomDamping
}

// transition switches the active state, resetting the auxiliary fields of
// the state being left so stale data cannot leak into its next
// activation. The grab and entry debounce anchors intentionally survive:
// they are re-arm windows, not per-activation scratch state.
func (r *Recognizer) transition(next State) {
	if r.state == next {
		return
	}

	switch r.state {
	case StatePinching:
		r.pinchStart = 0
	case StateRotating:
		r.palmValid = false
	}

	// Another gesture taking over cancels a pending double tap; decaying
	// to idle does not, since the second tap of a double tap arrives
	// through an idle gap.
	if next != StateIdle && next != StateTapping {
		r.tapCount = 0
		r.tapDeadline = time.Time{}
	}

	r.state = next
}

// ThrowVelocity converts a mean palm displacement into a throw velocity:
// scaled by throwScale with the depth axis sign inverted.
func ThrowVelocity(palmVelocity vmath.Vec3) vmath.Vec3 {
	v := palmVelocity.Scale(throwScale)
	v.Z = -v.Z
	return v
}

// PalmVelocity estimates palm velocity as the mean frame-to-frame
// displacement over a most-recent-first history of palm world positions.
// It reports false until at least two positions are buffered.
func PalmVelocity(history []vmath.Vec3) (vmath.Vec3, bool) {
	if len(history) < 2 {
		return vmath.Vec3{}, false
	}

	n := len(history) - 1
	dxs := make([]float64, n)
	dys := make([]float64, n)
	dzs := make([]float64, n)
	for i := 0; i < n; i++ {
		// history[i] is newer than history[i+1].
		dxs[i] = history[i].X - history[i+1].X
		dys[i] = history[i].Y - history[i+1].Y
		dzs[i] = history[i].Z - history[i+1].Z
	}

	return vmath.Vec3{
		X: stat.Mean(dxs, nil),
		Y: stat.Mean(dys, nil),
		Z: stat.Mean(dzs, nil),
	}, true
}
