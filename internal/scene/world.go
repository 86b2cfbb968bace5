package scene

import (
	"sync"
	"time"

	"github.com/ayusman/orrery/internal/vmath"
)

// Default camera placements for the two views.
var (
	solarCameraPos   = vmath.Vec3{Y: 30, Z: 80}
	surfaceCameraPos = vmath.Vec3{Y: 5, Z: 12}
)

// World is the complete renderer-facing state: the camera with its orbit
// controller, the solar system, and the active planet environment when
// inside one. Gesture effects mutate it on the tracking goroutine while
// the server snapshots it, so access is guarded.
type World struct {
	mu sync.RWMutex

	camera *Camera
	orbit  *OrbitController
	solar  *SolarSystem
	env    *Environment
}

// NewWorld creates a world in the solar system view.
func NewWorld() *World {
	camera := NewCamera(solarCameraPos, vmath.Vec3{})
	return &World{
		camera: camera,
		orbit:  NewOrbitController(camera, vmath.Vec3{}),
		solar:  NewSolarSystem(),
	}
}

// Camera returns the camera. The caller must not mutate it concurrently
// with gesture effects; it exists for wiring and tests.
func (w *World) Camera() *Camera {
	return w.camera
}

// Solar returns the solar system model.
func (w *World) Solar() *SolarSystem {
	return w.solar
}

// Env returns the active planet environment, or nil in the solar view.
func (w *World) Env() *Environment {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.env
}

// InPlanetMode reports whether a planet environment is active.
func (w *World) InPlanetMode() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.env != nil
}

// PlanetCount returns the number of selectable planets.
func (w *World) PlanetCount() int {
	return len(w.solar.Order)
}

// HighlightIndex moves the highlight ring to the planet at the given
// order index.
func (w *World) HighlightIndex(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.solar.HighlightIndex(index)
}

// Highlighted returns the highlighted planet name.
func (w *World) Highlighted() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.solar.Highlighted()
}

// EnterHighlighted switches into the environment of the currently
// highlighted planet. Without a highlight, or when already inside an
// environment, it is a no-op and returns "".
func (w *World) EnterHighlighted() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.env != nil {
		return ""
	}
	name := w.solar.Highlighted()
	if name == "" {
		return ""
	}

	w.env = NewEnvironment(name)
	w.camera.Position = surfaceCameraPos
	w.orbit.Retarget(w.env.Character.Position)
	return name
}

// ExitPlanet returns to the solar system view.
func (w *World) ExitPlanet() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.env == nil {
		return
	}
	w.env = nil
	w.camera.Position = solarCameraPos
	w.orbit.Retarget(vmath.Vec3{})
}

// Zoom applies a pinch zoom factor to the camera's distance from its
// orbit target.
func (w *World) Zoom(factor float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.orbit.Zoom(factor)
	w.orbit.Update()
}

// Rotate orbits the camera by the given azimuth and polar deltas. The
// orbit controller's relative-rotate API is preferred; without one the
// spherical fallback runs against the raw camera.
func (w *World) Rotate(dTheta, dPhi float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.orbit != nil {
		w.orbit.RotateLeft(dTheta)
		w.orbit.RotateUp(dPhi)
		w.orbit.Update()
		return
	}
	RotateAboutTarget(w.camera, w.camera.Target(), dTheta, dPhi)
}

// BallAvailable reports whether a ball can be picked up.
func (w *World) BallAvailable() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.env != nil && w.env.BallAvailable()
}

// HoldingBall reports whether the character holds the ball.
func (w *World) HoldingBall() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.env != nil && w.env.IsHoldingBall()
}

// Pickup picks up the ball in the active environment.
func (w *World) Pickup() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.env != nil {
		w.env.PickupBall()
	}
}

// Throw launches the held ball.
func (w *World) Throw(velocity vmath.Vec3, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.env != nil {
		w.env.ThrowBall(velocity, at)
	}
}

// SetAim records the live throw-velocity estimate for the preview.
func (w *World) SetAim(velocity vmath.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.env != nil {
		w.env.SetAim(velocity)
	}
}

// Step advances the active environment's ball to the given time.
func (w *World) Step(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.env != nil {
		w.env.Step(now)
	}
}

// BallSnapshot is the renderer-facing ball state.
type BallSnapshot struct {
	Position vmath.Vec3 `json:"position"`
	Held     bool       `json:"held"`
	InFlight bool       `json:"inFlight"`
	OnGround bool       `json:"onGround"`
}

// Snapshot is the renderer-facing world state broadcast over WebSocket.
type Snapshot struct {
	Mode           string        `json:"mode"` // "solar" or the planet name
	Highlighted    string        `json:"highlighted,omitempty"`
	PlanetOrder    []string      `json:"planetOrder"`
	CameraPosition vmath.Vec3    `json:"cameraPosition"`
	CameraTarget   vmath.Vec3    `json:"cameraTarget"`
	Ball           *BallSnapshot `json:"ball,omitempty"`
	Preview        []vmath.Vec3  `json:"preview,omitempty"`
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := Snapshot{
		Mode:           "solar",
		Highlighted:    w.solar.Highlighted(),
		PlanetOrder:    w.solar.Order,
		CameraPosition: w.camera.Position,
		CameraTarget:   w.camera.Target(),
	}

	if w.env != nil {
		snap.Mode = w.env.Planet
		snap.Ball = &BallSnapshot{
			Position: w.env.Ball.Position,
			Held:     w.env.IsHoldingBall(),
			InFlight: w.env.BallThrown(),
			OnGround: w.env.BallAvailable(),
		}
		if preview, ok := w.env.Preview(); ok {
			snap.Preview = preview.Points
		}
	}

	return snap
}
