// Package tracker drives the per-frame gesture pipeline: frame
// acquisition, hand detection, smoothing, finger classification, gesture
// disambiguation and effect application.
package tracker

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ayusman/orrery/internal/capture"
	"github.com/ayusman/orrery/internal/detector"
	"github.com/ayusman/orrery/internal/gesture"
	"github.com/ayusman/orrery/internal/scene"
	"github.com/ayusman/orrery/internal/vmath"
)

// Loop timing constants.
const (
	// IdleTimeout is how long without motion before dropping back to the
	// idle frame rate.
	IdleTimeout = 2 * time.Second
	// RestartDelay is the pause before tracking resumes after a per-frame
	// inference failure.
	RestartDelay = 2 * time.Second
)

// SolarSceneName is the scene label reported to observers when no planet
// environment is active.
const SolarSceneName = "solar system"

// Errors fatal to Start.
var (
	ErrNoCamera   = errors.New("tracker: no camera configured")
	ErrNoDetector = errors.New("tracker: no detector configured")
)

// Event is a discrete recognized gesture surfaced to observers (store,
// tray, server).
type Event struct {
	Gesture  string
	Planet   string
	Velocity vmath.Vec3
	At       time.Time
}

// Config holds the tracker's collaborators and tuning.
type Config struct {
	Camera       capture.Camera
	Detector     detector.Detector
	World        *scene.World
	Profile      gesture.Profile
	MotionThresh float64
}

// Status is the tracker state snapshot served to clients: the active
// gesture, the smoothed fingertip cursor, the latest landmarks and the
// world snapshot, enough to draw the debug overlay.
type Status struct {
	Running  bool                    `json:"running"`
	Gesture  string                  `json:"gesture"`
	Cursor   detector.Point3D        `json:"cursor"`
	Hand     *detector.HandLandmarks `json:"hand,omitempty"`
	World    scene.Snapshot          `json:"world"`
	Profile  string                  `json:"profile"`
	SeenHand bool                    `json:"seenHand"`
}

// Tracker owns all mutable cross-frame gesture state: the recognizer, the
// history buffers and the calibration. Everything runs on one loop
// goroutine; a tick that is still waiting on the detector never overlaps
// with the next.
type Tracker struct {
	camera     capture.Camera
	detector   detector.Detector
	world      *scene.World
	effects    *scene.Effects
	recognizer *gesture.Recognizer
	smoother   *gesture.Smoother
	motion     *capture.MotionDetector

	mu        sync.RWMutex
	calib     gesture.Calibration
	stopCh    chan struct{}
	cursor    detector.Point3D
	lastState gesture.State
	profile   string
	frames    frameHistory
	palms     palmHistory
	onEvent   func(Event)
	onScene   func(scene string)

	// framePending serializes pose-estimation requests: a tick that
	// fires while inference is outstanding is skipped.
	framePending bool

	// restartAt pauses the pipeline after an inference failure.
	restartAt time.Time
}

// New creates a Tracker. Entering a planet environment switches the
// recognizer to the surface threshold profile; leaving restores solar.
func New(cfg Config) *Tracker {
	motionThresh := cfg.MotionThresh
	if motionThresh <= 0 {
		motionThresh = 1.0 // percent of pixels changed
	}

	t := &Tracker{
		camera:     cfg.Camera,
		detector:   cfg.Detector,
		world:      cfg.World,
		recognizer: gesture.NewRecognizer(cfg.Profile),
		smoother:   gesture.NewSmoother(gesture.SmootherWindow),
		motion:     capture.NewMotionDetector(motionThresh),
		calib:      gesture.IdentityCalibration(),
		profile:    cfg.Profile.Name,
	}

	t.effects = scene.NewEffects(cfg.World)
	t.effects.OnEnterPlanet(func(planet string) {
		surface := gesture.SurfaceProfile()
		t.mu.Lock()
		t.recognizer.SetProfile(surface)
		t.profile = surface.Name
		onScene := t.onScene
		t.mu.Unlock()
		if onScene != nil {
			onScene(planet)
		}
	})

	return t
}

// ExitPlanet leaves the active planet environment and restores the solar
// threshold profile. A no-op in the solar view. Unlike entry, which is a
// gesture, exit arrives from the tray or the HTTP API, so it may run on
// any goroutine.
func (t *Tracker) ExitPlanet() {
	if !t.world.InPlanetMode() {
		return
	}
	t.world.ExitPlanet()

	solar := gesture.SolarProfile()
	t.mu.Lock()
	t.recognizer.SetProfile(solar)
	t.profile = solar.Name
	onScene := t.onScene
	t.mu.Unlock()

	log.Println("Left planet environment")
	if onScene != nil {
		onScene(SolarSceneName)
	}
}

// Effects returns the effect handlers, so callers can inject pickup and
// throw callbacks.
func (t *Tracker) Effects() *scene.Effects {
	return t.effects
}

// SetDetector swaps the hand detector. Only valid while stopped.
func (t *Tracker) SetDetector(d detector.Detector) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detector = d
}

// SetCamera swaps the camera. Only valid while stopped.
func (t *Tracker) SetCamera(c capture.Camera) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.camera = c
}

// OnEvent registers a callback for discrete recognized gestures. It is
// invoked from the tracking goroutine.
func (t *Tracker) OnEvent(fn func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEvent = fn
}

// OnSceneChange registers a callback invoked when the view switches: the
// planet name on entry, SolarSceneName on exit.
func (t *Tracker) OnSceneChange(fn func(scene string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onScene = fn
}

// Calibration returns the current pixel-to-normalized mapping.
func (t *Tracker) Calibration() gesture.Calibration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.calib
}

// SetCalibration replaces the calibration record. In-memory only; it is
// reset with the process.
func (t *Tracker) SetCalibration(c gesture.Calibration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calib = c
}

// Running reports whether the tracking loop is active.
func (t *Tracker) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stopCh != nil
}

// Start opens the camera and launches the tracking loop. Missing
// collaborators and camera failures are fatal; the caller decides the
// fallback UX.
func (t *Tracker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopCh != nil {
		return nil
	}
	if t.camera == nil {
		return ErrNoCamera
	}
	if t.detector == nil {
		return ErrNoDetector
	}

	if err := t.camera.Open(); err != nil {
		return err
	}
	t.camera.SetFPS(capture.IdleFPS)

	t.stopCh = make(chan struct{})
	go t.run(t.stopCh)

	log.Println("Tracking started")
	return nil
}

// Stop halts the loop, clears all gesture state and releases the camera.
// An in-flight detector call is not aborted; its continuation is skipped.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.stopCh == nil {
		t.mu.Unlock()
		return
	}
	close(t.stopCh)
	t.stopCh = nil
	t.mu.Unlock()

	t.reset()
	t.motion.Close()
	if err := t.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	log.Println("Tracking stopped")
}

// Snapshot captures the current tracker status.
func (t *Tracker) Snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	status := Status{
		Running: t.stopCh != nil,
		Gesture: t.lastState.String(),
		Cursor:  t.cursor,
		World:   t.world.Snapshot(),
		Profile: t.profile,
	}
	if hand, ok := t.frames.Latest(); ok {
		status.Hand = &hand
		status.SeenHand = true
	}
	return status
}

// run is the tracking loop. One tick per interval: read a frame, gate on
// motion, detect hands, update buffers, run the disambiguator, apply at
// most one effect, advance the ball.
func (t *Tracker) run(stopCh chan struct{}) {
	activeMode := false
	lastMotion := time.Now()
	interval := time.Second / time.Duration(capture.IdleFPS)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			now := time.Now()

			// The ball's flight is wall-clock based; it keeps moving
			// while the motion gate has the pipeline idling, through
			// restart cooldowns and across frame errors.
			t.world.Step(now)

			// Cooling off after an inference failure.
			t.mu.RLock()
			restartAt := t.restartAt
			pending := t.framePending
			t.mu.RUnlock()
			if now.Before(restartAt) {
				continue
			}
			if pending {
				continue
			}

			frame, err := t.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			moved, _ := t.motion.Detect(frame)
			if moved {
				lastMotion = now
				if !activeMode {
					activeMode = true
					t.camera.SetFPS(capture.ActiveFPS)
					interval = time.Second / time.Duration(capture.ActiveFPS)
					ticker.Reset(interval)
				}
			} else if activeMode && now.Sub(lastMotion) > IdleTimeout {
				activeMode = false
				t.camera.SetFPS(capture.IdleFPS)
				interval = time.Second / time.Duration(capture.IdleFPS)
				ticker.Reset(interval)
				t.reset()
			}

			if !activeMode {
				frame.Close()
				continue
			}

			t.mu.Lock()
			t.framePending = true
			t.mu.Unlock()

			hands, err := t.detector.Detect(frame)
			frame.Close()

			t.mu.Lock()
			t.framePending = false
			t.mu.Unlock()

			if err != nil {
				// Transient camera/model hiccups should not kill the
				// session: pause and resume.
				log.Printf("Hand detection failed: %v (restarting in %s)", err, RestartDelay)
				t.mu.Lock()
				t.restartAt = time.Now().Add(RestartDelay)
				t.mu.Unlock()
				t.reset()
				continue
			}

			if len(hands) == 0 {
				t.reset()
			} else {
				t.processHand(&hands[0], now)
			}
		}
	}
}

// processHand runs one frame through the pipeline.
func (t *Tracker) processHand(hand *detector.HandLandmarks, now time.Time) {
	width := float64(t.camera.Width())
	height := float64(t.camera.Height())

	t.mu.Lock()
	t.frames.Push(*hand)
	t.cursor = t.smoother.Smooth(hand.Points[detector.IndexTip])
	calib := t.calib

	palmWorld := screenToWorld(hand.Palm(), calib, width, height)
	t.palms.Push(palmWorld)
	palmVel, hasVel := gesture.PalmVelocity(t.palms.Points())
	t.mu.Unlock()

	ctx := gesture.Context{
		FrameWidth:      width,
		FrameHeight:     height,
		Calibration:     calib,
		PlanetCount:     t.world.PlanetCount(),
		InPlanetMode:    t.world.InPlanetMode(),
		HasHighlight:    t.world.Highlighted() != "",
		BallAvailable:   t.world.BallAvailable(),
		HoldingBall:     t.world.HoldingBall(),
		PalmVelocity:    palmVel,
		HasPalmVelocity: hasVel,
	}

	// Keep the trajectory preview pointed at the live aim while the
	// ball is held.
	if ctx.HoldingBall && hasVel {
		t.world.SetAim(gesture.ThrowVelocity(palmVel))
	}

	// The recognizer is guarded because ExitPlanet swaps its profile from
	// outside the tracking goroutine.
	t.mu.Lock()
	action := t.recognizer.Update(hand, ctx)
	t.mu.Unlock()

	t.effects.Apply(action, now)

	t.mu.Lock()
	t.lastState = action.State
	onEvent := t.onEvent
	t.mu.Unlock()

	if action.Fired && onEvent != nil {
		onEvent(Event{
			Gesture:  action.State.String(),
			Planet:   t.world.Highlighted(),
			Velocity: action.Velocity,
			At:       now,
		})
	}
}

// reset clears all cross-frame gesture state, as on hand loss.
func (t *Tracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recognizer.Reset()
	t.smoother.Reset()
	t.frames.Clear()
	t.palms.Clear()
	t.lastState = gesture.StateIdle
	t.cursor = detector.Point3D{}
}

// screenToWorld maps a pixel-space palm position into the world frame the
// throw velocity is expressed in: x, y normalized to [-1, 1] with y
// flipped to point up, z kept as the estimator's relative depth.
func screenToWorld(p detector.Point3D, calib gesture.Calibration, width, height float64) vmath.Vec3 {
	return vmath.Vec3{
		X: (calib.NormalizeX(p.X, width) - 0.5) * 2,
		Y: (0.5 - calib.NormalizeY(p.Y, height)) * 2,
		Z: p.Z,
	}
}
