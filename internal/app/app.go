// Package app wires the Orrery gesture navigation system together:
// camera, detector, world, tracker and session telemetry.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/orrery/internal/capture"
	"github.com/ayusman/orrery/internal/detector"
	"github.com/ayusman/orrery/internal/gesture"
	"github.com/ayusman/orrery/internal/physics"
	"github.com/ayusman/orrery/internal/scene"
	"github.com/ayusman/orrery/internal/store"
	"github.com/ayusman/orrery/internal/tracker"
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	Profile      string
	MotionThresh float64
}

// App owns the application lifecycle: it starts and stops tracking
// sessions and records their telemetry.
type App struct {
	config  Config
	world   *scene.World
	camera  capture.Camera
	det     detector.Detector
	tracker *tracker.Tracker

	mu        sync.Mutex
	session   *store.Session
	onGesture func(name string)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	world := scene.NewWorld()
	camera := capture.NewCamera(config.CameraID)

	a := &App{
		config: config,
		world:  world,
		camera: camera,
	}

	// Try MediaPipe first, fall back to the mock detector.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.det = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.det = detector.NewMockDetector()
	}

	a.tracker = tracker.New(tracker.Config{
		Camera:       camera,
		Detector:     a.det,
		World:        world,
		Profile:      gesture.ProfileByName(config.Profile),
		MotionThresh: config.MotionThresh,
	})
	a.tracker.OnEvent(a.handleEvent)

	return a
}

// SetDetector replaces the hand detector. Only valid while stopped.
func (a *App) SetDetector(d detector.Detector) {
	a.det = d
	a.tracker.SetDetector(d)
}

// SetCamera replaces the camera. Only valid while stopped.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
	a.tracker.SetCamera(c)
}

// OnGesture registers a callback for recognized gestures, e.g. the tray's
// last-gesture display.
func (a *App) OnGesture(fn func(name string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onGesture = fn
}

// OnScene registers a callback for scene switches, e.g. the tray's scene
// display.
func (a *App) OnScene(fn func(scene string)) {
	a.tracker.OnSceneChange(fn)
}

// ExitPlanet leaves the active planet environment and returns to the
// solar system view.
func (a *App) ExitPlanet() {
	a.tracker.ExitPlanet()
}

// Start opens a telemetry session and launches tracking.
func (a *App) Start() error {
	if err := a.tracker.Start(); err != nil {
		return err
	}

	if a.config.Store != nil {
		session, err := a.config.Store.Sessions().Start(gesture.ProfileByName(a.config.Profile).Name)
		if err != nil {
			log.Printf("Failed to start telemetry session: %v", err)
		} else {
			a.mu.Lock()
			a.session = session
			a.mu.Unlock()
		}
	}

	return nil
}

// Stop halts tracking and closes the telemetry session.
func (a *App) Stop() {
	a.tracker.Stop()

	a.mu.Lock()
	session := a.session
	a.session = nil
	a.mu.Unlock()

	if session != nil && a.config.Store != nil {
		if err := a.config.Store.Sessions().End(session.ID); err != nil {
			log.Printf("Failed to end telemetry session: %v", err)
		}
	}
}

// handleEvent records a discrete recognized gesture. Runs on the tracking
// goroutine.
func (a *App) handleEvent(ev tracker.Event) {
	log.Printf("Gesture: %s (planet: %s)", ev.Gesture, ev.Planet)

	a.mu.Lock()
	session := a.session
	onGesture := a.onGesture
	a.mu.Unlock()

	if onGesture != nil {
		onGesture(ev.Gesture)
	}

	if a.config.Store == nil || session == nil {
		return
	}

	if _, err := a.config.Store.Events().Record(session.ID, ev.Gesture, ev.Planet, ev.At); err != nil {
		log.Printf("Failed to record gesture event: %v", err)
	}

	if ev.Gesture == gesture.StateThrowing.String() {
		a.recordThrow(session.ID, ev)
	}
}

// recordThrow captures the frozen launch parameters and the predicted
// landing of a throw.
func (a *App) recordThrow(sessionID string, ev tracker.Event) {
	env := a.world.Env()
	if env == nil {
		return
	}
	flight := env.Flight()
	if flight == nil {
		return
	}

	params := flight.Params()
	prediction := physics.Predict(params)

	t := &store.Throw{
		SessionID:  sessionID,
		Planet:     env.Planet,
		Speed:      params.Speed,
		Angle:      params.Angle,
		Gravity:    params.Gravity,
		LandingX:   prediction.Landing.X,
		LandingZ:   prediction.Landing.Z,
		FlightTime: prediction.FlightTime,
		ThrownAt:   ev.At,
	}
	if err := a.config.Store.Throws().Record(t); err != nil {
		log.Printf("Failed to record throw: %v", err)
	}
}

// World returns the scene world.
func (a *App) World() *scene.World {
	return a.world
}

// Tracker returns the tracking loop driver.
func (a *App) Tracker() *tracker.Tracker {
	return a.tracker
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.det
}

// CloseDetector releases the detector's resources.
func (a *App) CloseDetector() {
	if a.det != nil {
		if err := a.det.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
}
