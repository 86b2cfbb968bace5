package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/orrery/internal/app"
	"github.com/ayusman/orrery/internal/server"
	"github.com/ayusman/orrery/internal/store"
	"github.com/ayusman/orrery/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device index")
	dbPath := flag.String("db", "", "path to the telemetry database (default ~/.orrery/orrery.db)")
	profile := flag.String("profile", "solar", "gesture profile to start with (solar or surface)")
	motion := flag.Float64("motion", 0, "motion gate threshold override (0 uses the default)")
	useTray := flag.Bool("tray", false, "run with a system tray icon")
	flag.Parse()

	fmt.Println("Orrery - Gesture-Driven Solar System")

	st, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:        st,
		CameraID:     *cameraID,
		Profile:      *profile,
		MotionThresh: *motion,
	})

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Tracker:   a.Tracker(),
		World:     a.World(),
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start tracking: %v", err)
	}

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *useTray {
		runTray(a, *addr)
		return
	}

	// Block until interrupted.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.Stop()
	a.CloseDetector()
}

// runTray runs the tray event loop on the main goroutine, as systray
// requires, and wires the tracking lifecycle to its menu.
func runTray(a *app.App, addr string) {
	t := tray.New()

	a.OnGesture(t.SetLastGesture)
	a.OnScene(t.SetScene)
	t.OnExitScene(a.ExitPlanet)

	t.OnToggle(func(enabled bool) {
		if enabled {
			if err := a.Start(); err != nil {
				log.Printf("Failed to resume tracking: %v", err)
			}
		} else {
			a.Stop()
		}
	})
	t.OnViewer(func() {
		fmt.Printf("Viewer: http://localhost%s/\n", addr)
	})
	t.OnQuit(func() {
		a.Stop()
		a.CloseDetector()
	})

	t.Run()
}

// openStore opens the telemetry store, creating ~/.orrery when no
// explicit path is given.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbDir := filepath.Join(homeDir, ".orrery")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
		path = filepath.Join(dbDir, "orrery.db")
	}
	return store.New(path)
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.orrery/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".orrery", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
