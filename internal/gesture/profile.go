package gesture

import "time"

// Profile bundles the recognizer's numeric thresholds. The solar view and
// the planet-surface view need different pinch sensitivity, so the
// recognizer is one configurable implementation selected by profile
// rather than parallel variants.
type Profile struct {
	Name string

	// PinchStart is the normalized thumb-to-index distance below which a
	// pinch begins. A pinch ends once the distance exceeds
	// PinchReleaseFactor times this value, or the hand opens fully.
	PinchStart         float64
	PinchReleaseFactor float64

	// ZoomExponent shapes the raw distance ratio; ZoomDamping pulls the
	// shaped factor back toward 1 before it reaches the camera. The final
	// factor is clamped to [ZoomMin, ZoomMax].
	ZoomExponent float64
	ZoomDamping  float64
	ZoomMin      float64
	ZoomMax      float64

	// ThrowThreshold is the minimum palm velocity magnitude for a throw.
	ThrowThreshold float64

	// RotateDeadZone is the normalized palm delta below which rotation is
	// ignored; RotateSensitivity scales deltas above it.
	RotateDeadZone    float64
	RotateSensitivity float64

	// Debounce windows.
	GrabDebounce  time.Duration
	TapWindow     time.Duration
	EntryCooldown time.Duration
}

// SolarProfile returns the thresholds used while navigating the solar
// system view.
func SolarProfile() Profile {
	return Profile{
		Name:               "solar",
		PinchStart:         0.22,
		PinchReleaseFactor: 2.0,
		ZoomExponent:       1.2,
		ZoomDamping:        0.7,
		ZoomMin:            0.5,
		ZoomMax:            2.0,
		ThrowThreshold:     1.2,
		RotateDeadZone:     0.005,
		RotateSensitivity:  1.5,
		GrabDebounce:       500 * time.Millisecond,
		TapWindow:          800 * time.Millisecond,
		EntryCooldown:      300 * time.Millisecond,
	}
}

// SurfaceProfile returns the thresholds used inside a planet environment,
// where the hand sits closer to the camera and pinches read wider.
func SurfaceProfile() Profile {
	p := SolarProfile()
	p.Name = "surface"
	p.PinchStart = 0.5
	return p
}

// ProfileByName returns the named threshold profile, defaulting to solar.
func ProfileByName(name string) Profile {
	if name == "surface" {
		return SurfaceProfile()
	}
	return SolarProfile()
}
