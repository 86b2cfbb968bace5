package gesture

import "math"

// Calibration maps raw pixel coordinates onto the normalized [0,1] axes
// used for ordered planet selection. It is mutated only by an explicit
// calibration action and lives in memory for the session; nothing is
// persisted.
type Calibration struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	ScaleX  float64 `json:"scaleFactorX"`
	ScaleY  float64 `json:"scaleFactorY"`
}

// IdentityCalibration returns the default calibration that maps pixel
// coordinates straight through.
func IdentityCalibration() Calibration {
	return Calibration{ScaleX: 1, ScaleY: 1}
}

// NormalizeX maps a raw pixel x coordinate to [0,1] for the given frame
// width.
func (c Calibration) NormalizeX(x, frameWidth float64) float64 {
	if frameWidth <= 0 {
		return 0
	}
	n := (x - c.OffsetX) * c.ScaleX / frameWidth
	return clamp01(n)
}

// NormalizeY maps a raw pixel y coordinate to [0,1] for the given frame
// height.
func (c Calibration) NormalizeY(y, frameHeight float64) float64 {
	if frameHeight <= 0 {
		return 0
	}
	n := (y - c.OffsetY) * c.ScaleY / frameHeight
	return clamp01(n)
}

// PlanetIndex maps a normalized x coordinate onto a discrete index into an
// ordered list of count planets, clamped to the last index.
func PlanetIndex(normX float64, count int) int {
	if count <= 0 {
		return 0
	}
	idx := int(math.Floor(normX * float64(count)))
	if idx >= count {
		idx = count - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
