package physics

import (
	"math"
	"time"

	"github.com/ayusman/orrery/internal/vmath"
)

// Trajectory stepping constants.
const (
	// TimeStep is the preview sampling interval in seconds.
	TimeStep = 0.1
	// MaxFlightTime caps the stepping horizon in seconds.
	MaxFlightTime = 10.0
)

// Params describes a launch: speed in m/s, elevation angle in radians,
// gravity in m/s², a start position and a horizontal unit direction.
type Params struct {
	Speed     float64    `json:"speed"`
	Angle     float64    `json:"angle"`
	Gravity   float64    `json:"gravity"`
	Start     vmath.Vec3 `json:"start"`
	Direction vmath.Vec3 `json:"direction"`
}

// PositionAt returns the projectile position t seconds after launch:
// start + direction·(speed·cosθ)·t horizontally and
// start.y + (speed·sinθ)·t − ½·g·t² vertically.
func (p Params) PositionAt(t float64) vmath.Vec3 {
	horiz := p.Speed * math.Cos(p.Angle) * t
	return vmath.Vec3{
		X: p.Start.X + p.Direction.X*horiz,
		Y: p.Start.Y + p.Speed*math.Sin(p.Angle)*t - 0.5*p.Gravity*t*t,
		Z: p.Start.Z + p.Direction.Z*horiz,
	}
}

// FlightTime returns the time until the projectile returns to ground
// level (y = 0), solving the vertical quadratic exactly.
func (p Params) FlightTime() float64 {
	if p.Gravity <= 0 {
		return 0
	}
	vy := p.Speed * math.Sin(p.Angle)
	disc := vy*vy + 2*p.Gravity*p.Start.Y
	if disc < 0 {
		return 0
	}
	return (vy + math.Sqrt(disc)) / p.Gravity
}

// Prediction is the pre-throw preview: a polyline of the flight sampled
// at TimeStep, the landing point and the flight time.
type Prediction struct {
	Points     []vmath.Vec3 `json:"points"`
	Landing    vmath.Vec3   `json:"landing"`
	FlightTime float64      `json:"flightTime"`
}

// Predict samples the flight at TimeStep intervals until the projectile
// reaches ground level or the horizon, then records the exact landing
// point and flight time.
func Predict(p Params) Prediction {
	var points []vmath.Vec3
	for t := 0.0; t <= MaxFlightTime; t += TimeStep {
		pos := p.PositionAt(t)
		if t > 0 && pos.Y <= 0 {
			break
		}
		points = append(points, pos)
	}

	ft := p.FlightTime()
	if ft > MaxFlightTime {
		ft = MaxFlightTime
	}
	landing := p.PositionAt(ft)
	landing.Y = 0

	return Prediction{
		Points:     points,
		Landing:    landing,
		FlightTime: ft,
	}
}

// Range returns the horizontal distance covered by a projectile launched
// from ground level: speed²·sin(2θ)/g.
func Range(speed, angle, gravity float64) float64 {
	if gravity <= 0 {
		return 0
	}
	return speed * speed * math.Sin(2*angle) / gravity
}

// MaxHeight returns the apex height above the launch point:
// (speed·sinθ)²/(2g).
func MaxHeight(speed, angle, gravity float64) float64 {
	if gravity <= 0 {
		return 0
	}
	vy := speed * math.Sin(angle)
	return vy * vy / (2 * gravity)
}

// Flight is a launched projectile. Its parameters are captured atomically
// at the instant of the throw and frozen: camera or character movement
// after launch cannot perturb a ball already in the air.
type Flight struct {
	params Params
	start  time.Time
}

// Launch freezes the given parameters at the given start time.
func Launch(p Params, at time.Time) *Flight {
	return &Flight{params: p, start: at}
}

// Params returns the frozen launch parameters.
func (f *Flight) Params() Params {
	return f.params
}

// PositionAt returns the projectile position at the given wall-clock time
// and whether it has landed. Positions are always recomputed from the
// frozen launch record, never from current aim.
func (f *Flight) PositionAt(now time.Time) (vmath.Vec3, bool) {
	t := now.Sub(f.start).Seconds()
	if t < 0 {
		t = 0
	}
	if ft := f.params.FlightTime(); t >= ft {
		landing := f.params.PositionAt(ft)
		landing.Y = 0
		return landing, true
	}
	return f.params.PositionAt(t), false
}

// ParamsFromVelocity converts a velocity vector into launch parameters:
// speed is the magnitude, angle the elevation above the horizontal plane,
// direction the normalized horizontal component.
func ParamsFromVelocity(v vmath.Vec3, start vmath.Vec3, gravity float64) Params {
	speed := v.Length()
	horiz := vmath.Vec3{X: v.X, Z: v.Z}

	var angle float64
	if speed > 0 {
		angle = math.Asin(vmath.Clamp(v.Y/speed, -1, 1))
	}

	dir := horiz.Normalize()
	if dir.Length() == 0 {
		dir = vmath.Vec3{Z: -1}
	}

	return Params{
		Speed:     speed,
		Angle:     angle,
		Gravity:   gravity,
		Start:     start,
		Direction: dir,
	}
}
