// Package physics provides the closed-form projectile kinematics used for
// trajectory previews and ball flight inside planet environments.
package physics

// EarthGravity is the fallback surface gravity in m/s².
const EarthGravity = 9.81

// surfaceGravity maps planet identifiers to surface gravity in m/s².
var surfaceGravity = map[string]float64{
	"mercury": 3.7,
	"venus":   8.87,
	"earth":   EarthGravity,
	"mars":    3.71,
	"jupiter": 24.79,
	"saturn":  10.44,
	"uranus":  8.87,
	"neptune": 11.15,
}

// GravityFor returns the surface gravity for the given planet, falling
// back to Earth gravity for unknown identifiers.
func GravityFor(planet string) float64 {
	if g, ok := surfaceGravity[planet]; ok {
		return g
	}
	return EarthGravity
}
