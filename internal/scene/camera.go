package scene

import (
	"math"

	"github.com/ayusman/orrery/internal/vmath"
)

// Zoom distance bounds for the orbit camera.
const (
	MinZoomDistance = 10.0
	MaxZoomDistance = 200.0
)

// phiEpsilon keeps the polar angle away from the poles so the camera
// never flips over the orbit target.
const phiEpsilon = 0.01

// Camera is the renderer-facing camera state: a position and a look-at
// target.
type Camera struct {
	Position vmath.Vec3
	target   vmath.Vec3
}

// NewCamera creates a camera at the given position looking at the target.
func NewCamera(position, target vmath.Vec3) *Camera {
	return &Camera{Position: position, target: target}
}

// LookAt points the camera at the given target.
func (c *Camera) LookAt(target vmath.Vec3) {
	c.target = target
}

// Target returns the current look-at target.
func (c *Camera) Target() vmath.Vec3 {
	return c.target
}

// GetWorldDirection returns the unit vector from the camera toward its
// target.
func (c *Camera) GetWorldDirection() vmath.Vec3 {
	return c.target.Sub(c.Position).Normalize()
}

// OrbitController keeps a camera on a sphere around a target, mirroring
// the relative-rotate API the rendering client's controls expose.
type OrbitController struct {
	Target      vmath.Vec3
	MinDistance float64
	MaxDistance float64

	camera *Camera
	theta  float64 // azimuth around y
	phi    float64 // polar angle from +y
	radius float64
}

// NewOrbitController wraps the camera in an orbit around target, reading
// the initial spherical coordinates from the camera's current position.
func NewOrbitController(camera *Camera, target vmath.Vec3) *OrbitController {
	o := &OrbitController{
		Target:      target,
		MinDistance: MinZoomDistance,
		MaxDistance: MaxZoomDistance,
		camera:      camera,
	}
	o.theta, o.phi, o.radius = toSpherical(camera.Position.Sub(target))
	return o
}

// RotateLeft adjusts the azimuth by the given angle in radians.
func (o *OrbitController) RotateLeft(angle float64) {
	o.theta -= angle
}

// RotateUp adjusts the polar angle by the given angle in radians, clamped
// away from the poles.
func (o *OrbitController) RotateUp(angle float64) {
	o.phi = vmath.Clamp(o.phi-angle, phiEpsilon, math.Pi-phiEpsilon)
}

// Zoom divides the orbit radius by the given factor (factors above 1 move
// the camera closer), clamped to [MinDistance, MaxDistance].
func (o *OrbitController) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.radius = vmath.Clamp(o.radius/factor, o.MinDistance, o.MaxDistance)
}

// Retarget moves the orbit target and rereads the spherical coordinates
// from the camera's current position.
func (o *OrbitController) Retarget(target vmath.Vec3) {
	o.Target = target
	o.theta, o.phi, o.radius = toSpherical(o.camera.Position.Sub(target))
	o.camera.LookAt(target)
}

// Distance returns the current orbit radius.
func (o *OrbitController) Distance() float64 {
	return o.radius
}

// Update reprojects the spherical coordinates onto the camera position
// and refreshes the look-at.
func (o *OrbitController) Update() {
	o.camera.Position = o.Target.Add(fromSpherical(o.theta, o.phi, o.radius))
	o.camera.LookAt(o.Target)
}

// RotateAboutTarget is the controller-less fallback: it converts the
// camera-to-target offset to spherical coordinates, adjusts theta and phi
// (phi clamped away from the poles), reprojects to Cartesian and updates
// the look-at.
func RotateAboutTarget(camera *Camera, target vmath.Vec3, dTheta, dPhi float64) {
	theta, phi, radius := toSpherical(camera.Position.Sub(target))
	theta -= dTheta
	phi = vmath.Clamp(phi-dPhi, phiEpsilon, math.Pi-phiEpsilon)
	camera.Position = target.Add(fromSpherical(theta, phi, radius))
	camera.LookAt(target)
}

// toSpherical decomposes an offset into azimuth, polar angle and radius.
func toSpherical(offset vmath.Vec3) (theta, phi, radius float64) {
	radius = offset.Length()
	if radius == 0 {
		return 0, math.Pi / 2, 0
	}
	theta = math.Atan2(offset.X, offset.Z)
	phi = math.Acos(vmath.Clamp(offset.Y/radius, -1, 1))
	return theta, phi, radius
}

// fromSpherical recomposes an offset from azimuth, polar angle and radius.
func fromSpherical(theta, phi, radius float64) vmath.Vec3 {
	sinPhi := math.Sin(phi)
	return vmath.Vec3{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
}
