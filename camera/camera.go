// Package camera provides a first-person 3D camera for viewing ring effects.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ringfx/effects"
)

const (
	nearPlane = 0.05
	farPlane  = 500
)

// Camera is a yaw/pitch viewer. Yaw 0 faces -Z; positive pitch looks up.
type Camera struct {
	// Position is the eye in world coordinates
	Position mgl32.Vec3

	// Yaw and Pitch in radians
	Yaw, Pitch float32

	// Vertical field of view in degrees
	FOV float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Pitch constraint, symmetric around the horizon
	MaxPitch float32

	home mgl32.Vec3
}

// New creates a camera at position looking down -Z.
func New(viewportW, viewportH, fov float32, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:  position,
		FOV:       fov,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MaxPitch:  mgl32.DegToRad(89),
		home:      position,
	}
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	sy, cy := sincos(c.Yaw)
	sp, cp := sincos(c.Pitch)
	return mgl32.Vec3{-sy * cp, sp, -cy * cp}
}

// Right returns the unit horizontal right vector.
func (c *Camera) Right() mgl32.Vec3 {
	sy, cy := sincos(c.Yaw)
	return mgl32.Vec3{cy, 0, -sy}
}

// Up returns the camera-relative up vector.
func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// Target returns a point one unit in front of the eye.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward())
}

// Orientation returns yaw about world Y followed by pitch about local X.
func (c *Camera) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Yaw, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(c.Pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch).Normalize()
}

// Pose implements effects.PoseSource.
func (c *Camera) Pose() effects.Pose {
	return effects.NewPose(c.Position, c.Orientation())
}

// Rotate turns the camera by the given deltas, clamping pitch and wrapping yaw.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, -c.MaxPitch, c.MaxPitch)
}

// SetLook sets yaw and pitch directly.
func (c *Camera) SetLook(yaw, pitch float32) {
	c.Yaw = wrapAngle(yaw)
	c.Pitch = clamp(pitch, -c.MaxPitch, c.MaxPitch)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target(), mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the current viewport.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, nearPlane, farPlane)
}

// WorldToScreen projects a world point to screen pixels (origin top-left).
// ok is false for points behind the eye.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float32, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	sx = (ndc.X() + 1) / 2 * c.ViewportW
	sy = (1 - ndc.Y()) / 2 * c.ViewportH
	return sx, sy, true
}

// IsVisible returns true if a sphere at p with the given radius could be
// on screen (conservative cone test for culling).
func (c *Camera) IsVisible(p mgl32.Vec3, radius float32) bool {
	d := p.Sub(c.Position)
	dist := d.Len()
	if dist <= radius {
		return true
	}
	along := d.Dot(c.Forward())
	if along < -radius {
		return false
	}

	// Half-angle of the cone enclosing the frustum
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	tanV := float32(math.Tan(float64(mgl32.DegToRad(c.FOV) / 2)))
	tanD := tanV * float32(math.Sqrt(float64(1+aspect*aspect)))
	half := float32(math.Atan(float64(tanD)))

	angle := float32(math.Acos(float64(clamp(along/dist, -1, 1))))
	slack := float32(math.Asin(float64(clamp(radius/dist, 0, 1))))
	return angle <= half+slack
}

// Reset returns the camera to its starting position and look.
func (c *Camera) Reset() {
	c.Position = c.home
	c.Yaw = 0
	c.Pitch = 0
}

func sincos(a float32) (float32, float32) {
	s, co := math.Sincos(float64(a))
	return float32(s), float32(co)
}

// wrapAngle maps an angle into [-pi, pi).
func wrapAngle(a float32) float32 {
	r := float32(math.Mod(float64(a)+math.Pi, 2*math.Pi))
	if r < 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
