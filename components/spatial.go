package components

import "github.com/go-gl/mathgl/mgl32"

// Position represents an entity's feet position in world space.
type Position struct {
	X, Y, Z float32
}

// Vec returns the position as a vector.
func (p Position) Vec() mgl32.Vec3 { return mgl32.Vec3{p.X, p.Y, p.Z} }

// Velocity represents an entity's velocity in units per second.
type Velocity struct {
	X, Y, Z float32
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// Look holds the view angles of a first-person entity.
type Look struct {
	Yaw   float32 // radians, 0 faces -Z
	Pitch float32 // radians, positive looks up
}
