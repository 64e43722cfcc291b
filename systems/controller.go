// Package systems contains ECS systems for the demo.
package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ringfx/components"
)

const (
	airControl = 0.3
	maxPitch   = 89 * math.Pi / 180
)

// ControllerSystem moves first-person walkers: look, walk, jump, gravity
// and collision with the ground plane at y=0.
type ControllerSystem struct {
	filter ecs.Filter5[components.Position, components.Velocity, components.Look, components.Body, components.Intent]
	move   components.Movement
}

// NewControllerSystem creates a new controller system.
func NewControllerSystem(w *ecs.World, move components.Movement) *ControllerSystem {
	return &ControllerSystem{
		filter: *ecs.NewFilter5[components.Position, components.Velocity, components.Look, components.Body, components.Intent](w),
		move:   move,
	}
}

// SetMovement replaces the controller tuning.
func (s *ControllerSystem) SetMovement(m components.Movement) { s.move = m }

// Update advances every walker by dt seconds.
func (s *ControllerSystem) Update(dt float32) {
	if dt <= 0 {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		pos, vel, look, body, in := query.Get()
		s.step(pos, vel, look, body, in, dt)
		in.Clear()
	}
}

func (s *ControllerSystem) step(pos *components.Position, vel *components.Velocity, look *components.Look, body *components.Body, in *components.Intent, dt float32) {
	m := &s.move

	look.Yaw = wrapAngle(look.Yaw + in.YawDelta)
	look.Pitch = mgl32.Clamp(look.Pitch+in.PitchDelta, -maxPitch, maxPitch)

	// Wish direction on the ground plane
	sy, cy := sincos(look.Yaw)
	fwd := mgl32.Vec2{-sy, -cy}
	right := mgl32.Vec2{cy, -sy}
	wish := fwd.Mul(in.Forward).Add(right.Mul(in.Strafe))
	if l := wish.Len(); l > 1 {
		wish = wish.Mul(1 / l)
	}

	h := mgl32.Vec2{vel.X, vel.Z}
	switch {
	case wish.Len() > 0:
		accel := m.Acceleration
		if !body.Grounded {
			accel *= airControl
		}
		h = approach(h, wish.Mul(m.WalkSpeed), accel*dt)
	case body.Grounded:
		h = h.Mul(max(0, 1-m.Friction*dt))
	}
	vel.X, vel.Z = h.X(), h.Y()

	if in.Jump && body.Grounded {
		vel.Y = m.JumpSpeed
		body.Grounded = false
	}
	if !body.Grounded {
		vel.Y -= m.Gravity * dt
	}

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
	pos.Z += vel.Z * dt

	if pos.Y <= 0 {
		pos.Y = 0
		if vel.Y < 0 {
			vel.Y = 0
		}
		body.Grounded = true
	} else {
		body.Grounded = false
	}

	if b := m.Bound; b > 0 {
		pos.X = mgl32.Clamp(pos.X, -b, b)
		pos.Z = mgl32.Clamp(pos.Z, -b, b)
	}
}

// EyePosition returns the camera position for a walker.
func EyePosition(pos components.Position, body components.Body) mgl32.Vec3 {
	return mgl32.Vec3{pos.X, pos.Y + body.EyeHeight, pos.Z}
}

// approach moves v toward target by at most step.
func approach(v, target mgl32.Vec2, step float32) mgl32.Vec2 {
	d := target.Sub(v)
	l := d.Len()
	if l <= step || l == 0 {
		return target
	}
	return v.Add(d.Mul(step / l))
}
