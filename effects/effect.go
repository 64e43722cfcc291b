package effects

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ringfx/curves"
)

// Handle identifies one spawned life of an effect. A recycled instance
// receives a fresh handle on every restart.
type Handle uint64

// Effect is one pooled ring effect instance.
type Effect interface {
	Kind() Kind
	Handle() Handle
	Alive() bool
	Age() float32
	// Step advances the effect by dt seconds and updates Alive.
	Step(dt float32)
	// Snapshot writes the resolved render parameters into s.
	Snapshot(s *Snapshot)

	restart(p Params, pose Pose, h Handle)
	base() *instance
}

// instance holds the timing and motion state shared by both variants.
type instance struct {
	handle  Handle
	age     float64 // Accumulated in float64 so per-frame steps sum to the lifetime
	life    float32
	alive   bool
	visible bool
	pooled  bool

	pose      Pose
	moveDir   mgl32.Vec3
	moveSpeed float32

	growth curves.Growth
	fade   curves.Fade
	detail int

	radius    float32
	fadeValue float32
}

func (in *instance) restart(p Params, pose Pose, h Handle) {
	in.handle = h
	in.age = 0
	in.life = p.Life
	in.alive = true
	in.visible = true
	in.pooled = false

	in.pose = pose
	in.moveDir = p.MoveDirection
	if in.moveDir.Len() == 0 {
		in.moveDir = pose.Forward
	}
	in.moveSpeed = p.MoveSpeed

	in.growth = p.Growth
	in.fade = p.Fade
	in.detail = p.Detail
	in.evaluate()
}

// advance ages and moves the instance, then re-derives radius and fade.
func (in *instance) advance(dt float32) {
	if !in.alive {
		return
	}
	in.age += float64(dt)
	in.pose.Position = in.pose.Position.Add(in.moveDir.Mul(in.moveSpeed * dt))
	in.evaluate()
	if in.expired() {
		in.alive = false
	}
}

func (in *instance) evaluate() {
	t := in.lifeFraction()
	in.radius = in.growth.Radius(t)
	in.fadeValue = in.fade.At(t)
}

// lifeSlack absorbs the rounding of float32 frame deltas.
const lifeSlack = 1e-6

func (in *instance) expired() bool {
	life := float64(in.life)
	return in.age >= life-life*lifeSlack
}

func (in *instance) lifeFraction() float32 {
	if in.expired() {
		return 1
	}
	return curves.Clamp01(float32(in.age / float64(in.life)))
}

// deactivate makes the instance inert before it goes back to the pool.
func (in *instance) deactivate() {
	in.alive = false
	in.visible = false
}

func (in *instance) base() *instance { return in }

// Handle returns the handle of the current life.
func (in *instance) Handle() Handle { return in.handle }

// Alive reports whether the effect is still running.
func (in *instance) Alive() bool { return in.alive }

// Age returns seconds elapsed since the last restart.
func (in *instance) Age() float32 { return float32(in.age) }

func (in *instance) fillSnapshot(s *Snapshot) {
	s.Handle = in.handle
	s.Pose = in.pose
	s.Age = float32(in.age)
	s.Life = in.life
	s.LifeFraction = in.lifeFraction()
	s.Radius = in.radius
	s.EndRadius = in.growth.EndRadius
	s.Fade = in.fadeValue
	s.Detail = in.detail
	s.Visible = in.visible
}

// Snapshot is the read-only per-frame handoff to the renderer.
// Bodies aliases the effect's buffer and must not be modified.
type Snapshot struct {
	Handle       Handle
	Kind         Kind
	Pose         Pose
	Age          float32
	Life         float32
	LifeFraction float32
	Radius       float32
	EndRadius    float32
	Fade         float32
	Detail       int
	Visible      bool

	// Swarm
	Bodies []Body

	// Volume
	MajorRadiusNormalized float32
	VolumeScale           float32
	TubeRadius            float32
	NoiseStrength         float32
}

// BodyTransform returns the world position, rotation and uniform scale of
// body i. The ring lies in the pose's local XY plane; local Z is its axis.
func (s *Snapshot) BodyTransform(i int) (mgl32.Vec3, mgl32.Quat, float32) {
	b := s.Bodies[i]
	r := s.Radius + b.RadialOffset
	sin, cos := sincos(b.Angle)
	local := mgl32.Vec3{cos * r, sin * r, b.VerticalOffset}
	pos := s.Pose.Position.Add(s.Pose.Orientation.Rotate(local))

	spin := mgl32.AnglesToQuat(b.EulerX, b.EulerY, b.EulerZ+b.SpinRateZ*s.Age, mgl32.XYZ)
	return pos, s.Pose.Orientation.Mul(spin), b.Scale
}
