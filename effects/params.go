package effects

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ringfx/curves"
)

// Parameter floors and ceilings.
const (
	MinLife   float32 = 0.01
	MaxDetail         = 4
)

// Kind identifies the effect variant.
type Kind uint8

const (
	KindSwarm  Kind = iota // Ring of instanced icosahedra
	KindVolume             // Single noise-modulated torus
	kindCount
)

// ParseKind maps a config name to a Kind. Unknown names fall back to KindSwarm.
func ParseKind(s string) Kind {
	if s == "volume" {
		return KindVolume
	}
	return KindSwarm
}

func (k Kind) String() string {
	if k == KindVolume {
		return "volume"
	}
	return "swarm"
}

// Params is a fully resolved effect parameter set.
type Params struct {
	Kind   Kind
	Life   float32
	Growth curves.Growth
	Fade   curves.Fade

	MoveSpeed     float32
	MoveDirection mgl32.Vec3 // Zero means "along the spawn forward"
	SpawnDistance float32    // Offset along the spawn forward

	// Swarm
	Count          int
	Detail         int
	AngleJitter    float32
	RadialJitter   float32
	VerticalJitter float32
	ScaleMin       float32
	ScaleMax       float32
	SpinSpeedMin   float32
	SpinSpeedMax   float32

	// Volume
	TubeRadius    float32
	NoiseStrength float32
}

// Sanitize clamps every field into its valid range. Count is bounded by the
// swarm capacity at restart time, not here.
func (p *Params) Sanitize() {
	if p.Kind >= kindCount {
		p.Kind = KindSwarm
	}
	if !(p.Life >= MinLife) {
		p.Life = MinLife
	}
	p.Growth.Sanitize()
	p.Fade.Sanitize()

	if p.MoveSpeed < 0 {
		p.MoveSpeed = 0
	}
	if p.MoveDirection.Len() > 0 {
		p.MoveDirection = p.MoveDirection.Normalize()
	}
	if p.Count < 0 {
		p.Count = 0
	}
	p.Detail = min(max(p.Detail, 0), MaxDetail)

	p.AngleJitter = nonNegative(p.AngleJitter)
	p.RadialJitter = nonNegative(p.RadialJitter)
	p.VerticalJitter = nonNegative(p.VerticalJitter)
	p.ScaleMin = nonNegative(p.ScaleMin)
	p.ScaleMax = nonNegative(p.ScaleMax)
	if p.ScaleMin > p.ScaleMax {
		p.ScaleMin, p.ScaleMax = p.ScaleMax, p.ScaleMin
	}
	p.SpinSpeedMin = nonNegative(p.SpinSpeedMin)
	p.SpinSpeedMax = nonNegative(p.SpinSpeedMax)
	if p.SpinSpeedMin > p.SpinSpeedMax {
		p.SpinSpeedMin, p.SpinSpeedMax = p.SpinSpeedMax, p.SpinSpeedMin
	}

	p.TubeRadius = nonNegative(p.TubeRadius)
	p.NoiseStrength = curves.Clamp01(p.NoiseStrength)
}

// Options is a partial override of the manager defaults. Nil fields are unset.
type Options struct {
	Kind *Kind
	Pose *Pose // Nil uses the manager's pose source

	Life           *float32
	StartRadius    *float32
	EndRadius      *float32
	GrowthExponent *float32
	GrowthDelay    *float32
	FadeStart      *float32
	FadeEnd        *float32
	GrowthMode     *curves.Mode
	CollapseAt     *float32
	CollapseScale  *float32
	RecoverAt      *float32

	MoveSpeed     *float32
	MoveDirection *mgl32.Vec3
	SpawnDistance *float32

	Count          *int
	Detail         *int
	AngleJitter    *float32
	RadialJitter   *float32
	VerticalJitter *float32
	ScaleMin       *float32
	ScaleMax       *float32
	SpinSpeedMin   *float32
	SpinSpeedMax   *float32

	TubeRadius    *float32
	NoiseStrength *float32
}

// Ptr returns a pointer to v, for filling Options inline.
func Ptr[T any](v T) *T {
	return &v
}

// Resolve merges the options over def and clamps the result.
// Resolution order: explicit option, then default, then clamp.
func (o Options) Resolve(def Params) Params {
	p := def
	set(&p.Kind, o.Kind)
	set(&p.Life, o.Life)
	set(&p.Growth.StartRadius, o.StartRadius)
	set(&p.Growth.EndRadius, o.EndRadius)
	set(&p.Growth.Exponent, o.GrowthExponent)
	set(&p.Growth.Delay, o.GrowthDelay)
	set(&p.Growth.Mode, o.GrowthMode)
	set(&p.Growth.CollapseAt, o.CollapseAt)
	set(&p.Growth.CollapseScale, o.CollapseScale)
	set(&p.Growth.RecoverAt, o.RecoverAt)
	set(&p.Fade.Start, o.FadeStart)
	set(&p.Fade.End, o.FadeEnd)
	set(&p.MoveSpeed, o.MoveSpeed)
	set(&p.MoveDirection, o.MoveDirection)
	set(&p.SpawnDistance, o.SpawnDistance)
	set(&p.Count, o.Count)
	set(&p.Detail, o.Detail)
	set(&p.AngleJitter, o.AngleJitter)
	set(&p.RadialJitter, o.RadialJitter)
	set(&p.VerticalJitter, o.VerticalJitter)
	set(&p.ScaleMin, o.ScaleMin)
	set(&p.ScaleMax, o.ScaleMax)
	set(&p.SpinSpeedMin, o.SpinSpeedMin)
	set(&p.SpinSpeedMax, o.SpinSpeedMax)
	set(&p.TubeRadius, o.TubeRadius)
	set(&p.NoiseStrength, o.NoiseStrength)
	p.Sanitize()
	return p
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func nonNegative(x float32) float32 {
	if x < 0 || x != x {
		return 0
	}
	return x
}
