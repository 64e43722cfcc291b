package effects

import (
	"math"
	"math/rand"
)

const twoPi = 2 * math.Pi

// Rand is the random source used for jitter. *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// globalRand draws from the math/rand top-level source.
type globalRand struct{}

func (globalRand) Float32() float32 { return rand.Float32() }

// Body is the per-sub-instance attribute record of a swarm ring.
// It is generated once per restart and constant for that life.
type Body struct {
	Angle          float32 // Position around the ring (radians)
	RadialOffset   float32
	Scale          float32
	VerticalOffset float32 // Offset along the ring axis
	EulerX         float32
	EulerY         float32
	EulerZ         float32
	SpinRateZ      float32 // Signed radians per second about Z
}

// Jitter generates randomized body attributes.
type Jitter struct {
	rng Rand
}

// NewJitter creates a jitter generator. A nil rng uses the math/rand default source.
func NewJitter(rng Rand) *Jitter {
	if rng == nil {
		rng = globalRand{}
	}
	return &Jitter{rng: rng}
}

// Fill regenerates every body in place. Angles are evenly spaced around the
// ring and then perturbed by up to p.AngleJitter.
func (j *Jitter) Fill(bodies []Body, p Params) {
	n := float32(len(bodies))
	for i := range bodies {
		b := &bodies[i]
		b.Angle = float32(i)/n*twoPi + j.symmetric(p.AngleJitter)
		b.RadialOffset = j.symmetric(p.RadialJitter)
		b.VerticalOffset = j.symmetric(p.VerticalJitter)
		b.Scale = j.between(p.ScaleMin, p.ScaleMax)
		b.EulerX = j.turn()
		b.EulerY = j.turn()
		b.EulerZ = j.turn()

		spin := j.between(p.SpinSpeedMin, p.SpinSpeedMax)
		if j.rng.Float32() < 0.5 {
			spin = -spin
		}
		b.SpinRateZ = spin
	}
}

// symmetric returns a uniform value in [-m, m].
func (j *Jitter) symmetric(m float32) float32 {
	return (j.rng.Float32()*2 - 1) * m
}

// between returns a uniform value in [lo, hi].
func (j *Jitter) between(lo, hi float32) float32 {
	return lo + j.rng.Float32()*(hi-lo)
}

// turn returns a uniform angle in [0, 2π).
func (j *Jitter) turn() float32 {
	a := j.rng.Float32() * twoPi
	if a >= twoPi {
		return 0
	}
	return a
}
