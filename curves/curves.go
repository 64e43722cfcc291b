// Package curves maps a normalized life fraction to ring growth and fade values.
package curves

import "math"

// Clamp bounds shared by the sanitizers.
const (
	MaxGrowthDelay = 0.95
	MinExponent    = 0.01
	MinGap         = 0.001 // Minimum width of the fade window and collapse phase
)

// Mode selects the radius curve.
type Mode uint8

const (
	ModeDefault Mode = iota
	ModeCollapseThenGrow
)

// ParseMode maps a config name to a Mode. Unknown names fall back to ModeDefault.
func ParseMode(s string) Mode {
	if s == "collapse_then_grow" {
		return ModeCollapseThenGrow
	}
	return ModeDefault
}

func (m Mode) String() string {
	if m == ModeCollapseThenGrow {
		return "collapse_then_grow"
	}
	return "default"
}

// Growth describes how a ring radius evolves over its life.
type Growth struct {
	StartRadius float32
	EndRadius   float32
	Exponent    float32 // >1 holds back early growth
	Delay       float32 // Life fraction held at StartRadius before expanding
	Mode        Mode

	// Only used by ModeCollapseThenGrow
	CollapseAt    float32
	CollapseScale float32
	RecoverAt     float32
}

// Sanitize clamps the growth parameters into their valid ranges.
func (g *Growth) Sanitize() {
	if g.StartRadius < 0 || isNaN(g.StartRadius) {
		g.StartRadius = 0
	}
	if g.EndRadius < g.StartRadius || isNaN(g.EndRadius) {
		g.EndRadius = g.StartRadius
	}
	if g.Exponent < MinExponent || isNaN(g.Exponent) {
		g.Exponent = MinExponent
	}
	g.Delay = clamp(g.Delay, 0, MaxGrowthDelay)
	g.CollapseAt = Clamp01(g.CollapseAt)
	g.CollapseScale = Clamp01(g.CollapseScale)
	if g.RecoverAt < g.CollapseAt+MinGap || isNaN(g.RecoverAt) {
		g.RecoverAt = g.CollapseAt + MinGap
	}
}

// Radius returns the ring radius at life fraction t.
func (g Growth) Radius(t float32) float32 {
	t = Clamp01(t)
	if g.Mode != ModeCollapseThenGrow {
		return Lerp(g.StartRadius, g.EndRadius, g.delayed(t))
	}

	collapsed := g.StartRadius * g.CollapseScale
	switch {
	case t < g.CollapseAt:
		u := t / g.CollapseAt
		return Lerp(g.StartRadius, collapsed, EaseOutCubic(u))
	case t < g.RecoverAt:
		u := (t - g.CollapseAt) / (g.RecoverAt - g.CollapseAt)
		return Lerp(collapsed, g.StartRadius, EaseOutCubic(u))
	}

	// Rebase so delay and exponent apply to the remaining span
	span := 1 - g.RecoverAt
	if span <= 0 {
		return g.StartRadius
	}
	u := Clamp01((t - g.RecoverAt) / span)
	return Lerp(g.StartRadius, g.EndRadius, g.delayed(u))
}

// delayed applies the growth delay and exponent to t.
func (g Growth) delayed(t float32) float32 {
	d := Clamp01((t - g.Delay) / (1 - g.Delay))
	return pow(d, g.Exponent)
}

// Fade is the life-fraction window over which opacity ramps from 1 to 0.
type Fade struct {
	Start float32
	End   float32
}

// Sanitize clamps the window into [0,1] and forces End >= Start + MinGap.
func (f *Fade) Sanitize() {
	f.Start = clamp(f.Start, 0, 1-MinGap)
	f.End = Clamp01(f.End)
	if f.End < f.Start+MinGap || isNaN(f.End) {
		f.End = f.Start + MinGap
	}
}

// At returns the fade value at life fraction t.
func (f Fade) At(t float32) float32 {
	if t <= f.Start {
		return 1
	}
	if t >= f.End {
		return 0
	}
	return 1 - (t-f.Start)/(f.End-f.Start)
}

// EaseOutCubic returns 1 - (1-u)^3.
func EaseOutCubic(u float32) float32 {
	v := 1 - Clamp01(u)
	return 1 - v*v*v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp01 bounds x to [0, 1]. NaN maps to 0.
func Clamp01(x float32) float32 {
	return clamp(x, 0, 1)
}

func clamp(x, lo, hi float32) float32 {
	if x < lo || isNaN(x) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func pow(x, e float32) float32 {
	if e == 1 {
		return x
	}
	return float32(math.Pow(float64(x), float64(e)))
}

func isNaN(x float32) bool {
	return x != x
}
