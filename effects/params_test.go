package effects

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ringfx/curves"
)

func testDefaults() Params {
	return Params{
		Kind: KindSwarm,
		Life: 1,
		Growth: curves.Growth{
			StartRadius: 0.5,
			EndRadius:   6,
			Exponent:    1,
		},
		Fade:           curves.Fade{Start: 0.5, End: 1},
		MoveSpeed:      0,
		SpawnDistance:  0,
		Count:          80,
		Detail:         1,
		AngleJitter:    0.05,
		RadialJitter:   0.2,
		VerticalJitter: 0.1,
		ScaleMin:       0.1,
		ScaleMax:       0.3,
		SpinSpeedMin:   1,
		SpinSpeedMax:   3,
		TubeRadius:     0.3,
		NoiseStrength:  0.5,
	}
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	def := testDefaults()
	p := Options{}.Resolve(def)

	if p.Life != def.Life || p.Growth.EndRadius != def.Growth.EndRadius || p.Count != def.Count {
		t.Errorf("empty options should resolve to defaults, got %+v", p)
	}
}

func TestResolveOverrides(t *testing.T) {
	def := testDefaults()
	p := Options{
		Kind:        Ptr(KindVolume),
		Life:        Ptr[float32](2.5),
		EndRadius:   Ptr[float32](3),
		GrowthDelay: Ptr[float32](0),
		Count:       Ptr(12),
	}.Resolve(def)

	if p.Kind != KindVolume {
		t.Errorf("kind = %v, want volume", p.Kind)
	}
	if p.Life != 2.5 {
		t.Errorf("life = %v, want 2.5", p.Life)
	}
	if p.Growth.EndRadius != 3 {
		t.Errorf("end radius = %v, want 3", p.Growth.EndRadius)
	}
	if p.Count != 12 {
		t.Errorf("count = %v, want 12", p.Count)
	}
	// Untouched fields keep defaults
	if p.Growth.StartRadius != def.Growth.StartRadius {
		t.Errorf("start radius = %v, want default %v", p.Growth.StartRadius, def.Growth.StartRadius)
	}
}

func TestResolveClamps(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		check func(t *testing.T, p Params)
	}{
		{
			name: "zero life",
			opts: Options{Life: Ptr[float32](0)},
			check: func(t *testing.T, p Params) {
				if p.Life != MinLife {
					t.Errorf("life = %v, want %v", p.Life, MinLife)
				}
			},
		},
		{
			name: "negative radii",
			opts: Options{StartRadius: Ptr[float32](-1), EndRadius: Ptr[float32](-3)},
			check: func(t *testing.T, p Params) {
				if p.Growth.StartRadius != 0 || p.Growth.EndRadius != 0 {
					t.Errorf("radii = %v..%v, want 0..0", p.Growth.StartRadius, p.Growth.EndRadius)
				}
			},
		},
		{
			name: "fade end before start",
			opts: Options{FadeStart: Ptr[float32](0.7), FadeEnd: Ptr[float32](0.2)},
			check: func(t *testing.T, p Params) {
				if p.Fade.End <= p.Fade.Start {
					t.Errorf("fade window %v..%v not ordered", p.Fade.Start, p.Fade.End)
				}
			},
		},
		{
			name: "collapse after recover",
			opts: Options{CollapseAt: Ptr[float32](0.5), RecoverAt: Ptr[float32](0.1)},
			check: func(t *testing.T, p Params) {
				if p.Growth.RecoverAt <= p.Growth.CollapseAt {
					t.Errorf("recoverAt %v <= collapseAt %v", p.Growth.RecoverAt, p.Growth.CollapseAt)
				}
			},
		},
		{
			name: "inverted scale range",
			opts: Options{ScaleMin: Ptr[float32](0.5), ScaleMax: Ptr[float32](0.1)},
			check: func(t *testing.T, p Params) {
				if p.ScaleMin != 0.1 || p.ScaleMax != 0.5 {
					t.Errorf("scale range = %v..%v, want 0.1..0.5", p.ScaleMin, p.ScaleMax)
				}
			},
		},
		{
			name: "detail out of range",
			opts: Options{Detail: Ptr(99)},
			check: func(t *testing.T, p Params) {
				if p.Detail != MaxDetail {
					t.Errorf("detail = %d, want %d", p.Detail, MaxDetail)
				}
			},
		},
		{
			name: "move direction normalized",
			opts: Options{MoveDirection: &mgl32.Vec3{0, 3, 4}},
			check: func(t *testing.T, p Params) {
				if d := p.MoveDirection.Len(); d < 0.9999 || d > 1.0001 {
					t.Errorf("move direction length = %v, want 1", d)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.opts.Resolve(testDefaults()))
		})
	}
}

func TestParseKind(t *testing.T) {
	if ParseKind("volume") != KindVolume || ParseKind("swarm") != KindSwarm || ParseKind("") != KindSwarm {
		t.Error("unexpected kind mapping")
	}
	if KindVolume.String() != "volume" {
		t.Errorf("String() = %q", KindVolume.String())
	}
}
