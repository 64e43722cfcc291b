package curves

import (
	"math"
	"testing"
)

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestGrowthMonotonic(t *testing.T) {
	tests := []struct {
		name     string
		exponent float32
		delay    float32
	}{
		{"linear", 1, 0},
		{"pop", 2.5, 0},
		{"ease", 0.4, 0},
		{"delayed", 1.4, 0.3},
		{"max delay", 3, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Growth{StartRadius: 0.5, EndRadius: 10, Exponent: tt.exponent, Delay: tt.delay}
			g.Sanitize()
			prev := g.Radius(0)
			for i := 1; i <= 1000; i++ {
				r := g.Radius(float32(i) / 1000)
				if r < prev {
					t.Fatalf("radius decreased at t=%v: %v < %v", float32(i)/1000, r, prev)
				}
				prev = r
			}
			if !approx(g.Radius(0), 0.5, 1e-6) {
				t.Errorf("Radius(0) = %v, want 0.5", g.Radius(0))
			}
			if !approx(g.Radius(1), 10, 1e-4) {
				t.Errorf("Radius(1) = %v, want 10", g.Radius(1))
			}
		})
	}
}

func TestGrowthDelayHolds(t *testing.T) {
	g := Growth{StartRadius: 1, EndRadius: 5, Exponent: 1, Delay: 0.4}
	for _, tt := range []float32{0, 0.1, 0.39, 0.4} {
		if r := g.Radius(tt); !approx(r, 1, 1e-6) {
			t.Errorf("Radius(%v) = %v, want held at 1", tt, r)
		}
	}
	if r := g.Radius(0.7); !approx(r, 3, 1e-5) {
		t.Errorf("Radius(0.7) = %v, want 3", r)
	}
}

func TestFadeWindow(t *testing.T) {
	f := Fade{Start: 0.5, End: 0.9}

	tests := []struct {
		t    float32
		want float32
	}{
		{0, 1},
		{0.5, 1},
		{0.7, 0.5},
		{0.9, 0},
		{1, 0},
	}
	for _, tt := range tests {
		if got := f.At(tt.t); !approx(got, tt.want, 1e-5) {
			t.Errorf("At(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	// Linear between the bounds
	a, b, c := f.At(0.6), f.At(0.7), f.At(0.8)
	if !approx(a-b, b-c, 1e-5) {
		t.Errorf("fade not linear: %v %v %v", a, b, c)
	}
}

func TestFadeSanitize(t *testing.T) {
	tests := []struct {
		name       string
		in         Fade
		start, end float32
	}{
		{"inverted", Fade{Start: 0.8, End: 0.3}, 0.8, 0.8 + MinGap},
		{"equal", Fade{Start: 0.5, End: 0.5}, 0.5, 0.5 + MinGap},
		{"out of range", Fade{Start: -1, End: 3}, 0, 1},
		{"start at one", Fade{Start: 1, End: 1}, 1 - MinGap, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			f.Sanitize()
			if !approx(f.Start, tt.start, 1e-6) || !approx(f.End, tt.end, 1e-6) {
				t.Errorf("Sanitize() = {%v %v}, want {%v %v}", f.Start, f.End, tt.start, tt.end)
			}
			if f.End <= f.Start {
				t.Errorf("End %v must exceed Start %v", f.End, f.Start)
			}
		})
	}
}

func TestCollapseThenGrow(t *testing.T) {
	g := Growth{
		StartRadius:   1,
		EndRadius:     6,
		Exponent:      1.2,
		Mode:          ModeCollapseThenGrow,
		CollapseAt:    0.06,
		CollapseScale: 0.05,
		RecoverAt:     0.2,
	}
	g.Sanitize()

	if r := g.Radius(0.06); !approx(r, 0.05, 1e-4) {
		t.Errorf("Radius(0.06) = %v, want 0.05", r)
	}
	if r := g.Radius(0.2); !approx(r, 1, 1e-4) {
		t.Errorf("Radius(0.2) = %v, want 1", r)
	}

	prev := g.Radius(0)
	for i := 1; i <= 60; i++ {
		r := g.Radius(float32(i) / 1000)
		if r >= prev {
			t.Fatalf("collapse phase not strictly decreasing at t=%v", float32(i)/1000)
		}
		prev = r
	}
	prev = g.Radius(0.06)
	for i := 61; i < 200; i++ {
		r := g.Radius(float32(i) / 1000)
		if r <= prev {
			t.Fatalf("recover phase not strictly increasing at t=%v", float32(i)/1000)
		}
		prev = r
	}
	if r := g.Radius(1); !approx(r, 6, 1e-4) {
		t.Errorf("Radius(1) = %v, want 6", r)
	}
}

func TestGrowthSanitize(t *testing.T) {
	g := Growth{
		StartRadius: -2,
		EndRadius:   -5,
		Exponent:    0,
		Delay:       2,
		CollapseAt:  0.5,
		RecoverAt:   0.1,
	}
	g.Sanitize()

	if g.StartRadius != 0 || g.EndRadius != 0 {
		t.Errorf("radii = %v..%v, want 0..0", g.StartRadius, g.EndRadius)
	}
	if g.Exponent != MinExponent {
		t.Errorf("exponent = %v, want %v", g.Exponent, MinExponent)
	}
	if g.Delay != MaxGrowthDelay {
		t.Errorf("delay = %v, want %v", g.Delay, MaxGrowthDelay)
	}
	if g.RecoverAt <= g.CollapseAt {
		t.Errorf("recoverAt %v must exceed collapseAt %v", g.RecoverAt, g.CollapseAt)
	}
}

func TestEaseOutCubic(t *testing.T) {
	if EaseOutCubic(0) != 0 || EaseOutCubic(1) != 1 {
		t.Errorf("endpoints = %v, %v", EaseOutCubic(0), EaseOutCubic(1))
	}
	if !approx(EaseOutCubic(0.5), 0.875, 1e-6) {
		t.Errorf("EaseOutCubic(0.5) = %v, want 0.875", EaseOutCubic(0.5))
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("collapse_then_grow") != ModeCollapseThenGrow {
		t.Error("expected collapse mode")
	}
	if ParseMode("bogus") != ModeDefault {
		t.Error("unknown names should map to default")
	}
	if ModeCollapseThenGrow.String() != "collapse_then_grow" {
		t.Errorf("String() = %q", ModeCollapseThenGrow.String())
	}
}
