package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/ringfx/config"
)

func TestParamVectorNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{24, 32, 12, 6}

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: roundtrip %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestParamVectorClampRounds(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-5, 100, 3.6, 0.4})
	want := []float64{2, 64, 4, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: clamp = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestApplyExtractConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{7.2, 9.8, 3, 1})

	if cfg.Effects.MaxRings != 7 || cfg.Effects.MaxPending != 10 {
		t.Errorf("rings/pending = %d/%d, want 7/10", cfg.Effects.MaxRings, cfg.Effects.MaxPending)
	}
	if cfg.Effects.Pool.Swarm != 3 || cfg.Effects.Pool.Volume != 1 {
		t.Errorf("pool = %d/%d, want 3/1", cfg.Effects.Pool.Swarm, cfg.Effects.Pool.Volume)
	}

	got := pv.ExtractFromConfig(cfg)
	want := []float64{7, 10, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extract[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
