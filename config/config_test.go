package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Effects.Kind != "swarm" {
		t.Errorf("effects.kind = %q, want swarm", cfg.Effects.Kind)
	}
	if cfg.Effects.SwarmCapacity <= 0 {
		t.Errorf("swarm capacity should be positive, got %d", cfg.Effects.SwarmCapacity)
	}
	if cfg.Effects.Defaults.Count > cfg.Effects.SwarmCapacity {
		t.Errorf("default count %d exceeds capacity %d", cfg.Effects.Defaults.Count, cfg.Effects.SwarmCapacity)
	}
	if len(cfg.Assembly.Stages) != 3 {
		t.Fatalf("expected 3 assembly stages, got %d", len(cfg.Assembly.Stages))
	}
	if cfg.Assembly.Stages[1].GrowthMode != "collapse_then_grow" {
		t.Errorf("stage 1 growth mode = %q, want collapse_then_grow", cfg.Assembly.Stages[1].GrowthMode)
	}
	if cfg.Assembly.Stages[0].FadeStart != nil {
		t.Error("stage 0 should not override fade start")
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("derived screen width = %v, want %v", cfg.Derived.ScreenW32, cfg.Screen.Width)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("effects:\n  max_rings: 5\n  kind: volume\nnoise:\n  basis: opensimplex\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}

	if cfg.Effects.MaxRings != 5 {
		t.Errorf("max_rings = %d, want 5", cfg.Effects.MaxRings)
	}
	if cfg.Effects.Kind != "volume" {
		t.Errorf("kind = %q, want volume", cfg.Effects.Kind)
	}
	if cfg.Noise.Basis != "opensimplex" {
		t.Errorf("basis = %q, want opensimplex", cfg.Noise.Basis)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Effects.MaxPending == 0 {
		t.Error("max_pending should keep its default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Effects.MaxRings = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Effects.MaxRings != 7 {
		t.Errorf("max_rings after roundtrip = %d, want 7", loaded.Effects.MaxRings)
	}
	if *loaded.Assembly.Stages[1].RecoverAt != *cfg.Assembly.Stages[1].RecoverAt {
		t.Error("stage overrides should survive the roundtrip")
	}
}
