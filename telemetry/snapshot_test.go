package telemetry

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/ringfx/effects"
)

func TestSnapshotSaveLoad(t *testing.T) {
	m := newTestManager(t)
	m.Spawn(effects.Options{})
	m.Spawn(effects.Options{Kind: effects.Ptr(effects.KindVolume)})
	m.Update(0.2)

	snap := NewSnapshot(1000, 42, m, m.Snapshots(nil))
	snap.Bookmark = &Bookmark{Type: BookmarkPoolGrowth, Tick: 1000}

	path, err := SaveSnapshot(snap, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if !strings.HasSuffix(filepath.Base(path), "snapshot_1000_pool_growth.json") {
		t.Errorf("unexpected snapshot name %q", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if loaded.Version != SnapshotVersion || loaded.RNGSeed != 42 || loaded.Tick != 1000 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Effects) != 2 {
		t.Fatalf("effects = %d, want 2", len(loaded.Effects))
	}
	if loaded.Effects[0].Kind != "swarm" || loaded.Effects[1].Kind != "volume" {
		t.Errorf("kinds = %s, %s", loaded.Effects[0].Kind, loaded.Effects[1].Kind)
	}
	if loaded.Effects[0].Bodies == 0 {
		t.Error("swarm body count should be recorded")
	}
	if loaded.Effects[1].MajorRadiusNormalized <= 0 {
		t.Error("volume normalized radius should be recorded")
	}
	if loaded.Stats.Spawned != 2 {
		t.Errorf("stats.spawned = %d, want 2", loaded.Stats.Spawned)
	}
	if loaded.Effects[0].Age != snap.Effects[0].Age {
		t.Errorf("age %v != %v", loaded.Effects[0].Age, snap.Effects[0].Age)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing snapshot")
	}
}
