package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/ringfx/effects"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a JSON dump of the engine state for offline inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Tick    int32 `json:"tick"`

	Active      int `json:"active"`
	Pending     int `json:"pending"`
	Free        int `json:"free"`
	Constructed int `json:"constructed"`

	Stats   effects.Stats `json:"stats"`
	Effects []EffectState `json:"effects"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// EffectState holds one active effect's resolved state.
type EffectState struct {
	Handle       uint64     `json:"handle"`
	Kind         string     `json:"kind"`
	Position     [3]float32 `json:"position"`
	Forward      [3]float32 `json:"forward"`
	Age          float32    `json:"age"`
	Life         float32    `json:"life"`
	LifeFraction float32    `json:"life_fraction"`
	Radius       float32    `json:"radius"`
	EndRadius    float32    `json:"end_radius"`
	Fade         float32    `json:"fade"`
	Detail       int        `json:"detail"`

	Bodies                int     `json:"bodies,omitempty"`
	MajorRadiusNormalized float32 `json:"major_radius_normalized,omitempty"`
	VolumeScale           float32 `json:"volume_scale,omitempty"`
}

// NewSnapshot captures the engine state and the given effect snapshots.
func NewSnapshot(tick int32, seed int64, e Engine, snaps []effects.Snapshot) *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     seed,
		Tick:        tick,
		Active:      e.ActiveCount(),
		Pending:     e.PendingCount(),
		Free:        e.FreeCount(),
		Constructed: e.Constructed(),
		Stats:       e.Stats(),
		Effects:     make([]EffectState, 0, len(snaps)),
	}
	for i := range snaps {
		s.Effects = append(s.Effects, effectState(&snaps[i]))
	}
	return s
}

func effectState(s *effects.Snapshot) EffectState {
	return EffectState{
		Handle:                uint64(s.Handle),
		Kind:                  s.Kind.String(),
		Position:              s.Pose.Position,
		Forward:               s.Pose.Forward,
		Age:                   s.Age,
		Life:                  s.Life,
		LifeFraction:          s.LifeFraction,
		Radius:                s.Radius,
		EndRadius:             s.EndRadius,
		Fade:                  s.Fade,
		Detail:                s.Detail,
		Bodies:                len(s.Bodies),
		MajorRadiusNormalized: s.MajorRadiusNormalized,
		VolumeScale:           s.VolumeScale,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
