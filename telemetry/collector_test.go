package telemetry

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/ringfx/config"
	"github.com/pthm-cable/ringfx/effects"
)

func newTestManager(t *testing.T) *effects.Manager {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	mc := effects.ManagerConfigFromConfig(cfg, rand.New(rand.NewSource(1)), slog.New(slog.NewTextHandler(io.Discard, nil)))
	mc.MaxRings = 2
	mc.PrewarmSwarm = 1
	return effects.NewManager(mc)
}

func TestCollectorWindowTicks(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	if c.WindowDurationTicks() != 60 {
		t.Errorf("window ticks = %d, want 60", c.WindowDurationTicks())
	}
	if c.ShouldFlush(59) {
		t.Error("should not flush before window end")
	}
	if !c.ShouldFlush(60) {
		t.Error("should flush at window end")
	}
}

func TestCollectorWindowTicksRounded(t *testing.T) {
	tests := []struct {
		window float64
		dt     float32
		want   int32
	}{
		{5, 1.0 / 60, 300},
		{1, 1.0 / 30, 30},
		{0.5, 0.1, 5},
		{0.01, 1.0 / 60, 1},
	}
	for _, tt := range tests {
		if got := NewCollector(tt.window, tt.dt).WindowDurationTicks(); got != tt.want {
			t.Errorf("NewCollector(%v, %v) ticks = %d, want %d", tt.window, tt.dt, got, tt.want)
		}
	}
}

func TestCollectorFlushDeltas(t *testing.T) {
	m := newTestManager(t)
	c := NewCollector(1.0, 1.0/60)
	c.Baseline(m)

	for i := 0; i < 3; i++ {
		m.Spawn(effects.Options{})
	}
	m.Spawn(effects.Options{Kind: effects.Ptr(effects.KindVolume)})
	m.Update(0.1)

	snaps := m.Snapshots(nil)
	w := c.Flush(60, m, snaps)

	if w.Spawned != 4 || w.Evicted != 2 {
		t.Errorf("spawned=%d evicted=%d, want 4/2", w.Spawned, w.Evicted)
	}
	if w.Active != 2 || w.SwarmActive != 1 || w.VolumeActive != 1 {
		t.Errorf("active=%d swarm=%d volume=%d", w.Active, w.SwarmActive, w.VolumeActive)
	}
	if w.PoolGrowth <= 0 {
		t.Error("expected pool growth beyond the single prewarmed swarm")
	}
	if w.Bodies != len(snaps[0].Bodies) {
		t.Errorf("bodies = %d, want %d", w.Bodies, len(snaps[0].Bodies))
	}
	wantMean := (float64(snaps[0].Radius) + float64(snaps[1].Radius)) / 2
	if math.Abs(w.RadiusMean-wantMean) > 1e-6 {
		t.Errorf("radius mean = %v, want %v", w.RadiusMean, wantMean)
	}
	if math.Abs(w.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim time = %v, want 1", w.SimTimeSec)
	}

	// Next window starts from the new baseline
	m.Update(0.1)
	w = c.Flush(120, m, m.Snapshots(nil))
	if w.Spawned != 0 || w.Evicted != 0 || w.PoolGrowth != 0 {
		t.Errorf("second window should be quiet: %+v", w)
	}
	if w.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", w.WindowStartTick)
	}
}
