package telemetry

import (
	"math"

	"github.com/pthm-cable/ringfx/effects"
)

// Engine is the read-only view of the effect manager the collector samples.
type Engine interface {
	Stats() effects.Stats
	ActiveCount() int
	PendingCount() int
	FreeCount() int
	Constructed() int
}

// Collector turns cumulative engine counters into per-window WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Counter baselines at window start
	lastStats       effects.Stats
	lastConstructed int

	// Scratch buffers reused across flushes
	radii, fades, fracs []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Baseline records the engine's current counters so that the first window
// does not count prewarming or earlier activity.
func (c *Collector) Baseline(e Engine) {
	c.lastStats = e.Stats()
	c.lastConstructed = e.Constructed()
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the engine counters and the current
// snapshots, and starts the next window.
func (c *Collector) Flush(currentTick int32, e Engine, snaps []effects.Snapshot) WindowStats {
	now := e.Stats()
	constructed := e.Constructed()

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Active:      e.ActiveCount(),
		Pending:     e.PendingCount(),
		Free:        e.FreeCount(),
		Constructed: constructed,

		Spawned:    now.Spawned - c.lastStats.Spawned,
		Expired:    now.Expired - c.lastStats.Expired,
		Evicted:    now.Evicted - c.lastStats.Evicted,
		Cleared:    now.Cleared - c.lastStats.Cleared,
		Dropped:    now.Dropped - c.lastStats.Dropped,
		Cancelled:  now.Cancelled - c.lastStats.Cancelled,
		PoolGrowth: constructed - c.lastConstructed,
	}

	c.radii = c.radii[:0]
	c.fades = c.fades[:0]
	c.fracs = c.fracs[:0]
	for i := range snaps {
		s := &snaps[i]
		switch s.Kind {
		case effects.KindSwarm:
			stats.SwarmActive++
			stats.Bodies += len(s.Bodies)
		case effects.KindVolume:
			stats.VolumeActive++
		}
		c.radii = append(c.radii, float64(s.Radius))
		c.fades = append(c.fades, float64(s.Fade))
		c.fracs = append(c.fracs, float64(s.LifeFraction))
	}

	stats.RadiusMean, stats.RadiusStd, _, stats.RadiusP50, stats.RadiusP90 = ComputeDistribution(c.radii)
	stats.FadeMean, stats.FadeStd, _, _, _ = ComputeDistribution(c.fades)
	stats.LifeFractionMean, _, _, _, _ = ComputeDistribution(c.fracs)

	// Reset for next window
	c.windowStartTick = currentTick
	c.lastStats = now
	c.lastConstructed = constructed

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
