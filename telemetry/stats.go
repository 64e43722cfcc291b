// Package telemetry provides effect engine statistics, bookmarks, and snapshots.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Engine state at window end
	Active       int `csv:"active"`
	SwarmActive  int `csv:"swarm_active"`
	VolumeActive int `csv:"volume_active"`
	Pending      int `csv:"pending"`
	Free         int `csv:"free"`
	Constructed  int `csv:"constructed"`
	Bodies       int `csv:"bodies"` // Swarm bodies across active effects

	// Lifecycle events during window
	Spawned    int `csv:"spawned"`
	Expired    int `csv:"expired"`
	Evicted    int `csv:"evicted"`
	Cleared    int `csv:"cleared"`
	Dropped    int `csv:"dropped"`
	Cancelled  int `csv:"cancelled"`
	PoolGrowth int `csv:"pool_growth"` // Instances constructed because a pool ran dry

	// Distribution over active effects (sampled at window end)
	RadiusMean       float64 `csv:"radius_mean"`
	RadiusStd        float64 `csv:"radius_std"`
	RadiusP50        float64 `csv:"radius_p50"`
	RadiusP90        float64 `csv:"radius_p90"`
	FadeMean         float64 `csv:"fade_mean"`
	FadeStd          float64 `csv:"fade_std"`
	LifeFractionMean float64 `csv:"life_fraction_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution returns the mean, sample standard deviation and
// percentiles of values. The input is not modified.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	switch n {
	case 0:
		return 0, 0, 0, 0, 0
	case 1:
		v := values[0]
		return v, 0, v, v, v
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("active", s.Active),
		slog.Int("swarm_active", s.SwarmActive),
		slog.Int("volume_active", s.VolumeActive),
		slog.Int("pending", s.Pending),
		slog.Int("free", s.Free),
		slog.Int("constructed", s.Constructed),
		slog.Int("bodies", s.Bodies),
		slog.Int("spawned", s.Spawned),
		slog.Int("expired", s.Expired),
		slog.Int("evicted", s.Evicted),
		slog.Int("cleared", s.Cleared),
		slog.Int("dropped", s.Dropped),
		slog.Int("cancelled", s.Cancelled),
		slog.Int("pool_growth", s.PoolGrowth),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("radius_p90", s.RadiusP90),
		slog.Float64("fade_mean", s.FadeMean),
		slog.Float64("fade_std", s.FadeStd),
		slog.Float64("life_fraction_mean", s.LifeFractionMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"active", s.Active,
		"pending", s.Pending,
		"free", s.Free,
		"constructed", s.Constructed,
		"bodies", s.Bodies,
		"spawned", s.Spawned,
		"expired", s.Expired,
		"evicted", s.Evicted,
		"dropped", s.Dropped,
		"pool_growth", s.PoolGrowth,
		"radius_mean", s.RadiusMean,
		"radius_p90", s.RadiusP90,
		"fade_mean", s.FadeMean,
	)
}
