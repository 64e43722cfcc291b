package main

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/ringfx/config"
	"github.com/pthm-cable/ringfx/effects"
	"github.com/pthm-cable/ringfx/telemetry"
)

// Cost weights. Lost effects dominate; memory held by idle pools breaks ties.
const (
	weightEvicted   = 100.0 // per evicted fraction of spawns
	weightDropped   = 100.0 // per dropped fraction of delayed requests
	weightGrowth    = 2.0   // per instance constructed after prewarm
	weightFootprint = 0.02  // per prewarmed swarm body or volume instance
	weightQueue     = 0.05  // per pending slot
)

// Scenario is the scripted load each evaluation runs.
type Scenario struct {
	Duration         float64 // Simulated seconds
	SpawnInterval    float64
	AssemblyInterval float64
	VolumeShare      float64 // Probability a spawn is a volume effect
}

// ScenarioFromConfig derives the default load from the headless script.
func ScenarioFromConfig(cfg *config.Config, duration float64) Scenario {
	return Scenario{
		Duration:         duration,
		SpawnInterval:    cfg.Headless.SpawnInterval,
		AssemblyInterval: cfg.Headless.AssemblyInterval,
		VolumeShare:      0.3,
	}
}

// Breakdown is the per-run cost decomposition.
type Breakdown struct {
	Spawned   int
	Evicted   int
	Requested int // Delayed requests, accepted or not
	Dropped   int
	Growth    int
	Windows   []telemetry.WindowStats
}

// FitnessEvaluator runs scripted engine loads and computes a cost.
type FitnessEvaluator struct {
	params      *ParamVector
	scenario    Scenario
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu            sync.Mutex
	lastBreakdown Breakdown
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, scenario Scenario, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		scenario:    scenario,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
	}
}

// LastBreakdown returns the first seed's breakdown from the most recent evaluation.
func (fe *FitnessEvaluator) LastBreakdown() Breakdown {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBreakdown
}

// Evaluate computes the mean cost of x across seeds (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	costs := make([]float64, len(fe.seeds))
	breakdowns := make([]Breakdown, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			// Each run owns its manager; the engine is single-threaded
			breakdowns[idx] = runScenario(cfg, fe.scenario, s, fe.statsWindow)
			costs[idx] = computeCost(cfg, breakdowns[idx])
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, c := range costs {
		total += c
	}

	fe.mu.Lock()
	if len(breakdowns) > 0 {
		fe.lastBreakdown = breakdowns[0]
	}
	fe.mu.Unlock()

	return total / float64(len(costs))
}

// copyConfig returns a copy of the base config safe to mutate per evaluation.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Assembly.Stages = append([]config.AssemblyStage(nil), fe.baseConfig.Assembly.Stages...)
	return &cfg
}

// runScenario drives a fresh manager through the scripted load.
func runScenario(cfg *config.Config, sc Scenario, seed int64, statsWindow float64) Breakdown {
	rng := rand.New(rand.NewSource(seed))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := effects.NewManager(effects.ManagerConfigFromConfig(cfg, rng, logger))

	dt := cfg.Derived.HeadlessDT32
	collector := telemetry.NewCollector(statsWindow, dt)
	collector.Baseline(m)

	prewarmed := m.Constructed()
	ticks := int32(sc.Duration / float64(dt))
	snaps := make([]effects.Snapshot, 0, cfg.Effects.MaxRings)
	stages := len(m.Stages()) - 1 // Stage zero spawns immediately

	var (
		b             Breakdown
		spawnTimer    float32
		assemblyTimer float32
		swarm         = effects.KindSwarm
		volume        = effects.KindVolume
	)
	for tick := int32(1); tick <= ticks; tick++ {
		if sc.SpawnInterval > 0 {
			spawnTimer += dt
			for spawnTimer >= float32(sc.SpawnInterval) {
				spawnTimer -= float32(sc.SpawnInterval)
				kind := &swarm
				if rng.Float64() < sc.VolumeShare {
					kind = &volume
				}
				m.Spawn(effects.Options{Kind: kind})
			}
		}
		if sc.AssemblyInterval > 0 {
			assemblyTimer += dt
			for assemblyTimer >= float32(sc.AssemblyInterval) {
				assemblyTimer -= float32(sc.AssemblyInterval)
				b.Requested += stages
				_ = m.SpawnAssembly() // Shortfalls are counted in Stats.Dropped
			}
		}

		m.Update(dt)
		snaps = m.Snapshots(snaps[:0])
		if collector.ShouldFlush(tick) {
			b.Windows = append(b.Windows, collector.Flush(tick, m, snaps))
		}
	}

	st := m.Stats()
	b.Spawned = st.Spawned
	b.Evicted = st.Evicted
	b.Dropped = st.Dropped
	b.Growth = m.Constructed() - prewarmed
	return b
}

// computeCost turns a breakdown into the scalar minimized by CMA-ES.
func computeCost(cfg *config.Config, b Breakdown) float64 {
	cost := weightGrowth * float64(b.Growth)
	if b.Spawned > 0 {
		cost += weightEvicted * float64(b.Evicted) / float64(b.Spawned)
	}
	if b.Requested > 0 {
		cost += weightDropped * float64(b.Dropped) / float64(b.Requested)
	}

	bodies := cfg.Effects.Pool.Swarm * cfg.Effects.SwarmCapacity
	cost += weightFootprint * float64(bodies+cfg.Effects.Pool.Volume)
	cost += weightQueue * float64(cfg.Effects.MaxPending)

	if math.IsNaN(cost) {
		return math.Inf(1)
	}
	return cost
}
