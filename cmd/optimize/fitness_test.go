package main

import (
	"testing"

	"github.com/pthm-cable/ringfx/config"
)

func loadBase(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRunScenarioDeterministic(t *testing.T) {
	cfg := loadBase(t)
	sc := ScenarioFromConfig(cfg, 10)

	a := runScenario(cfg, sc, 7, 5)
	b := runScenario(cfg, sc, 7, 5)
	if a.Spawned != b.Spawned || a.Evicted != b.Evicted || a.Growth != b.Growth || a.Dropped != b.Dropped {
		t.Errorf("same seed differs: %+v vs %+v", a, b)
	}
	if a.Spawned == 0 {
		t.Fatal("scenario spawned nothing")
	}
	if len(a.Windows) != 2 {
		t.Errorf("windows = %d, want 2 for 10s at 5s windows", len(a.Windows))
	}
}

func TestTightCapacityCostsMore(t *testing.T) {
	base := loadBase(t)
	pv := NewParamVector()
	sc := Scenario{Duration: 20, SpawnInterval: 0.1, AssemblyInterval: 1, VolumeShare: 0.3}

	tight := NewFitnessEvaluator(pv, sc, []int64{1}, base)
	tightCost := tight.Evaluate([]float64{2, 2, 2, 1})
	tb := tight.LastBreakdown()
	if tb.Evicted == 0 {
		t.Error("two rings under a 0.1s spawn cadence should evict")
	}

	roomy := NewFitnessEvaluator(pv, sc, []int64{1}, base)
	roomyCost := roomy.Evaluate([]float64{40, 32, 2, 1})
	if rb := roomy.LastBreakdown(); rb.Evicted != 0 {
		t.Errorf("roomy settings lost effects: %+v", rb)
	}
	if roomyCost >= tightCost {
		t.Errorf("roomy cost %.3f should beat tight cost %.3f", roomyCost, tightCost)
	}
}

func TestEvaluateLeavesBaseConfigUntouched(t *testing.T) {
	base := loadBase(t)
	before := base.Effects
	fe := NewFitnessEvaluator(NewParamVector(), ScenarioFromConfig(base, 1), []int64{1, 2}, base)
	fe.Evaluate([]float64{3, 3, 0, 0})
	if base.Effects.MaxRings != before.MaxRings || base.Effects.Pool != before.Pool {
		t.Error("Evaluate mutated the base config")
	}
}
