// Package main provides CMA-ES tuning of the ring effect engine's capacity
// settings against a scripted spawn load.
package main

import (
	"math"

	"github.com/pthm-cable/ringfx/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// All of them are integer counts; values are rounded when applied.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "max_rings", Path: "effects.max_rings", Min: 2, Max: 64},
			{Name: "max_pending", Path: "effects.max_pending", Min: 2, Max: 64},
			{Name: "pool_swarm", Path: "effects.pool.swarm", Min: 0, Max: 48},
			{Name: "pool_volume", Path: "effects.pool.volume", Min: 0, Max: 24},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds it to the nearest count.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Round(math.Min(math.Max(v[i], spec.Min), spec.Max))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Effects.MaxRings = int(c[0])
	cfg.Effects.MaxPending = int(c[1])
	cfg.Effects.Pool.Swarm = int(c[2])
	cfg.Effects.Pool.Volume = int(c[3])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Effects.MaxRings),
		float64(cfg.Effects.MaxPending),
		float64(cfg.Effects.Pool.Swarm),
		float64(cfg.Effects.Pool.Volume),
	}
}
