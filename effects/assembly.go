package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/ringfx/curves"
)

// Stage is one row of the assembly choreography. Scales and offsets are
// applied to the manager defaults; Overrides adjust fade and growth.
type Stage struct {
	Delay          float32
	RadiusScale    float32
	CountScale     float32
	DetailDelta    int
	DistanceOffset float32
	Overrides      Options
}

// DefaultStages is the built-in three-stage assembly: the main ring now,
// then a collapsing inner ring and a mid ring shortly after.
func DefaultStages() []Stage {
	return []Stage{
		{RadiusScale: 1, CountScale: 1},
		{
			Delay:          0.06,
			RadiusScale:    1.0 / 3,
			CountScale:     0.5,
			DetailDelta:    -1,
			DistanceOffset: 0.6,
			Overrides: Options{
				FadeStart:      Ptr[float32](0.4),
				FadeEnd:        Ptr[float32](0.9),
				GrowthExponent: Ptr[float32](0.8),
				GrowthMode:     Ptr(curves.ModeCollapseThenGrow),
				CollapseAt:     Ptr[float32](0.06),
				CollapseScale:  Ptr[float32](0.05),
				RecoverAt:      Ptr[float32](0.2),
			},
		},
		{
			Delay:          0.06,
			RadiusScale:    0.52,
			CountScale:     0.65,
			DetailDelta:    -1,
			DistanceOffset: 1.2,
			Overrides: Options{
				FadeStart:      Ptr[float32](0.5),
				GrowthExponent: Ptr[float32](1.8),
				GrowthDelay:    Ptr[float32](0.05),
			},
		},
	}
}

// Stages returns the assembly table in use.
func (m *Manager) Stages() []Stage { return m.stages }

// SpawnAssembly fires the staged choreography. Every stage shares the pose
// captured now, so the group stays together while the camera moves.
// Stages that could not be queued are reported in the returned error.
func (m *Manager) SpawnAssembly() error {
	pose := m.spawnPose(Options{})
	base := m.defaults

	var errs []error
	for i, st := range m.stages {
		opts := st.options(base)
		opts.Pose = &pose
		if st.Delay <= 0 {
			m.Spawn(opts)
			continue
		}
		if err := m.SpawnAfter(st.Delay, opts); err != nil {
			errs = append(errs, fmt.Errorf("assembly stage %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// options derives the spawn options for this stage from base.
func (st Stage) options(base Params) Options {
	opts := st.Overrides
	opts.StartRadius = Ptr(base.Growth.StartRadius * st.RadiusScale)
	opts.EndRadius = Ptr(base.Growth.EndRadius * st.RadiusScale)
	opts.SpawnDistance = Ptr(base.SpawnDistance + st.DistanceOffset)
	opts.Detail = Ptr(max(base.Detail+st.DetailDelta, 0))

	count := int(math.Round(float64(float32(base.Count) * st.CountScale)))
	if base.Count > 0 {
		count = max(count, 1)
	}
	opts.Count = Ptr(count)
	return opts
}
