package effects

import (
	"log/slog"

	"github.com/pthm-cable/ringfx/config"
	"github.com/pthm-cable/ringfx/curves"
)

// ParamsFromConfig converts the config default table into Params.
func ParamsFromConfig(kind string, d config.EffectDefaults) Params {
	p := Params{
		Kind: ParseKind(kind),
		Life: float32(d.Life),
		Growth: curves.Growth{
			StartRadius:   float32(d.StartRadius),
			EndRadius:     float32(d.EndRadius),
			Exponent:      float32(d.GrowthExponent),
			Delay:         float32(d.GrowthDelay),
			Mode:          curves.ParseMode(d.GrowthMode),
			CollapseAt:    float32(d.CollapseAt),
			CollapseScale: float32(d.CollapseScale),
			RecoverAt:     float32(d.RecoverAt),
		},
		Fade: curves.Fade{
			Start: float32(d.FadeStart),
			End:   float32(d.FadeEnd),
		},
		MoveSpeed:      float32(d.MoveSpeed),
		SpawnDistance:  float32(d.SpawnDistance),
		Count:          d.Count,
		Detail:         d.Detail,
		AngleJitter:    float32(d.AngleJitter),
		RadialJitter:   float32(d.RadialJitter),
		VerticalJitter: float32(d.VerticalJitter),
		ScaleMin:       float32(d.ScaleMin),
		ScaleMax:       float32(d.ScaleMax),
		SpinSpeedMin:   float32(d.SpinSpeedMin),
		SpinSpeedMax:   float32(d.SpinSpeedMax),
		TubeRadius:     float32(d.TubeRadius),
		NoiseStrength:  float32(d.NoiseStrength),
	}
	p.Sanitize()
	return p
}

// StagesFromConfig converts the config assembly table into Stages.
func StagesFromConfig(stages []config.AssemblyStage) []Stage {
	out := make([]Stage, len(stages))
	for i, st := range stages {
		out[i] = Stage{
			Delay:          float32(st.Delay),
			RadiusScale:    float32(st.RadiusScale),
			CountScale:     float32(st.CountScale),
			DetailDelta:    st.DetailDelta,
			DistanceOffset: float32(st.DistanceOffset),
			Overrides: Options{
				FadeStart:      f32(st.FadeStart),
				FadeEnd:        f32(st.FadeEnd),
				GrowthExponent: f32(st.GrowthExponent),
				GrowthDelay:    f32(st.GrowthDelay),
				CollapseAt:     f32(st.CollapseAt),
				CollapseScale:  f32(st.CollapseScale),
				RecoverAt:      f32(st.RecoverAt),
			},
		}
		if st.GrowthMode != "" {
			out[i].Overrides.GrowthMode = Ptr(curves.ParseMode(st.GrowthMode))
		}
	}
	return out
}

// ManagerConfigFromConfig builds a ManagerConfig from the loaded config.
func ManagerConfigFromConfig(cfg *config.Config, rng Rand, logger *slog.Logger) ManagerConfig {
	return ManagerConfig{
		Defaults:      ParamsFromConfig(cfg.Effects.Kind, cfg.Effects.Defaults),
		Stages:        StagesFromConfig(cfg.Assembly.Stages),
		MaxRings:      cfg.Effects.MaxRings,
		MaxPending:    cfg.Effects.MaxPending,
		SwarmCapacity: cfg.Effects.SwarmCapacity,
		PrewarmSwarm:  cfg.Effects.Pool.Swarm,
		PrewarmVolume: cfg.Effects.Pool.Volume,
		Rand:          rng,
		Logger:        logger,
	}
}

func f32(v *float64) *float32 {
	if v == nil {
		return nil
	}
	return Ptr(float32(*v))
}
