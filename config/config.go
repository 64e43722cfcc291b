// Package config provides configuration loading and access for the demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Controller ControllerConfig `yaml:"controller"`
	Effects    EffectsConfig    `yaml:"effects"`
	Assembly   AssemblyConfig   `yaml:"assembly"`
	Noise      NoiseConfig      `yaml:"noise"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Headless   HeadlessConfig   `yaml:"headless"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FOV       float64 `yaml:"fov"`
}

// ControllerConfig holds first-person controller parameters.
type ControllerConfig struct {
	EyeHeight        float64 `yaml:"eye_height"`
	WalkSpeed        float64 `yaml:"walk_speed"`
	Acceleration     float64 `yaml:"acceleration"`
	Friction         float64 `yaml:"friction"` // Horizontal velocity decay per second on the ground
	Gravity          float64 `yaml:"gravity"`  // Downward acceleration (units/s^2)
	JumpSpeed        float64 `yaml:"jump_speed"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // Radians per pixel
	GroundSize       float64 `yaml:"ground_size"`       // Ground plane edge length
}

// EffectsConfig holds ring effect manager settings.
type EffectsConfig struct {
	Kind          string         `yaml:"kind"`           // "swarm" or "volume"
	MaxRings      int            `yaml:"max_rings"`      // Simultaneously active effects
	MaxPending    int            `yaml:"max_pending"`    // Queued delayed spawns
	SwarmCapacity int            `yaml:"swarm_capacity"` // Body buffer size per swarm instance
	Pool          PoolConfig     `yaml:"pool"`
	Defaults      EffectDefaults `yaml:"defaults"`
}

// PoolConfig holds prewarm sizes per effect kind.
type PoolConfig struct {
	Swarm  int `yaml:"swarm"`
	Volume int `yaml:"volume"`
}

// EffectDefaults is the manager-wide default parameter table.
type EffectDefaults struct {
	Life           float64 `yaml:"life"`
	StartRadius    float64 `yaml:"start_radius"`
	EndRadius      float64 `yaml:"end_radius"`
	GrowthExponent float64 `yaml:"growth_exponent"`
	GrowthDelay    float64 `yaml:"growth_delay"`
	FadeStart      float64 `yaml:"fade_start"`
	FadeEnd        float64 `yaml:"fade_end"`
	GrowthMode     string  `yaml:"growth_mode"` // "default" or "collapse_then_grow"
	CollapseAt     float64 `yaml:"collapse_at"`
	CollapseScale  float64 `yaml:"collapse_scale"`
	RecoverAt      float64 `yaml:"recover_at"`
	MoveSpeed      float64 `yaml:"move_speed"`
	SpawnDistance  float64 `yaml:"spawn_distance"`
	Count          int     `yaml:"count"`
	Detail         int     `yaml:"detail"`
	AngleJitter    float64 `yaml:"angle_jitter"`
	RadialJitter   float64 `yaml:"radial_jitter"`
	VerticalJitter float64 `yaml:"vertical_jitter"`
	ScaleMin       float64 `yaml:"scale_min"`
	ScaleMax       float64 `yaml:"scale_max"`
	SpinSpeedMin   float64 `yaml:"spin_speed_min"`
	SpinSpeedMax   float64 `yaml:"spin_speed_max"`
	TubeRadius     float64 `yaml:"tube_radius"`
	NoiseStrength  float64 `yaml:"noise_strength"`
}

// AssemblyConfig holds the staged spawn choreography.
type AssemblyConfig struct {
	Stages []AssemblyStage `yaml:"stages"`
}

// AssemblyStage describes one spawn of the assembly sequence.
// Scales are applied to the manager defaults; nil overrides keep the default.
type AssemblyStage struct {
	Delay          float64  `yaml:"delay"`
	RadiusScale    float64  `yaml:"radius_scale"`
	CountScale     float64  `yaml:"count_scale"`
	DetailDelta    int      `yaml:"detail_delta"`
	DistanceOffset float64  `yaml:"distance_offset"`
	FadeStart      *float64 `yaml:"fade_start,omitempty"`
	FadeEnd        *float64 `yaml:"fade_end,omitempty"`
	GrowthExponent *float64 `yaml:"growth_exponent,omitempty"`
	GrowthDelay    *float64 `yaml:"growth_delay,omitempty"`
	GrowthMode     string   `yaml:"growth_mode,omitempty"`
	CollapseAt     *float64 `yaml:"collapse_at,omitempty"`
	CollapseScale  *float64 `yaml:"collapse_scale,omitempty"`
	RecoverAt      *float64 `yaml:"recover_at,omitempty"`
}

// NoiseConfig holds noise volume parameters.
type NoiseConfig struct {
	Size      int     `yaml:"size"`      // Cells per axis
	Frequency float64 `yaml:"frequency"` // Noise frequency over the unit cube
	Seed      int64   `yaml:"seed"`
	Basis     string  `yaml:"basis"` // "perlin" or "opensimplex"
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// HeadlessConfig holds the scripted trigger cadence for headless runs.
type HeadlessConfig struct {
	DT               float64 `yaml:"dt"`
	SpawnInterval    float64 `yaml:"spawn_interval"`
	AssemblyInterval float64 `yaml:"assembly_interval"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32
	ScreenH32    float32
	HeadlessDT32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Headless.DT <= 0 {
		c.Headless.DT = 1.0 / 60.0
	}
	c.Derived.HeadlessDT32 = float32(c.Headless.DT)

	if c.Effects.Kind == "" {
		c.Effects.Kind = "swarm"
	}
	if c.Noise.Basis == "" {
		c.Noise.Basis = "perlin"
	}
	if c.Effects.Defaults.GrowthMode == "" {
		c.Effects.Defaults.GrowthMode = "default"
	}

	// Stage zero always exists so an assembly fires at least the main ring
	if len(c.Assembly.Stages) == 0 {
		c.Assembly.Stages = []AssemblyStage{{RadiusScale: 1, CountScale: 1}}
	}
	for i := range c.Assembly.Stages {
		st := &c.Assembly.Stages[i]
		if st.RadiusScale == 0 {
			st.RadiusScale = 1
		}
		if st.CountScale == 0 {
			st.CountScale = 1
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
