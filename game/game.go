// Package game wires the ring effect engine, the first-person controller and
// the raylib front end together.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ringfx/camera"
	"github.com/pthm-cable/ringfx/components"
	"github.com/pthm-cable/ringfx/config"
	"github.com/pthm-cable/ringfx/effects"
	"github.com/pthm-cable/ringfx/geometry"
	"github.com/pthm-cable/ringfx/noise"
	"github.com/pthm-cable/ringfx/renderer"
	"github.com/pthm-cable/ringfx/systems"
	"github.com/pthm-cable/ringfx/telemetry"
	"github.com/pthm-cable/ringfx/ui"
)

// Player start, facing -Z toward the origin.
var spawnPoint = components.Position{X: 0, Y: 0, Z: 12}

// Options holds configuration for game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string // Overrides <OutputDir>/snapshots
	OutputDir      string
	Headless       bool
}

// Game holds the complete demo state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	// Controller
	world      *ecs.World
	controller *systems.ControllerSystem
	player     ecs.Entity
	posMap     *ecs.Map1[components.Position]
	velMap     *ecs.Map1[components.Velocity]
	lookMap    *ecs.Map1[components.Look]
	bodyMap    *ecs.Map1[components.Body]
	intentMap  *ecs.Map1[components.Intent]

	camera  *camera.Camera
	effects *effects.Manager
	snaps   []effects.Snapshot

	noise  *noise.Cache
	meshes *geometry.Cache

	// Rendering (nil in headless mode)
	ground    *renderer.GroundRenderer
	rings     *renderer.RingRenderer
	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	panel     *ui.ControlPanel
	controls  *ui.ControlsPanel
	inspector *ui.EffectInspector
	perfPanel *ui.PerfPanel

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	snapshotDir      string
	logStats         bool

	// Headless trigger script
	spawnTimer    float32
	assemblyTimer float32

	tick      int32
	headless  bool
	status    string
	statusTTL float32

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a new game instance. config.Init must have been called.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		cfg:          cfg,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		rngSeed:      opts.Seed,
		world:        world,
		posMap:       ecs.NewMap1[components.Position](world),
		velMap:       ecs.NewMap1[components.Velocity](world),
		lookMap:      ecs.NewMap1[components.Look](world),
		bodyMap:      ecs.NewMap1[components.Body](world),
		intentMap:    ecs.NewMap1[components.Intent](world),
		meshes:       &geometry.Cache{},
		snapshotDir:  opts.SnapshotDir,
		logStats:     opts.LogStats,
		headless:     opts.Headless,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	g.controller = systems.NewControllerSystem(world, components.MovementFromConfig(cfg.Controller))
	g.spawnPlayer()

	g.camera = camera.New(g.screenWidth, g.screenHeight, float32(cfg.Screen.FOV), mgl32.Vec3{})
	g.syncCamera()

	mc := effects.ManagerConfigFromConfig(cfg, g.rng, slog.Default().With("component", "effects"))
	mc.PoseSource = g.camera
	g.effects = effects.NewManager(mc)
	g.snaps = make([]effects.Snapshot, 0, g.effects.MaxRings())

	builder, err := noise.BuilderFromConfig(cfg.Noise)
	if err != nil {
		slog.Error("invalid noise config, falling back to perlin", "error", err)
		builder.Basis = noise.BasisPerlin
	}
	g.noise = noise.NewCache(builder)

	// Telemetry
	dt := cfg.Derived.HeadlessDT32
	if !opts.Headless && cfg.Screen.TargetFPS > 0 {
		dt = 1 / float32(cfg.Screen.TargetFPS)
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, dt)
	g.collector.Baseline(g.effects)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.initRendering()
	}

	return g
}

// initRendering creates the renderers and UI panels.
func (g *Game) initRendering() {
	g.ground = renderer.NewGroundRenderer(float32(g.cfg.Controller.GroundSize), g.cfg.Noise.Seed)
	g.rings = renderer.NewRingRenderer(g.meshes, g.noise, renderer.DefaultMaterial())

	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.panel = ui.NewControlPanel(int32(g.screenWidth)-330, 10, 320)
	g.controls = ui.NewControlsPanel(10, 120, 220)
	g.inspector = ui.NewEffectInspector(int32(g.screenWidth)-570, 10)
	g.perfPanel = ui.NewPerfPanel(10, int32(g.screenHeight)-150)
}

// spawnPlayer creates the first-person walker entity.
func (g *Game) spawnPlayer() {
	mapper := ecs.NewMap5[
		components.Position,
		components.Velocity,
		components.Look,
		components.Body,
		components.Intent,
	](g.world)

	pos := spawnPoint
	vel := components.Velocity{}
	look := components.Look{}
	body := components.Body{EyeHeight: float32(g.cfg.Controller.EyeHeight), Grounded: true}
	intent := components.Intent{}
	g.player = mapper.NewEntity(&pos, &vel, &look, &body, &intent)
}

// syncCamera moves the camera to the player's eye.
func (g *Game) syncCamera() {
	pos := g.posMap.Get(g.player)
	body := g.bodyMap.Get(g.player)
	look := g.lookMap.Get(g.player)
	g.camera.Position = systems.EyePosition(*pos, *body)
	g.camera.SetLook(look.Yaw, look.Pitch)
}

// resetPlayer returns the player to the spawn point.
func (g *Game) resetPlayer() {
	*g.posMap.Get(g.player) = spawnPoint
	*g.velMap.Get(g.player) = components.Velocity{}
	*g.lookMap.Get(g.player) = components.Look{}
	g.bodyMap.Get(g.player).Grounded = true
	g.syncCamera()
}

// Effects returns the effect manager.
func (g *Game) Effects() *effects.Manager { return g.effects }

// Tick returns the current tick.
func (g *Game) Tick() int32 { return g.tick }

// Unload releases resources and flushes output files.
func (g *Game) Unload() {
	g.effects.ClearAll()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
