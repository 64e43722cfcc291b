package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfx/effects"
	"github.com/pthm-cable/ringfx/telemetry"
)

const (
	maxFrameDT       = 0.1
	headlessTurnRate = 0.35 // rad/s, so scripted spawns fan out around the player
	statusDuration   = 3.0
)

// Update runs one graphical frame: input, controller, effects, telemetry.
// Draw must follow to close the frame's perf sample.
func (g *Game) Update() {
	dt := rl.GetFrameTime()
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	g.perfCollector.StartTick()
	g.handleInput(dt)
	g.step(dt)

	if g.statusTTL > 0 {
		g.statusTTL -= dt
		if g.statusTTL <= 0 {
			g.status = ""
		}
	}
}

// UpdateHeadless runs one fixed-step tick with scripted triggers and no raylib calls.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Derived.HeadlessDT32
	g.perfCollector.StartTick()
	g.runScript(dt)
	g.step(dt)
	g.perfCollector.EndTick(g.effects)
}

// step advances the simulation by dt.
func (g *Game) step(dt float32) {
	g.perfCollector.StartPhase(telemetry.PhaseController)
	g.controller.Update(dt)
	g.syncCamera()

	g.perfCollector.StartPhase(telemetry.PhaseEffects)
	g.effects.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.snaps = g.effects.Snapshots(g.snaps[:0])

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
}

// runScript fires the periodic spawns and assemblies of a headless run.
func (g *Game) runScript(dt float32) {
	h := g.cfg.Headless
	g.intentMap.Get(g.player).YawDelta = headlessTurnRate * dt

	if h.SpawnInterval > 0 {
		interval := float32(h.SpawnInterval)
		g.spawnTimer += dt
		for g.spawnTimer >= interval {
			g.spawnTimer -= interval
			g.spawn()
		}
	}
	if h.AssemblyInterval > 0 {
		interval := float32(h.AssemblyInterval)
		g.assemblyTimer += dt
		for g.assemblyTimer >= interval {
			g.assemblyTimer -= interval
			g.spawnAssembly()
		}
	}
}

// spawn starts one effect with the current defaults at the camera.
func (g *Game) spawn() effects.Handle {
	h := g.effects.Spawn(effects.Options{})
	if g.inspector != nil {
		g.inspector.Track(h)
	}
	return h
}

// spawnAssembly queues the staged sequence.
func (g *Game) spawnAssembly() {
	if err := g.effects.SpawnAssembly(); err != nil {
		slog.Debug("assembly truncated", "tick", g.tick, "error", err)
		g.setStatus("assembly truncated: pending queue full")
	}
}

// clearAll releases every effect and pending request.
func (g *Game) clearAll() {
	g.effects.ClearAll()
	g.snaps = g.snaps[:0]
	if g.inspector != nil {
		g.inspector.Track(0)
	}
}

// setStatus shows a transient HUD message.
func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTTL = statusDuration
}
