package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfx/renderer"
	"github.com/pthm-cable/ringfx/telemetry"
	"github.com/pthm-cable/ringfx/ui"
)

var backgroundColor = rl.Color{R: 12, G: 14, B: 20, A: 255}

// Draw renders the frame and closes the perf sample opened by Update.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode3D(renderer.Camera3D(g.camera))
	if g.overlays.IsEnabled(ui.OverlayGround) {
		g.ground.Draw()
	}
	g.rings.Draw(g.camera, g.snaps)
	if g.overlays.IsEnabled(ui.OverlayBounds) {
		ui.DrawEffectBounds(g.snaps)
	}
	rl.EndMode3D()

	if g.overlays.IsEnabled(ui.OverlayLabels) {
		ui.DrawEffectLabels(g.camera, g.snaps)
	}
	g.drawUI()

	rl.EndDrawing()

	g.perfCollector.EndTick(g.effects)
	g.perfCollector.RecordFrame()
}

// drawUI renders the HUD and panels.
func (g *Game) drawUI() {
	stats := g.effects.Stats()
	g.hud.Draw(ui.HUDData{
		Title:       "Ring Effects",
		Kind:        g.effects.Defaults().Kind.String(),
		Active:      g.effects.ActiveCount(),
		MaxRings:    g.effects.MaxRings(),
		Pending:     g.effects.PendingCount(),
		Free:        g.effects.FreeCount(),
		Constructed: g.effects.Constructed(),
		Evicted:     stats.Evicted,
		Dropped:     stats.Dropped,
		Tick:        g.tick,
		FPS:         rl.GetFPS(),
		Grounded:    g.bodyMap.Get(g.player).Grounded,
		Status:      g.status,
	})
	g.hud.DrawControls(int32(g.screenHeight), "[H] controls  [Tab] panel  [F/LMB] spawn  [R] assembly  [X] clear")

	g.controls.Draw(g.overlays)

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		g.inspector.Draw(g.effects)
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		ps := g.perfCollector.Stats()
		data := ui.PerfPanelData{
			Total:      ps.AvgFrame,
			FPS:        ps.FPS,
			AvgActive:  ps.AvgActive,
			PeakActive: ps.PeakActive,
			Fired:      ps.Fired,
			EffectCost: ps.EffectCost(),
		}
		for _, ph := range telemetry.Phases {
			data.Phases = append(data.Phases, ui.PhaseTiming{Name: ph.String(), Avg: ps.PhaseAvg[ph]})
		}
		g.perfPanel.Draw(data)
	}

	if g.overlays.IsEnabled(ui.OverlayPanel) {
		state := ui.PanelState{
			Defaults: g.effects.Defaults(),
			MaxRings: g.effects.MaxRings(),
			Capacity: g.cfg.Effects.SwarmCapacity,
		}
		g.applyPanel(state, g.panel.Draw(&state))
	}
}

// applyPanel pushes control panel edits and button presses into the engine.
func (g *Game) applyPanel(state ui.PanelState, act ui.PanelActions) {
	if act.Changed {
		g.effects.SetDefaults(state.Defaults)
	}
	if state.MaxRings != g.effects.MaxRings() {
		g.effects.SetMaxRings(state.MaxRings)
	}
	if act.Spawn {
		g.spawn()
	}
	if act.Assembly {
		g.spawnAssembly()
	}
	if act.Clear {
		g.clearAll()
	}
}
