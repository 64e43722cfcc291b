package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfx/ui"
)

// handleInput processes keyboard and mouse input for one frame.
func (g *Game) handleInput(dt float32) {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			if on && id == ui.OverlayPanel {
				rl.EnableCursor()
			}
			continue
		}
		switch key {
		case rl.KeyH:
			g.controls.Toggle()
		case rl.KeyF:
			g.spawn()
		case rl.KeyR:
			g.spawnAssembly()
		case rl.KeyX:
			g.clearAll()
		case rl.KeyF5:
			g.saveSnapshot(nil)
		case rl.KeyHome:
			g.resetPlayer()
		}
	}

	g.handleMovementInput()
	g.handleLookInput()

	mouse := rl.GetMousePosition()
	overPanel := g.overlays.IsEnabled(ui.OverlayPanel) && g.panel.Contains(mouse)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		g.spawn()
	}
}

// handleMovementInput writes WASD and jump into the player's intent.
func (g *Game) handleMovementInput() {
	in := g.intentMap.Get(g.player)
	in.Forward = axis(rl.IsKeyDown(rl.KeyW), rl.IsKeyDown(rl.KeyS))
	in.Strafe = axis(rl.IsKeyDown(rl.KeyD), rl.IsKeyDown(rl.KeyA))
	if rl.IsKeyPressed(rl.KeySpace) {
		in.Jump = true
	}
}

// handleLookInput turns the view while the right mouse button is held.
func (g *Game) handleLookInput() {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		rl.DisableCursor()
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		rl.EnableCursor()
	}
	if !rl.IsMouseButtonDown(rl.MouseButtonRight) {
		return
	}

	sens := float32(g.cfg.Controller.MouseSensitivity)
	delta := rl.GetMouseDelta()
	in := g.intentMap.Get(g.player)
	in.YawDelta -= delta.X * sens
	in.PitchDelta -= delta.Y * sens
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.panel.SetPosition(int32(w)-330, 10)
	g.inspector.SetPosition(int32(w)-570, 10)
	g.perfPanel.SetPosition(10, int32(h)-150)
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}
