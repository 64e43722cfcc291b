package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfx/curves"
	"github.com/pthm-cable/ringfx/effects"
)

const (
	sliderHeight = 20
	sliderGap    = 28
	buttonHeight = 30
)

// PanelState is the tunable engine state edited by the control panel.
type PanelState struct {
	Defaults effects.Params
	MaxRings int
	Capacity int // Upper bound for the count slider
}

// PanelActions reports what the user did during one Draw.
type PanelActions struct {
	Changed  bool // Defaults or MaxRings were edited
	Spawn    bool
	Assembly bool
	Clear    bool
}

// ControlPanel is the raygui parameter panel.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewControlPanel creates a panel anchored at x, y.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   430,
	}
}

// SetPosition updates the panel anchor.
func (p *ControlPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Contains reports whether a screen point lies over the panel, so clicks
// there are not treated as world input.
func (p *ControlPanel) Contains(pt rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pt, rl.Rectangle{
		X:      float32(p.x),
		Y:      float32(p.y),
		Width:  float32(p.width),
		Height: float32(p.height),
	})
}

// Draw renders the sliders and buttons, applying edits to state.
func (p *ControlPanel) Draw(state *PanelState) PanelActions {
	var act PanelActions
	r := p.renderer
	r.DrawPanel(p.x, p.y, p.width, p.height)

	pad := float32(r.Theme.Padding)
	labelW := float32(95)
	valueW := float32(50)
	x := float32(p.x) + pad
	y := float32(p.y) + pad
	sliderX := x + labelW
	sliderW := float32(p.width) - pad*2 - labelW - valueW

	rl.DrawText("Ring Effects", int32(x), int32(y), 18, rl.White)
	y += 28

	d := &state.Defaults
	bw := (float32(p.width) - pad*3) / 2

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: buttonHeight}, "Kind: "+d.Kind.String()) {
		if d.Kind == effects.KindSwarm {
			d.Kind = effects.KindVolume
		} else {
			d.Kind = effects.KindSwarm
		}
		act.Changed = true
	}
	if gui.Button(rl.Rectangle{X: x + bw + pad, Y: y, Width: bw, Height: buttonHeight}, "Mode: "+modeLabel(d.Growth.Mode)) {
		if d.Growth.Mode == curves.ModeDefault {
			d.Growth.Mode = curves.ModeCollapseThenGrow
		} else {
			d.Growth.Mode = curves.ModeDefault
		}
		act.Changed = true
	}
	y += buttonHeight + 12

	slider := func(label string, value, lo, hi float32, format string) float32 {
		rl.DrawText(label, int32(x), int32(y)+4, 12, r.Theme.LabelColor)
		next := gui.SliderBar(
			rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: sliderHeight},
			"", fmt.Sprintf(format, value), value, lo, hi,
		)
		y += sliderGap
		if next != value {
			act.Changed = true
		}
		return next
	}

	d.Life = slider("Life (s)", d.Life, effects.MinLife, 10, "%.2f")
	d.Growth.EndRadius = slider("End radius", d.Growth.EndRadius, 0.1, 20, "%.2f")
	d.Growth.Exponent = slider("Growth exp", d.Growth.Exponent, curves.MinExponent, 4, "%.2f")
	d.Growth.Delay = slider("Growth delay", d.Growth.Delay, 0, curves.MaxGrowthDelay, "%.2f")
	d.Fade.Start = slider("Fade start", d.Fade.Start, 0, 1, "%.2f")
	d.Fade.End = slider("Fade end", d.Fade.End, 0, 1, "%.2f")

	if d.Kind == effects.KindSwarm {
		count := slider("Count", float32(d.Count), 0, float32(state.Capacity), "%.0f")
		d.Count = int(count + 0.5)
	} else {
		d.NoiseStrength = slider("Noise", d.NoiseStrength, 0, 1, "%.2f")
	}

	rings := slider("Max rings", float32(state.MaxRings), 1, 64, "%.0f")
	state.MaxRings = int(rings + 0.5)

	y += 6
	bw3 := (float32(p.width) - pad*4) / 3
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw3, Height: buttonHeight}, "Spawn") {
		act.Spawn = true
	}
	if gui.Button(rl.Rectangle{X: x + bw3 + pad, Y: y, Width: bw3, Height: buttonHeight}, "Assembly") {
		act.Assembly = true
	}
	if gui.Button(rl.Rectangle{X: x + (bw3+pad)*2, Y: y, Width: bw3, Height: buttonHeight}, "Clear") {
		act.Clear = true
	}
	y += buttonHeight + pad

	p.height = int32(y) - p.y
	return act
}

func modeLabel(m curves.Mode) string {
	if m == curves.ModeCollapseThenGrow {
		return "collapse"
	}
	return "grow"
}
