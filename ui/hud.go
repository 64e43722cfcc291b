package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Kind        string
	Active      int
	MaxRings    int
	Pending     int
	Free        int
	Constructed int
	Evicted     int
	Dropped     int
	Tick        int32
	FPS         int32
	Grounded    bool
	Status      string // Transient message, e.g. a saved snapshot path
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	activeColor := rl.LightGray
	if data.Active >= data.MaxRings {
		activeColor = h.renderer.Theme.WarnColor
	}
	rl.DrawText(
		fmt.Sprintf("Active: %d/%d | Pending: %d | Kind: %s", data.Active, data.MaxRings, data.Pending, data.Kind),
		10, 35, 16, activeColor,
	)
	rl.DrawText(
		fmt.Sprintf("Pool free: %d | Constructed: %d | Evicted: %d | Dropped: %d",
			data.Free, data.Constructed, data.Evicted, data.Dropped),
		10, 55, 16, rl.LightGray,
	)

	state := "airborne"
	if data.Grounded {
		state = "grounded"
	}
	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d | %s", data.Tick, data.FPS, state), 10, 75, 16, rl.LightGray)

	if data.Status != "" {
		rl.DrawText(data.Status, 10, 95, 14, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PhaseTiming is one row of the perf panel.
type PhaseTiming struct {
	Name string
	Avg  time.Duration
}

// PerfPanelData holds frame phase timings and effect load for display.
type PerfPanelData struct {
	Phases     []PhaseTiming
	Total      time.Duration
	FPS        float64
	AvgActive  float64
	PeakActive int
	Fired      int // Over the perf window
	EffectCost time.Duration
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.renderer
	pad := r.Theme.Padding
	width := int32(300)
	height := pad*2 + 52 + int32(len(data.Phases))*14
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + pad
	y := p.y + pad
	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s  (%.0f fps)", data.Total.Round(time.Microsecond), data.FPS), x, y, 12, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Load: %.1f avg / %d peak, %d fired, %s each", data.AvgActive, data.PeakActive, data.Fired, data.EffectCost), x, y, 12, rl.SkyBlue)
	y += 16

	for _, ph := range data.Phases {
		name, avg := ph.Name, ph.Avg
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-11s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
