package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyHint is one line of the key reference.
type KeyHint struct {
	Key    string
	Action string
}

// DefaultKeyHints lists the demo's non-overlay bindings.
func DefaultKeyHints() []KeyHint {
	return []KeyHint{
		{"WASD", "Move"},
		{"Space", "Jump"},
		{"RMB", "Look"},
		{"LMB / F", "Spawn"},
		{"R", "Assembly"},
		{"X", "Clear all"},
		{"F5", "Save snapshot"},
		{"Home", "Reset view"},
		{"H", "This panel"},
	}
}

// ControlsPanel lists the overlay toggles and the key reference.
type ControlsPanel struct {
	renderer *Renderer
	hints    []KeyHint
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		hints:    DefaultKeyHints(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel anchor.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	categories := overlays.Categories()

	lines := len(overlays.All()) + len(categories) + len(c.hints) + 1
	height := int32(lines)*lineHeight + int32(len(categories)+1)*4 + padding*2 + lineHeight + 4
	r.DrawPanel(c.x, c.y, c.width, height)

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	y = r.DrawSectionHeader(c.x+padding, y, "Keys")
	for _, h := range c.hints {
		y = r.DrawLabelValue(c.x+padding, y, h.Key, h.Action)
	}
	return y + 4
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
