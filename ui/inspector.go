package ui

import (
	"fmt"

	"github.com/pthm-cable/ringfx/effects"
)

// EffectInspector shows the live state of one effect, looked up by handle
// every frame so a recycled instance is never shown under a stale handle.
type EffectInspector struct {
	renderer *Renderer
	panel    PanelDescriptor
	x, y     int32
	handle   effects.Handle
}

// NewEffectInspector creates an inspector anchored at x, y.
func NewEffectInspector(x, y int32) *EffectInspector {
	return &EffectInspector{
		renderer: NewRenderer(),
		panel:    EffectPanel(),
		x:        x,
		y:        y,
	}
}

// Track selects the effect to display. Zero clears the selection.
func (i *EffectInspector) Track(h effects.Handle) { i.handle = h }

// Tracked returns the selected handle.
func (i *EffectInspector) Tracked() effects.Handle { return i.handle }

// SetPosition updates the panel anchor.
func (i *EffectInspector) SetPosition(x, y int32) {
	i.x = x
	i.y = y
}

// Draw renders the tracked effect, or nothing once it has been released.
func (i *EffectInspector) Draw(m *effects.Manager) {
	if i.handle == 0 {
		return
	}
	snap, ok := m.Lookup(i.handle)
	if !ok {
		i.handle = 0
		return
	}
	i.renderer.DrawDescribed(i.x, i.y, i.panel, &snap)
}

// EffectPanel describes the inspector layout over *effects.Snapshot.
func EffectPanel() PanelDescriptor {
	snap := func(d any) *effects.Snapshot { return d.(*effects.Snapshot) }
	isVolume := func(d any) bool { return snap(d).Kind == effects.KindVolume }
	isSwarm := func(d any) bool { return snap(d).Kind == effects.KindSwarm }

	return PanelDescriptor{
		ID:    "effect",
		Title: "Effect",
		Width: 230,
		Sections: []SectionDescriptor{
			{
				ID: "identity",
				Fields: []FieldDescriptor{
					{ID: "handle", Label: "Handle", Widget: WidgetText,
						TextGetter: func(d any) string { return fmt.Sprintf("#%d", snap(d).Handle) }},
					{ID: "kind", Label: "Kind", Widget: WidgetText,
						TextGetter: func(d any) string { return snap(d).Kind.String() }},
				},
			},
			{
				ID:    "life",
				Title: "Life",
				Fields: []FieldDescriptor{
					{ID: "age", Label: "Age", Widget: WidgetText, Format: "%.2fs",
						Getter: func(d any) float32 { return snap(d).Age }},
					{ID: "life", Label: "Life", Widget: WidgetText, Format: "%.2fs",
						Getter: func(d any) float32 { return snap(d).Life }},
					{ID: "progress", Label: "Progress", Widget: WidgetBar,
						Getter: func(d any) float32 { return snap(d).LifeFraction }},
					{ID: "fade", Label: "Fade", Widget: WidgetBar,
						Getter: func(d any) float32 { return snap(d).Fade }},
				},
			},
			{
				ID:    "shape",
				Title: "Shape",
				Fields: []FieldDescriptor{
					{ID: "radius", Label: "Radius", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return snap(d).Radius }},
					{ID: "end_radius", Label: "End radius", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return snap(d).EndRadius }},
					{ID: "bodies", Label: "Bodies", Widget: WidgetText, Visible: isSwarm,
						TextGetter: func(d any) string { return fmt.Sprintf("%d", len(snap(d).Bodies)) }},
					{ID: "detail", Label: "Detail", Widget: WidgetText, Visible: isSwarm,
						TextGetter: func(d any) string { return fmt.Sprintf("%d", snap(d).Detail) }},
				},
			},
			{
				ID:      "volume",
				Title:   "Volume",
				Visible: isVolume,
				Fields: []FieldDescriptor{
					{ID: "major", Label: "Major (norm)", Widget: WidgetText, Format: "%.4f",
						Getter: func(d any) float32 { return snap(d).MajorRadiusNormalized }},
					{ID: "scale", Label: "Box scale", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return snap(d).VolumeScale }},
					{ID: "tube", Label: "Tube", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return snap(d).TubeRadius }},
					{ID: "noise", Label: "Noise", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return snap(d).NoiseStrength }},
				},
			},
		},
	}
}
