package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfx/noise"
)

const groundTile = 2.0

// GroundRenderer draws a tiled ground plane with noise color variation and a
// reference grid.
type GroundRenderer struct {
	size   float32
	tiles  int
	colors []rl.Color
}

// NewGroundRenderer builds the tile palette for a square ground of the given
// edge length.
func NewGroundRenderer(size float32, seed int64) *GroundRenderer {
	tiles := int(size / groundTile)
	if tiles < 1 {
		tiles = 1
	}
	g := &GroundRenderer{
		size:   float32(tiles) * groundTile,
		tiles:  tiles,
		colors: make([]rl.Color, tiles*tiles),
	}

	src := noise.NewPerlin(seed)
	for z := 0; z < tiles; z++ {
		for x := 0; x < tiles; x++ {
			n := float32(src.Eval3(float64(x)*0.21, float64(z)*0.21, 0.5))
			spot := float32(src.Eval3(float64(x)*0.9+300, float64(z)*0.9+300, 0.5))

			gray := 46 + n*14
			if (x+z)%2 == 0 {
				gray += 4
			}
			if spot > 0.35 {
				gray *= 0.85
			}
			g.colors[z*tiles+x] = rl.Color{
				R: uint8(gray),
				G: uint8(gray + 6),
				B: uint8(gray + 12),
				A: 255,
			}
		}
	}
	return g
}

// Size returns the ground edge length after snapping to whole tiles.
func (g *GroundRenderer) Size() float32 { return g.size }

// Draw renders the ground. Must be called inside BeginMode3D.
func (g *GroundRenderer) Draw() {
	half := g.size / 2
	tile := rl.NewVector2(groundTile, groundTile)
	for z := 0; z < g.tiles; z++ {
		for x := 0; x < g.tiles; x++ {
			center := rl.NewVector3(
				-half+(float32(x)+0.5)*groundTile,
				0,
				-half+(float32(z)+0.5)*groundTile,
			)
			rl.DrawPlane(center, tile, g.colors[z*g.tiles+x])
		}
	}
	rl.DrawGrid(int32(g.tiles), groundTile)
}
