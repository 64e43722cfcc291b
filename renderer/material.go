// Package renderer draws the ground and the ring effect snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ringfx/camera"
)

// Material is the palette shared by every ring effect.
type Material struct {
	Swarm      rl.Color   // Body base color
	Volume     rl.Color   // Sparse regions of the noise field
	VolumeCore rl.Color   // Dense regions of the noise field
	Ambient    float32    // Minimum light on faces turned away from Light
	Light      mgl32.Vec3 // Unit direction towards the light
}

// DefaultMaterial returns the demo palette.
func DefaultMaterial() Material {
	return Material{
		Swarm:      rl.Color{R: 120, G: 200, B: 255, A: 255},
		Volume:     rl.Color{R: 90, G: 60, B: 200, A: 255},
		VolumeCore: rl.Color{R: 255, G: 170, B: 240, A: 255},
		Ambient:    0.35,
		Light:      mgl32.Vec3{0.4, 0.8, 0.3}.Normalize(),
	}
}

// lit scales the RGB channels of c by k in [0,1] and sets alpha from fade.
func lit(c rl.Color, k, fade float32) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: uint8(float32(c.A) * clamp01(fade)),
	}
}

// blend interpolates between two colors.
func blend(a, b rl.Color, t float32) rl.Color {
	t = clamp01(t)
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}

// Camera3D converts the first-person camera into a raylib camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(c.Position),
		Target:     vec(c.Target()),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
