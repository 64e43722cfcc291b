// Package noise builds the density volume that modulates volumetric rings.
//
// A Volume is a cubic grid of densities in [0, 1]: coherent noise remapped
// to [0, 1] and multiplied by a squared radial falloff, so values fade to
// zero towards the faces of the cube.
package noise

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Basis selects the underlying noise function.
type Basis string

const (
	BasisPerlin      Basis = "perlin"
	BasisOpenSimplex Basis = "opensimplex"
)

// ParseBasis converts a config name to a Basis.
func ParseBasis(s string) (Basis, error) {
	switch Basis(s) {
	case BasisPerlin, "":
		return BasisPerlin, nil
	case BasisOpenSimplex:
		return BasisOpenSimplex, nil
	}
	return "", fmt.Errorf("noise: unknown basis %q", s)
}

// Source is a 3D noise function returning values in roughly [-1, 1].
type Source interface {
	Eval3(x, y, z float64) float64
}

// NewSource returns the seeded generator for basis b.
func NewSource(b Basis, seed int64) Source {
	if b == BasisOpenSimplex {
		return opensimplex.New(seed)
	}
	return NewPerlin(seed)
}

// Builder describes a noise volume.
type Builder struct {
	Size      int     // Cells per axis
	Frequency float64 // Noise periods across the unit cube
	Seed      int64
	Basis     Basis
}

// Volume is an immutable Size³ density grid, x fastest.
type Volume struct {
	size    int
	density []float32
}

// Build fills a new volume. Size below 2 is raised to 2.
func (b Builder) Build() *Volume {
	n := max(b.Size, 2)
	src := NewSource(b.Basis, b.Seed)
	v := &Volume{size: n, density: make([]float32, n*n*n)}

	inv := 1 / float64(n-1)
	i := 0
	for z := 0; z < n; z++ {
		pz := float64(z) * inv
		for y := 0; y < n; y++ {
			py := float64(y) * inv
			for x := 0; x < n; x++ {
				px := float64(x) * inv
				v.density[i] = density(src, px, py, pz, b.Frequency)
				i++
			}
		}
	}
	return v
}

func density(src Source, px, py, pz, freq float64) float32 {
	n := clamp01(0.5 + 0.5*src.Eval3(px*freq, py*freq, pz*freq))

	dx, dy, dz := px-0.5, py-0.5, pz-0.5
	d := math.Sqrt(dx*dx+dy*dy+dz*dz) * 2
	falloff := clamp01(1 - d)
	return float32(n * falloff * falloff)
}

// Size returns the number of cells per axis.
func (v *Volume) Size() int { return v.size }

// Data returns the raw density grid. It must not be modified.
func (v *Volume) Data() []float32 { return v.density }

// At returns the density of cell (x, y, z). Coordinates are clamped to the grid.
func (v *Volume) At(x, y, z int) float32 {
	last := v.size - 1
	x = min(max(x, 0), last)
	y = min(max(y, 0), last)
	z = min(max(z, 0), last)
	return v.density[(z*v.size+y)*v.size+x]
}

// Sample trilinearly interpolates the density at normalized coordinates in
// [0, 1]. Values outside the cube are clamped to its faces.
func (v *Volume) Sample(u, w, t float32) float32 {
	scale := float32(v.size - 1)
	fx, fy, fz := clampF(u)*scale, clampF(w)*scale, clampF(t)*scale
	x0, y0, z0 := int(fx), int(fy), int(fz)
	tx, ty, tz := fx-float32(x0), fy-float32(y0), fz-float32(z0)

	c00 := lerp(v.At(x0, y0, z0), v.At(x0+1, y0, z0), tx)
	c10 := lerp(v.At(x0, y0+1, z0), v.At(x0+1, y0+1, z0), tx)
	c01 := lerp(v.At(x0, y0, z0+1), v.At(x0+1, y0, z0+1), tx)
	c11 := lerp(v.At(x0, y0+1, z0+1), v.At(x0+1, y0+1, z0+1), tx)
	return lerp(lerp(c00, c10, ty), lerp(c01, c11, ty), tz)
}

// Slice returns a copy of the z-th XY plane, row-major.
func (v *Volume) Slice(z int) []float32 {
	z = min(max(z, 0), v.size-1)
	plane := v.size * v.size
	out := make([]float32, plane)
	copy(out, v.density[z*plane:(z+1)*plane])
	return out
}

// Checksum returns the sum of all densities, for determinism checks.
func (v *Volume) Checksum() float64 {
	var sum float64
	for _, d := range v.density {
		sum += float64(d)
	}
	return sum
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}

func clampF(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
