// Package geometry provides the unit meshes used to draw ring bodies.
package geometry

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxDetail is the deepest subdivision level the cache will build.
const MaxDetail = 4

// Mesh is an indexed triangle mesh. Faces wind counter-clockwise when seen
// from outside.
type Mesh struct {
	Vertices []mgl32.Vec3
	Faces    [][3]uint32
}

// Icosphere returns a unit icosphere. Detail 0 is the icosahedron; each
// level splits every face into four and pushes new vertices onto the sphere.
func Icosphere(detail int) *Mesh {
	detail = min(max(detail, 0), MaxDetail)

	t := float32((1 + math.Sqrt(5)) / 2)
	m := &Mesh{
		Vertices: []mgl32.Vec3{
			{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
			{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
			{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
		},
		Faces: [][3]uint32{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	}
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Normalize()
	}

	for range detail {
		m.subdivide()
	}
	return m
}

func (m *Mesh) subdivide() {
	mid := make(map[[2]uint32]uint32, len(m.Faces)*3/2)
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{min(a, b), max(a, b)}
		if i, ok := mid[key]; ok {
			return i
		}
		p := m.Vertices[a].Add(m.Vertices[b]).Normalize()
		i := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, p)
		mid[key] = i
		return i
	}

	faces := make([][3]uint32, 0, len(m.Faces)*4)
	for _, f := range m.Faces {
		a := midpoint(f[0], f[1])
		b := midpoint(f[1], f[2])
		c := midpoint(f[2], f[0])
		faces = append(faces,
			[3]uint32{f[0], a, c},
			[3]uint32{f[1], b, a},
			[3]uint32{f[2], c, b},
			[3]uint32{a, b, c},
		)
	}
	m.Faces = faces
}

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// Cache memoizes one mesh per detail level.
type Cache struct {
	mu     sync.Mutex
	meshes [MaxDetail + 1]*Mesh
}

// Get returns the shared mesh for detail, building it on first use.
// Detail is clamped to [0, MaxDetail].
func (c *Cache) Get(detail int) *Mesh {
	detail = min(max(detail, 0), MaxDetail)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.meshes[detail] == nil {
		c.meshes[detail] = Icosphere(detail)
	}
	return c.meshes[detail]
}
