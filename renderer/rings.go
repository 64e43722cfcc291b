package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/ringfx/camera"
	"github.com/pthm-cable/ringfx/effects"
	"github.com/pthm-cable/ringfx/geometry"
	"github.com/pthm-cable/ringfx/noise"
)

const (
	volumeSegments = 64 // Points around the ring
	volumeSlices   = 10 // Circles around the tube
)

// DrawStats counts what the last Draw call submitted.
type DrawStats struct {
	Effects   int
	Bodies    int
	Culled    int
	Triangles int
	Lines     int
}

// RingRenderer draws effect snapshots. Swarm bodies are icosphere meshes;
// volumes are stacks of circles around the tube displaced by the noise field.
type RingRenderer struct {
	meshes   *geometry.Cache
	volume   *noise.Cache
	material Material
	stats    DrawStats
}

// NewRingRenderer creates a renderer sharing the given caches.
func NewRingRenderer(meshes *geometry.Cache, volume *noise.Cache, material Material) *RingRenderer {
	return &RingRenderer{
		meshes:   meshes,
		volume:   volume,
		material: material,
	}
}

// Material returns the active palette.
func (r *RingRenderer) Material() Material { return r.material }

// Stats returns the counters from the last Draw.
func (r *RingRenderer) Stats() DrawStats { return r.stats }

// Draw renders all snapshots. Must be called inside BeginMode3D.
func (r *RingRenderer) Draw(cam *camera.Camera, snaps []effects.Snapshot) {
	r.stats = DrawStats{}
	for i := range snaps {
		s := &snaps[i]
		if !s.Visible || s.Fade <= 0 {
			continue
		}
		r.stats.Effects++
		switch s.Kind {
		case effects.KindSwarm:
			r.drawSwarm(cam, s)
		case effects.KindVolume:
			r.drawVolume(cam, s)
		}
	}
}

func (r *RingRenderer) drawSwarm(cam *camera.Camera, s *effects.Snapshot) {
	mesh := r.meshes.Get(s.Detail)
	m := r.material

	for i := range s.Bodies {
		pos, rot, scale := s.BodyTransform(i)
		if !cam.IsVisible(pos, scale) {
			r.stats.Culled++
			continue
		}
		r.stats.Bodies++

		for f := range mesh.Faces {
			a, b, c := mesh.Triangle(f)
			n := rot.Rotate(a.Add(b).Add(c).Normalize())
			k := m.Ambient + (1-m.Ambient)*max(0, n.Dot(m.Light))

			rl.DrawTriangle3D(
				vec(pos.Add(rot.Rotate(a.Mul(scale)))),
				vec(pos.Add(rot.Rotate(b.Mul(scale)))),
				vec(pos.Add(rot.Rotate(c.Mul(scale)))),
				lit(m.Swarm, k, s.Fade),
			)
		}
		r.stats.Triangles += len(mesh.Faces)
	}
}

func (r *RingRenderer) drawVolume(cam *camera.Camera, s *effects.Snapshot) {
	if s.VolumeScale <= 0 {
		return
	}
	major := s.MajorRadiusNormalized * s.VolumeScale
	if !cam.IsVisible(s.Pose.Position, major+s.TubeRadius*2) {
		r.stats.Culled++
		return
	}

	field := r.volume.Volume()
	m := r.material
	inv := 1 / s.VolumeScale

	for j := 0; j < volumeSlices; j++ {
		sp, cp := sincos(2 * math.Pi * float32(j) / volumeSlices)
		ringR := major + s.TubeRadius*cp
		z := s.TubeRadius * sp
		t := 0.5 + z*inv

		var prev mgl32.Vec3
		for k := 0; k <= volumeSegments; k++ {
			st, ct := sincos(2 * math.Pi * float32(k) / volumeSegments)
			d := field.Sample(0.5+ringR*inv*ct, 0.5+ringR*inv*st, t)

			rr := ringR * (1 + s.NoiseStrength*(d-0.5))
			p := s.Pose.Position.Add(s.Pose.Orientation.Rotate(mgl32.Vec3{ct * rr, st * rr, z}))
			if k > 0 {
				c := blend(m.Volume, m.VolumeCore, d)
				rl.DrawLine3D(vec(prev), vec(p), lit(c, 1, s.Fade*(0.35+0.65*d)))
				r.stats.Lines++
			}
			prev = p
		}
	}
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}
