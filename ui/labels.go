package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfx/camera"
	"github.com/pthm-cable/ringfx/effects"
)

// DrawEffectLabels writes each effect's handle and age at its screen position.
// Must be called outside BeginMode3D.
func DrawEffectLabels(cam *camera.Camera, snaps []effects.Snapshot) {
	for i := range snaps {
		s := &snaps[i]
		if !cam.IsVisible(s.Pose.Position, s.Radius) {
			continue
		}
		sx, sy, ok := cam.WorldToScreen(s.Pose.Position)
		if !ok {
			continue
		}
		text := fmt.Sprintf("#%d %s %.1f/%.1fs", s.Handle, s.Kind, s.Age, s.Life)
		rl.DrawText(text, int32(sx)+4, int32(sy)-6, 12, rl.Fade(rl.White, 0.4+0.6*s.Fade))
	}
}

// DrawEffectBounds outlines each ring's current and end radius in its own
// plane. Must be called inside BeginMode3D.
func DrawEffectBounds(snaps []effects.Snapshot) {
	for i := range snaps {
		s := &snaps[i]
		axis, angle := axisAngle(s.Pose)
		center := rl.NewVector3(s.Pose.Position.X(), s.Pose.Position.Y(), s.Pose.Position.Z())
		rl.DrawCircle3D(center, s.Radius, axis, angle, rl.Green)
		rl.DrawCircle3D(center, s.EndRadius, axis, angle, rl.Fade(rl.Gray, 0.5))
	}
}

// axisAngle converts the pose rotation into raylib's axis + degrees form.
func axisAngle(p effects.Pose) (rl.Vector3, float32) {
	q := p.Orientation.Normalize()
	w := q.W
	if w > 1 {
		w = 1
	}
	if w < -1 {
		w = -1
	}
	half := acos(w)
	s := sin(half)
	if s < 1e-6 {
		return rl.NewVector3(0, 0, 1), 0
	}
	v := q.V.Mul(1 / s)
	return rl.NewVector3(v.X(), v.Y(), v.Z()), 2 * half * 180 / pi
}
