package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// vecNear compares componentwise with an absolute tolerance.
func vecNear(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func newTestCamera() *Camera {
	return New(1280, 720, 60, mgl32.Vec3{0, 1.7, 0})
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	if !vecNear(cam.Forward(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("expected forward -Z, got %v", cam.Forward())
	}
	if !vecNear(cam.Right(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("expected right +X, got %v", cam.Right())
	}
	if !vecNear(cam.Up(), mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected up +Y, got %v", cam.Up())
	}
}

func TestForwardYawPitch(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		want       mgl32.Vec3
	}{
		{"left", math.Pi / 2, 0, mgl32.Vec3{-1, 0, 0}},
		{"behind", math.Pi, 0, mgl32.Vec3{0, 0, 1}},
		{"up", 0, math.Pi / 4, mgl32.Vec3{0, float32(math.Sqrt2 / 2), -float32(math.Sqrt2 / 2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newTestCamera()
			cam.Yaw, cam.Pitch = tt.yaw, tt.pitch
			if got := cam.Forward(); !vecNear(got, tt.want) {
				t.Errorf("forward = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPoseMatchesForward(t *testing.T) {
	cam := newTestCamera()
	cam.SetLook(0.7, -0.3)
	cam.Position = mgl32.Vec3{3, 2, -5}

	pose := cam.Pose()
	if !vecNear(pose.Forward, cam.Forward()) {
		t.Errorf("pose forward %v != camera forward %v", pose.Forward, cam.Forward())
	}
	if pose.Position != cam.Position {
		t.Errorf("pose position %v != %v", pose.Position, cam.Position)
	}

	// The pose is a copy
	cam.Rotate(1, 0)
	if vecNear(pose.Forward, cam.Forward()) {
		t.Error("pose should not follow later camera rotation")
	}
}

func TestPitchClamp(t *testing.T) {
	cam := newTestCamera()
	cam.Rotate(0, 10)
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.Pitch)
	}
	cam.Rotate(0, -20)
	if cam.Pitch != -cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", -cam.MaxPitch, cam.Pitch)
	}
}

func TestYawWraps(t *testing.T) {
	cam := newTestCamera()
	for i := 0; i < 100; i++ {
		cam.Rotate(1, 0)
	}
	if cam.Yaw < -math.Pi || cam.Yaw >= math.Pi {
		t.Errorf("yaw %f outside [-pi, pi)", cam.Yaw)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := newTestCamera()

	sx, sy, ok := cam.WorldToScreen(cam.Position.Add(cam.Forward().Mul(10)))
	if !ok {
		t.Fatal("point in front of the camera should project")
	}
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	// Right of the view axis lands right of center; above lands above
	sx, sy, _ = cam.WorldToScreen(cam.Position.Add(mgl32.Vec3{1, 1, -10}))
	if sx <= 640 || sy >= 360 {
		t.Errorf("expected upper-right quadrant, got (%f, %f)", sx, sy)
	}

	if _, _, ok := cam.WorldToScreen(cam.Position.Add(mgl32.Vec3{0, 0, 10})); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()

	if !cam.IsVisible(cam.Position.Add(mgl32.Vec3{0, 0, -20}), 1) {
		t.Error("point straight ahead should be visible")
	}
	if cam.IsVisible(cam.Position.Add(mgl32.Vec3{0, 0, 20}), 1) {
		t.Error("point behind should not be visible")
	}
	if !cam.IsVisible(cam.Position.Add(mgl32.Vec3{0, 0, 0.5}), 1) {
		t.Error("sphere containing the eye should be visible")
	}
	if cam.IsVisible(cam.Position.Add(mgl32.Vec3{50, 0, -1}), 1) {
		t.Error("point far to the side should not be visible")
	}
	if !cam.IsVisible(cam.Position.Add(mgl32.Vec3{50, 0, -1}), 49) {
		t.Error("large sphere overlapping the view should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.Position = mgl32.Vec3{9, 9, 9}
	cam.Rotate(1, 0.5)
	cam.Reset()

	if cam.Position != (mgl32.Vec3{0, 1.7, 0}) || cam.Yaw != 0 || cam.Pitch != 0 {
		t.Errorf("expected home pose, got %v yaw=%f pitch=%f", cam.Position, cam.Yaw, cam.Pitch)
	}
}
