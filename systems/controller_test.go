package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ringfx/components"
)

const testDT = float32(1.0 / 60)

type walkerWorld struct {
	world  *ecs.World
	mapper *ecs.Map5[components.Position, components.Velocity, components.Look, components.Body, components.Intent]
	posMap *ecs.Map1[components.Position]
	velMap *ecs.Map1[components.Velocity]
	bodMap *ecs.Map1[components.Body]
	inMap  *ecs.Map1[components.Intent]
	lookMp *ecs.Map1[components.Look]
	sys    *ControllerSystem
}

func testMovement() components.Movement {
	return components.Movement{
		WalkSpeed:    6,
		Acceleration: 40,
		Friction:     8,
		Gravity:      20,
		JumpSpeed:    7,
		Bound:        50,
	}
}

func newWalkerWorld() *walkerWorld {
	w := ecs.NewWorld()
	return &walkerWorld{
		world:  w,
		mapper: ecs.NewMap5[components.Position, components.Velocity, components.Look, components.Body, components.Intent](w),
		posMap: ecs.NewMap1[components.Position](w),
		velMap: ecs.NewMap1[components.Velocity](w),
		bodMap: ecs.NewMap1[components.Body](w),
		inMap:  ecs.NewMap1[components.Intent](w),
		lookMp: ecs.NewMap1[components.Look](w),
		sys:    NewControllerSystem(w, testMovement()),
	}
}

func (ww *walkerWorld) spawn(y float32) ecs.Entity {
	pos := components.Position{Y: y}
	vel := components.Velocity{}
	look := components.Look{}
	body := components.Body{EyeHeight: 1.7, Grounded: y == 0}
	in := components.Intent{}
	return ww.mapper.NewEntity(&pos, &vel, &look, &body, &in)
}

func (ww *walkerWorld) run(seconds float32) {
	for i := 0; i < int(seconds/testDT+0.5); i++ {
		ww.sys.Update(testDT)
	}
}

func TestControllerWalkForward(t *testing.T) {
	ww := newWalkerWorld()
	e := ww.spawn(0)
	ww.inMap.Get(e).Forward = 1

	ww.run(1)

	pos := ww.posMap.Get(e)
	vel := ww.velMap.Get(e)
	if pos.Z >= -4 {
		t.Errorf("expected to walk along -Z, got z=%f", pos.Z)
	}
	if math.Abs(float64(pos.X)) > 1e-4 {
		t.Errorf("unexpected sideways drift x=%f", pos.X)
	}
	if math.Abs(float64(vel.Vec().Len()-6)) > 1e-3 {
		t.Errorf("expected walk speed 6, got %f", vel.Vec().Len())
	}
}

func TestControllerFrictionStops(t *testing.T) {
	ww := newWalkerWorld()
	e := ww.spawn(0)
	*ww.velMap.Get(e) = components.Velocity{X: 5}

	ww.run(1)

	if v := ww.velMap.Get(e).X; v > 0.01 {
		t.Errorf("expected friction to stop the walker, got vx=%f", v)
	}
}

func TestControllerGravityLands(t *testing.T) {
	ww := newWalkerWorld()
	e := ww.spawn(5)

	ww.sys.Update(testDT)
	if ww.bodMap.Get(e).Grounded {
		t.Fatal("walker above ground should be airborne")
	}

	ww.run(2)
	pos := ww.posMap.Get(e)
	if pos.Y != 0 {
		t.Errorf("expected to land at y=0, got %f", pos.Y)
	}
	if !ww.bodMap.Get(e).Grounded {
		t.Error("expected grounded after landing")
	}
	if ww.velMap.Get(e).Y != 0 {
		t.Errorf("vertical velocity should be zeroed on landing, got %f", ww.velMap.Get(e).Y)
	}
}

func TestControllerJump(t *testing.T) {
	ww := newWalkerWorld()
	e := ww.spawn(0)
	ww.inMap.Get(e).Jump = true

	ww.sys.Update(testDT)
	if ww.posMap.Get(e).Y <= 0 {
		t.Fatal("jump should leave the ground")
	}
	if ww.inMap.Get(e).Jump {
		t.Error("jump request should be consumed")
	}

	// Apex of v²/2g = 1.225
	peak := float32(0)
	for i := 0; i < 120; i++ {
		if i < 20 {
			ww.inMap.Get(e).Jump = true // ignored while airborne
		}
		ww.sys.Update(testDT)
		peak = max(peak, ww.posMap.Get(e).Y)
	}
	if peak < 1.1 || peak > 1.4 {
		t.Errorf("jump apex = %f, want about 1.225", peak)
	}
	if ww.posMap.Get(e).Y != 0 || !ww.bodMap.Get(e).Grounded {
		t.Error("expected to have landed")
	}
}

func TestControllerLookClamp(t *testing.T) {
	ww := newWalkerWorld()
	e := ww.spawn(0)
	in := ww.inMap.Get(e)
	in.PitchDelta = 10
	in.YawDelta = 7

	ww.sys.Update(testDT)
	look := ww.lookMp.Get(e)
	if math.Abs(float64(look.Pitch)-maxPitch) > 1e-5 {
		t.Errorf("pitch = %f, want clamp %f", look.Pitch, maxPitch)
	}
	if look.Yaw < -math.Pi || look.Yaw >= math.Pi {
		t.Errorf("yaw %f not wrapped", look.Yaw)
	}
	if in := ww.inMap.Get(e); in.PitchDelta != 0 || in.YawDelta != 0 {
		t.Error("look deltas should be consumed")
	}
}

func TestControllerBound(t *testing.T) {
	ww := newWalkerWorld()
	e := ww.spawn(0)
	*ww.velMap.Get(e) = components.Velocity{X: 1e4}

	ww.sys.Update(testDT)
	if x := ww.posMap.Get(e).X; x != 50 {
		t.Errorf("x = %f, want clamped to 50", x)
	}
}

func TestEyePosition(t *testing.T) {
	eye := EyePosition(components.Position{X: 1, Y: 0.5, Z: -2}, components.Body{EyeHeight: 1.7})
	if eye.X() != 1 || math.Abs(float64(eye.Y()-2.2)) > 1e-6 || eye.Z() != -2 {
		t.Errorf("eye = %v", eye)
	}
}
