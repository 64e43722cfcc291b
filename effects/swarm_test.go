package effects

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSwarmCountClampedToCapacity(t *testing.T) {
	p := testDefaults()
	s := NewSwarm(80, p, NewJitter(rand.New(rand.NewSource(1))))
	buf := &s.bodies[0]

	p.Count = s.Capacity() + 50
	s.restart(p, IdentityPose(), 1)

	if s.ActiveCount() != 80 {
		t.Errorf("active count = %d, want 80", s.ActiveCount())
	}
	if len(s.Bodies()) != 80 {
		t.Errorf("bodies len = %d, want 80", len(s.Bodies()))
	}
	if &s.bodies[0] != buf {
		t.Error("body buffer was reallocated")
	}

	// Shrinks and grows across restarts without reallocating
	p.Count = 10
	s.restart(p, IdentityPose(), 2)
	if s.ActiveCount() != 10 {
		t.Errorf("active count = %d, want 10", s.ActiveCount())
	}
	p.Count = 60
	s.restart(p, IdentityPose(), 3)
	if s.ActiveCount() != 60 || &s.bodies[0] != buf {
		t.Errorf("active count = %d, want 60 in the same buffer", s.ActiveCount())
	}
}

func TestSwarmLifetime(t *testing.T) {
	p := testDefaults()
	p.Life = 1
	s := NewSwarm(16, p, nil)
	s.restart(p, IdentityPose(), 1)

	for i := 0; i < 3; i++ {
		s.Step(0.25)
		if !s.Alive() {
			t.Fatalf("died early at age %v", s.Age())
		}
	}
	s.Step(0.25)
	if s.Alive() {
		t.Errorf("still alive at age %v with life 1", s.Age())
	}
}

func TestSwarmMovesAlongForward(t *testing.T) {
	p := testDefaults()
	p.MoveSpeed = 2
	s := NewSwarm(8, p, nil)
	s.restart(p, IdentityPose(), 1)
	s.Step(0.5)

	var snap Snapshot
	s.Snapshot(&snap)
	want := mgl32.Vec3{0, 0, -1}
	if snap.Pose.Position.Sub(want).Len() > 1e-5 {
		t.Errorf("position = %v, want %v", snap.Pose.Position, want)
	}
}

func TestBodyTransformOnRing(t *testing.T) {
	p := testDefaults()
	p.RadialJitter, p.VerticalJitter = 0, 0
	s := NewSwarm(12, p, NewJitter(rand.New(rand.NewSource(3))))
	p.Count = 12
	s.restart(p, IdentityPose(), 1)
	s.Step(0.5)

	var snap Snapshot
	s.Snapshot(&snap)
	for i := range snap.Bodies {
		pos, _, scale := snap.BodyTransform(i)
		if d := math.Abs(float64(pos.Len() - snap.Radius)); d > 1e-4 {
			t.Errorf("body %d at distance %v from center, want %v", i, pos.Len(), snap.Radius)
		}
		if pos.Z() != 0 {
			t.Errorf("body %d left the ring plane: z=%v", i, pos.Z())
		}
		if scale != snap.Bodies[i].Scale {
			t.Errorf("body %d scale = %v", i, scale)
		}
	}
}
