package effects

import "testing"

func TestPoolPrewarmAndFallback(t *testing.T) {
	built := 0
	p := NewPool(func() Effect {
		built++
		return NewVolume(testDefaults())
	}, 2)

	if p.FreeCount() != 2 || p.Constructed() != 2 {
		t.Fatalf("after prewarm free=%d constructed=%d, want 2/2", p.FreeCount(), p.Constructed())
	}

	a := p.Acquire()
	b := p.Acquire()
	c := p.Acquire() // exhausted: constructs instead of failing
	if a == nil || b == nil || c == nil {
		t.Fatal("Acquire returned nil")
	}
	if p.Constructed() != 3 || built != 3 {
		t.Errorf("constructed = %d, want 3", p.Constructed())
	}
	if p.FreeCount() != 0 {
		t.Errorf("free = %d, want 0", p.FreeCount())
	}

	p.Release(c)
	if p.FreeCount() != 1 {
		t.Errorf("free after release = %d, want 1", p.FreeCount())
	}
	if p.Acquire() != c {
		t.Error("expected the released instance to be reused")
	}
}

func TestPoolReleaseIdempotent(t *testing.T) {
	p := NewPool(func() Effect { return NewVolume(testDefaults()) }, 0)
	e := p.Acquire()
	e.restart(testDefaults(), IdentityPose(), 1)

	p.Release(e)
	p.Release(e)
	if p.FreeCount() != 1 {
		t.Errorf("double release left %d free instances, want 1", p.FreeCount())
	}
	if e.Alive() {
		t.Error("released instance should be inert")
	}
	if e.base().visible {
		t.Error("released instance should not be visible")
	}
}
