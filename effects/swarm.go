package effects

import "math"

// Swarm is a ring of many small bodies sharing one fixed-capacity buffer.
type Swarm struct {
	instance

	bodies []Body // len == capacity, never reallocated
	active int
	jitter *Jitter
}

// NewSwarm allocates a swarm with room for capacity bodies and fills it
// from p so a freshly built instance is renderable.
func NewSwarm(capacity int, p Params, jitter *Jitter) *Swarm {
	if capacity < 0 {
		capacity = 0
	}
	if jitter == nil {
		jitter = NewJitter(nil)
	}
	s := &Swarm{
		bodies: make([]Body, capacity),
		jitter: jitter,
	}
	p.Sanitize()
	s.restart(p, IdentityPose(), 0)
	s.deactivate()
	return s
}

// Kind implements Effect.
func (s *Swarm) Kind() Kind { return KindSwarm }

// Capacity returns the fixed body buffer size.
func (s *Swarm) Capacity() int { return len(s.bodies) }

// ActiveCount returns the number of bodies used by the current life.
func (s *Swarm) ActiveCount() int { return s.active }

// Bodies returns the active prefix of the body buffer.
func (s *Swarm) Bodies() []Body { return s.bodies[:s.active] }

func (s *Swarm) restart(p Params, pose Pose, h Handle) {
	s.instance.restart(p, pose, h)
	// Requests beyond capacity shrink the ring instead of reallocating
	s.active = min(max(p.Count, 0), len(s.bodies))
	s.jitter.Fill(s.bodies[:s.active], p)
}

// Step implements Effect.
func (s *Swarm) Step(dt float32) {
	s.advance(dt)
}

// Snapshot implements Effect.
func (s *Swarm) Snapshot(snap *Snapshot) {
	*snap = Snapshot{Kind: KindSwarm}
	s.fillSnapshot(snap)
	snap.Bodies = s.bodies[:s.active]
}

func sincos(a float32) (float32, float32) {
	sin, cos := math.Sincos(float64(a))
	return float32(sin), float32(cos)
}
