package effects

// Pool is a reusable store of effect instances of a single kind.
// An instance is either free (held here) or checked out, never both.
type Pool struct {
	free        []Effect
	constructed int
	newFn       func() Effect
}

// NewPool creates a pool that builds instances with newFn and prewarms it
// with prewarm free instances.
func NewPool(newFn func() Effect, prewarm int) *Pool {
	p := &Pool{
		free:  make([]Effect, 0, max(prewarm, 0)),
		newFn: newFn,
	}
	for i := 0; i < prewarm; i++ {
		e := p.construct()
		e.base().pooled = true
		p.free = append(p.free, e)
	}
	return p
}

// Acquire returns a free instance, constructing a new one if the pool is
// empty. It never fails.
func (p *Pool) Acquire() Effect {
	n := len(p.free)
	if n == 0 {
		return p.construct()
	}
	e := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	e.base().pooled = false
	return e
}

// Release makes e inert and returns it to the free set. Releasing an
// instance that is already pooled is a no-op.
func (p *Pool) Release(e Effect) {
	in := e.base()
	if in.pooled {
		return
	}
	in.deactivate()
	in.pooled = true
	p.free = append(p.free, e)
}

// FreeCount returns the number of instances held by the pool.
func (p *Pool) FreeCount() int { return len(p.free) }

// Constructed returns the number of instances this pool has ever built.
func (p *Pool) Constructed() int { return p.constructed }

func (p *Pool) construct() Effect {
	p.constructed++
	return p.newFn()
}
