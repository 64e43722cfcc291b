// Package effects implements the transient ring effect engine: pooled swarm
// and volume instances, their per-frame aging, and delayed spawn sequencing.
//
// The engine is single-threaded. All methods must be called from the frame
// loop that owns the Manager.
package effects

import (
	"errors"
	"log/slog"
)

// ErrPendingFull is returned by SpawnAfter when the pending queue is at capacity.
var ErrPendingFull = errors.New("effects: pending spawn queue full")

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Defaults      Params
	Stages        []Stage
	MaxRings      int // Active effect limit; the oldest is evicted beyond it
	MaxPending    int // Pending request limit; 0 uses DefaultMaxPending, negative disables the queue
	SwarmCapacity int
	PrewarmSwarm  int
	PrewarmVolume int
	Rand          Rand         // Jitter source; nil uses math/rand
	Logger        *slog.Logger // Nil uses slog.Default()
	PoseSource    PoseSource   // Nil spawns at the identity pose unless Options.Pose is set
}

// DefaultMaxPending is the queue size used when ManagerConfig.MaxPending is zero.
const DefaultMaxPending = 32

// Stats holds cumulative manager counters.
type Stats struct {
	Spawned   int // Effects started
	Expired   int // Effects that died naturally and were reclaimed
	Evicted   int // Oldest effects released to honor MaxRings
	Cleared   int // Effects released by ClearAll
	Dropped   int // SpawnAfter requests rejected because the queue was full
	Cancelled int // Pending requests discarded by ClearAll
}

type pendingSpawn struct {
	delay float32
	opts  Options
}

// Manager owns the pools, the active list and the pending spawn queue.
type Manager struct {
	defaults Params
	stages   []Stage

	pools   [kindCount]*Pool
	active  []Effect
	pending []pendingSpawn

	maxRings   int
	maxPending int

	poseSource PoseSource
	nextHandle Handle
	stats      Stats
	logger     *slog.Logger
}

// NewManager creates a manager with prewarmed pools.
func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		stages:     append([]Stage(nil), cfg.Stages...),
		maxPending: cfg.MaxPending,
		poseSource: cfg.PoseSource,
		logger:     cfg.Logger,
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	switch {
	case m.maxPending == 0:
		m.maxPending = DefaultMaxPending
	case m.maxPending < 0:
		m.maxPending = 0
	}
	m.SetDefaults(cfg.Defaults)
	m.SetMaxRings(cfg.MaxRings)

	jitter := NewJitter(cfg.Rand)
	capacity := max(cfg.SwarmCapacity, 0)
	m.pools[KindSwarm] = NewPool(func() Effect {
		return NewSwarm(capacity, m.defaults, jitter)
	}, cfg.PrewarmSwarm)
	m.pools[KindVolume] = NewPool(func() Effect {
		return NewVolume(m.defaults)
	}, cfg.PrewarmVolume)

	m.active = make([]Effect, 0, m.maxRings)
	m.pending = make([]pendingSpawn, 0, m.maxPending)
	return m
}

// Defaults returns the manager-wide default parameters.
func (m *Manager) Defaults() Params { return m.defaults }

// SetDefaults replaces the default parameter table. Running effects keep
// the parameters they were spawned with.
func (m *Manager) SetDefaults(p Params) {
	p.Sanitize()
	m.defaults = p
}

// SetPoseSource sets the collaborator consulted for spawn poses.
func (m *Manager) SetPoseSource(src PoseSource) { m.poseSource = src }

// MaxRings returns the active effect limit.
func (m *Manager) MaxRings() int { return m.maxRings }

// SetMaxRings changes the active effect limit, evicting the oldest effects
// if the new limit is already exceeded. Values below 1 become 1.
func (m *Manager) SetMaxRings(n int) {
	m.maxRings = max(n, 1)
	for len(m.active) > m.maxRings {
		m.evictOldest()
	}
}

// ActiveCount returns the number of running effects.
func (m *Manager) ActiveCount() int { return len(m.active) }

// PendingCount returns the number of queued delayed spawns.
func (m *Manager) PendingCount() int { return len(m.pending) }

// FreeCount returns the number of pooled instances across all kinds.
func (m *Manager) FreeCount() int {
	n := 0
	for _, p := range m.pools {
		n += p.FreeCount()
	}
	return n
}

// Constructed returns the number of instances ever built across all kinds.
func (m *Manager) Constructed() int {
	n := 0
	for _, p := range m.pools {
		n += p.Constructed()
	}
	return n
}

// Pool returns the pool for kind k, or nil for an unknown kind.
func (m *Manager) Pool(k Kind) *Pool {
	if k >= kindCount {
		return nil
	}
	return m.pools[k]
}

// Stats returns the cumulative counters.
func (m *Manager) Stats() Stats { return m.stats }

// Spawn starts one effect now and returns its handle. If the active limit
// is reached the oldest effect is evicted first.
func (m *Manager) Spawn(opts Options) Handle {
	p := opts.Resolve(m.defaults)
	pose := m.spawnPose(opts)
	if p.SpawnDistance != 0 {
		pose.Position = pose.Position.Add(pose.Forward.Mul(p.SpawnDistance))
	}

	for len(m.active) >= m.maxRings {
		m.evictOldest()
	}

	e := m.pools[p.Kind].Acquire()
	m.nextHandle++
	e.restart(p, pose, m.nextHandle)
	m.active = append(m.active, e)
	m.stats.Spawned++
	return m.nextHandle
}

// SpawnAfter queues a spawn to fire once delay seconds of Update have
// elapsed. No instance is acquired until then.
func (m *Manager) SpawnAfter(delay float32, opts Options) error {
	if len(m.pending) >= m.maxPending {
		m.stats.Dropped++
		m.logger.Debug("dropped delayed spawn", "pending", len(m.pending), "max_pending", m.maxPending)
		return ErrPendingFull
	}
	if !(delay > 0) {
		delay = 0
	}
	m.pending = append(m.pending, pendingSpawn{delay: delay, opts: opts})
	return nil
}

// Update advances the simulation by dt seconds: due pending requests fire
// first (in queue order), then every active effect ages, including those
// just fired, and effects that died this tick go back to their pool.
func (m *Manager) Update(dt float32) {
	if !(dt > 0) {
		dt = 0
	}

	kept := 0
	for _, req := range m.pending {
		req.delay -= dt
		if req.delay <= 0 {
			m.Spawn(req.opts)
			continue
		}
		m.pending[kept] = req
		kept++
	}
	clear(m.pending[kept:])
	m.pending = m.pending[:kept]

	alive := 0
	for _, e := range m.active {
		e.Step(dt)
		if !e.Alive() {
			m.pools[e.Kind()].Release(e)
			m.stats.Expired++
			continue
		}
		m.active[alive] = e
		alive++
	}
	clear(m.active[alive:])
	m.active = m.active[:alive]
}

// ClearAll releases every active effect and discards pending requests.
func (m *Manager) ClearAll() {
	for _, e := range m.active {
		m.pools[e.Kind()].Release(e)
	}
	m.stats.Cleared += len(m.active)
	m.stats.Cancelled += len(m.pending)
	clear(m.active)
	m.active = m.active[:0]
	clear(m.pending)
	m.pending = m.pending[:0]
}

// Snapshots appends a snapshot of every active effect to dst, oldest first.
func (m *Manager) Snapshots(dst []Snapshot) []Snapshot {
	for _, e := range m.active {
		dst = append(dst, Snapshot{})
		e.Snapshot(&dst[len(dst)-1])
	}
	return dst
}

// Lookup returns the snapshot of the active effect with handle h.
func (m *Manager) Lookup(h Handle) (Snapshot, bool) {
	for _, e := range m.active {
		if e.Handle() == h {
			var s Snapshot
			e.Snapshot(&s)
			return s, true
		}
	}
	return Snapshot{}, false
}

func (m *Manager) spawnPose(opts Options) Pose {
	switch {
	case opts.Pose != nil:
		return *opts.Pose
	case m.poseSource != nil:
		return m.poseSource.Pose()
	}
	return IdentityPose()
}

func (m *Manager) evictOldest() {
	oldest := m.active[0]
	copy(m.active, m.active[1:])
	m.active[len(m.active)-1] = nil
	m.active = m.active[:len(m.active)-1]
	m.pools[oldest.Kind()].Release(oldest)
	m.stats.Evicted++
	m.logger.Debug("evicted oldest effect", "handle", uint64(oldest.Handle()), "max_rings", m.maxRings)
}
