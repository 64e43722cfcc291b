package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one timed section of a frame.
type Phase int

const (
	PhaseController Phase = iota
	PhaseEffects
	PhaseSnapshot
	PhaseRender
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{"controller", "effects", "snapshot", "render", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists the frame phases in execution order.
var Phases = []Phase{PhaseController, PhaseEffects, PhaseSnapshot, PhaseRender, PhaseTelemetry}

// FrameLoad is the effect workload observed when a frame closes.
type FrameLoad struct {
	Active  int
	Pending int
	Fired   int // Effects started during the frame, direct or from the queue
}

type frameSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
	load   FrameLoad
}

// PerfCollector keeps a ring of recent frames: phase timings plus the
// effect load each frame carried.
type PerfCollector struct {
	frames []frameSample
	next   int
	filled int

	cur        frameSample
	frameStart time.Time
	phase      Phase
	phaseStart time.Time
	inPhase    bool

	lastSpawned int

	lastPresent   time.Time
	frameInterval time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over the last window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		frames: make([]frameSample, window),
		now:    time.Now,
	}
}

// StartTick opens a new frame sample.
func (p *PerfCollector) StartTick() {
	p.cur = frameSample{}
	p.frameStart = p.now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < phaseCount {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the frame and records it. e may be nil when no engine
// load should be attached.
func (p *PerfCollector) EndTick(e Engine) {
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.frameStart)

	if e != nil {
		spawned := e.Stats().Spawned
		p.cur.load = FrameLoad{
			Active:  e.ActiveCount(),
			Pending: e.PendingCount(),
			Fired:   spawned - p.lastSpawned,
		}
		p.lastSpawned = spawned
	}

	p.frames[p.next] = p.cur
	p.next = (p.next + 1) % len(p.frames)
	if p.filled < len(p.frames) {
		p.filled++
	}
}

// RecordFrame marks a presented frame; the interval between calls gives FPS.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.frameInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats aggregates the frames currently in the window.
type PerfStats struct {
	Frames   int
	AvgFrame time.Duration
	MaxFrame time.Duration
	PhaseAvg [phaseCount]time.Duration

	AvgActive   float64
	PeakActive  int
	AvgPending  float64
	PeakPending int
	Fired       int

	FrameInterval time.Duration
	FPS           float64
}

// Share returns the fraction of the average frame spent in ph.
func (s PerfStats) Share(ph Phase) float64 {
	if s.AvgFrame <= 0 || ph < 0 || ph >= phaseCount {
		return 0
	}
	return float64(s.PhaseAvg[ph]) / float64(s.AvgFrame)
}

// EffectCost is the average effects-phase time per active effect.
func (s PerfStats) EffectCost() time.Duration {
	if s.AvgActive <= 0 {
		return 0
	}
	return time.Duration(float64(s.PhaseAvg[PhaseEffects]) / s.AvgActive)
}

// Stats computes aggregates over the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Frames: p.filled, FrameInterval: p.frameInterval}
	if p.frameInterval > 0 {
		s.FPS = float64(time.Second) / float64(p.frameInterval)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phases [phaseCount]time.Duration
	var active, pending int
	for _, f := range p.frames[:p.filled] {
		total += f.total
		s.MaxFrame = max(s.MaxFrame, f.total)
		for i, d := range f.phases {
			phases[i] += d
		}
		active += f.load.Active
		pending += f.load.Pending
		s.PeakActive = max(s.PeakActive, f.load.Active)
		s.PeakPending = max(s.PeakPending, f.load.Pending)
		s.Fired += f.load.Fired
	}

	n := time.Duration(p.filled)
	s.AvgFrame = total / n
	for i := range phases {
		s.PhaseAvg[i] = phases[i] / n
	}
	s.AvgActive = float64(active) / float64(p.filled)
	s.AvgPending = float64(pending) / float64(p.filled)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("avg_active", s.AvgActive),
		slog.Int("peak_active", s.PeakActive),
		slog.Int("fired", s.Fired),
		slog.Int64("effect_ns", s.EffectCost().Nanoseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.Share(ph) * 100; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	FPS          float64 `csv:"fps"`
	ControllerUS int64   `csv:"controller_us"`
	EffectsUS    int64   `csv:"effects_us"`
	SnapshotUS   int64   `csv:"snapshot_us"`
	RenderUS     int64   `csv:"render_us"`
	TelemetryUS  int64   `csv:"telemetry_us"`
	AvgActive    float64 `csv:"avg_active"`
	PeakActive   int     `csv:"peak_active"`
	AvgPending   float64 `csv:"avg_pending"`
	Fired        int     `csv:"fired"`
	EffectNS     int64   `csv:"effect_ns"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		FPS:          s.FPS,
		ControllerUS: s.PhaseAvg[PhaseController].Microseconds(),
		EffectsUS:    s.PhaseAvg[PhaseEffects].Microseconds(),
		SnapshotUS:   s.PhaseAvg[PhaseSnapshot].Microseconds(),
		RenderUS:     s.PhaseAvg[PhaseRender].Microseconds(),
		TelemetryUS:  s.PhaseAvg[PhaseTelemetry].Microseconds(),
		AvgActive:    s.AvgActive,
		PeakActive:   s.PeakActive,
		AvgPending:   s.AvgPending,
		Fired:        s.Fired,
		EffectNS:     s.EffectCost().Nanoseconds(),
	}
}
