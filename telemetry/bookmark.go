package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkEvictionPressure BookmarkType = "eviction_pressure"
	BookmarkQueueSaturated   BookmarkType = "queue_saturated"
	BookmarkPoolGrowth       BookmarkType = "pool_growth"
	BookmarkSpawnBurst       BookmarkType = "spawn_burst"
	BookmarkSteadyState      BookmarkType = "steady_state"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags windows where the engine hit a limit or changed
// behavior, so runs can be tuned (pool prewarm, max_rings, max_pending).
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	steadyWindows int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady state detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkEvictionPressure,
		bd.checkQueueSaturated,
		bd.checkPoolGrowth,
		bd.checkSpawnBurst,
		bd.checkSteadyState,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns recorded windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

// Eviction starts: the previous window evicted nothing, this one did.
func (bd *BookmarkDetector) checkEvictionPressure(stats WindowStats) *Bookmark {
	if stats.Evicted == 0 {
		return nil
	}
	history := bd.getHistory()
	if len(history) > 0 && history[len(history)-1].Evicted > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkEvictionPressure,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Evicted %d effects with %d active at window end", stats.Evicted, stats.Active),
	}
}

func (bd *BookmarkDetector) checkQueueSaturated(stats WindowStats) *Bookmark {
	if stats.Dropped == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkQueueSaturated,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Dropped %d delayed spawns (%d pending)", stats.Dropped, stats.Pending),
	}
}

func (bd *BookmarkDetector) checkPoolGrowth(stats WindowStats) *Bookmark {
	if stats.PoolGrowth <= 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPoolGrowth,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Pools constructed %d instances, %d total", stats.PoolGrowth, stats.Constructed),
	}
}

// Spawn burst: spawns > 2x rolling average.
func (bd *BookmarkDetector) checkSpawnBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Spawned
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Spawned) > avg*2 && stats.Spawned >= 10 {
		return &Bookmark{
			Type:        BookmarkSpawnBurst,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Spawned %d effects, %.1fx average (%.1f)", stats.Spawned, float64(stats.Spawned)/avg, avg),
		}
	}
	return nil
}

// Steady state: active count with CV < 20% over the last 4 windows,
// sustained for 5 windows. Triggers once per streak.
func (bd *BookmarkDetector) checkSteadyState(stats WindowStats) *Bookmark {
	if stats.Active == 0 {
		bd.steadyWindows = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}
	recent := history[len(history)-4:]

	var sum float64
	for _, h := range recent {
		sum += float64(h.Active)
	}
	mean := sum / 4

	var variance float64
	for _, h := range recent {
		d := float64(h.Active) - mean
		variance += d * d
	}
	variance /= 4

	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.steadyWindows++
	} else {
		bd.steadyWindows = 0
	}

	if bd.steadyWindows == 5 {
		return &Bookmark{
			Type:        BookmarkSteadyState,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Steady load around %.0f active effects over 5+ windows", mean),
		}
	}
	return nil
}
