package game

import (
	"log/slog"

	"github.com/pthm-cable/ringfx/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.effects, g.snaps)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes the current engine state as JSON. Without an explicit
// snapshot directory it goes under the output directory, if any.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snap := telemetry.NewSnapshot(g.tick, g.rngSeed, g.effects, g.snaps)
	snap.Bookmark = bookmark

	var (
		path string
		err  error
	)
	switch {
	case g.snapshotDir != "":
		path, err = telemetry.SaveSnapshot(snap, g.snapshotDir)
	case g.outputManager != nil:
		path, err = g.outputManager.WriteSnapshot(snap)
	default:
		g.setStatus("snapshot skipped: no -snapshot-dir or -output-dir")
		return
	}
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		g.setStatus("snapshot failed")
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
	g.setStatus("saved " + path)
}
