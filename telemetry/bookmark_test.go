package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_EvictionPressure(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), Active: 5})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 900, Active: 24, Evicted: 6})
	if !hasBookmark(bookmarks, BookmarkEvictionPressure) {
		t.Error("expected eviction_pressure bookmark")
	}

	// Continued eviction does not re-trigger
	bookmarks = bd.Check(WindowStats{WindowEndTick: 1200, Active: 24, Evicted: 4})
	if hasBookmark(bookmarks, BookmarkEvictionPressure) {
		t.Error("eviction_pressure should only fire when eviction starts")
	}
}

func TestBookmarkDetector_QueueAndPool(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Dropped: 2, PoolGrowth: 3, Constructed: 21})
	if !hasBookmark(bookmarks, BookmarkQueueSaturated) {
		t.Error("expected queue_saturated bookmark")
	}
	if !hasBookmark(bookmarks, BookmarkPoolGrowth) {
		t.Error("expected pool_growth bookmark")
	}

	bookmarks = bd.Check(WindowStats{WindowEndTick: 600})
	if len(bookmarks) != 0 {
		t.Errorf("quiet window produced bookmarks: %v", bookmarks)
	}
}

func TestBookmarkDetector_SpawnBurst(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), Spawned: 6})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1500, Spawned: 30})
	if !hasBookmark(bookmarks, BookmarkSpawnBurst) {
		t.Error("expected spawn_burst bookmark")
	}
}

func TestBookmarkDetector_SteadyState(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int32(i * 300), Active: 10})
		if hasBookmark(bookmarks, BookmarkSteadyState) {
			fired++
			if i != 8 {
				t.Errorf("steady_state fired at window %d, want 8", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("steady_state fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_HistoryOrder(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := 0; i < 7; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i)})
	}
	h := bd.getHistory()
	if len(h) != 5 {
		t.Fatalf("history len = %d, want 5", len(h))
	}
	for i, w := range h {
		if w.WindowEndTick != int32(i+2) {
			t.Errorf("history[%d] = tick %d, want %d", i, w.WindowEndTick, i+2)
		}
	}
}
