package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{LevelID: "intro", Player: "ann", Ticks: 600, TickRate: 60}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.BestRuns("intro", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestStoreSaveAndBestRuns(t *testing.T) {
	store := openTemp(t)

	runs := []Run{
		{LevelID: "intro", Player: "ann", Ticks: 900, TickRate: 60, Coins: 3},
		{LevelID: "intro", Player: "bob", Ticks: 600, TickRate: 60, Coins: 5},
		{LevelID: "intro", Player: "cy", Ticks: 1100, TickRate: 120, Coins: 4}, // 9.17s
		{LevelID: "gaps", Player: "ann", Ticks: 300, TickRate: 60},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns("intro", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(best))
	}

	// Ordered by wall duration, not raw ticks
	expected := []string{"cy", "bob", "ann"}
	for i, name := range expected {
		if best[i].Player != name {
			t.Errorf("best[%d].Player = %q, expected %q", i, best[i].Player, name)
		}
	}
	if best[1].Duration() != 10*time.Second {
		t.Errorf("bob Duration() = %v, expected 10s", best[1].Duration())
	}
	if best[1].Coins != 5 {
		t.Errorf("bob Coins = %d, expected 5", best[1].Coins)
	}

	limited, err := store.BestRuns("intro", 2)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestStoreSaveRunValidation(t *testing.T) {
	store := openTemp(t)

	if _, err := store.SaveRun(Run{Player: "ann", Ticks: 10, TickRate: 60}); err == nil {
		t.Error("Expected error for run without level")
	}
	if _, err := store.SaveRun(Run{LevelID: "intro", Ticks: 10}); err == nil {
		t.Error("Expected error for run without tick rate")
	}
}

func TestStorePlayerBest(t *testing.T) {
	store := openTemp(t)

	none, err := store.PlayerBest("intro", "ann")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if none != nil {
		t.Errorf("Expected nil for no runs, got %+v", none)
	}

	store.SaveRun(Run{LevelID: "intro", Player: "ann", Ticks: 900, TickRate: 60})
	store.SaveRun(Run{LevelID: "intro", Player: "ann", Ticks: 700, TickRate: 60, Deaths: 2})
	store.SaveRun(Run{LevelID: "intro", Player: "bob", Ticks: 100, TickRate: 60})

	best, err := store.PlayerBest("intro", "ann")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if best == nil || best.Ticks != 700 {
		t.Fatalf("PlayerBest() = %+v, expected the 700 tick run", best)
	}
	if best.Deaths != 2 {
		t.Errorf("Deaths = %d, expected 2", best.Deaths)
	}
}

func TestStoreLevelStatsAndClear(t *testing.T) {
	store := openTemp(t)

	stats, err := store.LevelStats("intro")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.Best != 0 {
		t.Errorf("empty stats = %+v, expected zero", stats)
	}

	store.SaveRun(Run{LevelID: "intro", Player: "ann", Ticks: 600, TickRate: 60, Coins: 2})
	store.SaveRun(Run{LevelID: "intro", Player: "bob", Ticks: 1200, TickRate: 60, Coins: 4, Skipped: 30})

	stats, err = store.LevelStats("intro")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.Best != 10*time.Second {
		t.Errorf("Best = %v, expected 10s", stats.Best)
	}
	if stats.AvgCoins != 3 {
		t.Errorf("AvgCoins = %v, expected 3", stats.AvgCoins)
	}

	if err := store.ClearRuns("intro"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.BestRuns("intro", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}
