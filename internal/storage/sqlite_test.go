package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSQLiteStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSQLiteStoreHighScoreNeverRegresses(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	score, err := store.HighScore("invaders")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("HighScore() on empty store = %d, expected 0", score)
	}

	steps := []struct {
		score    int
		changed  bool
		expected int
	}{
		{10, true, 10},
		{5, false, 10},
		{10, false, 10},
		{25, true, 25},
	}

	for _, step := range steps {
		changed, err := store.SetHighScore("invaders", step.score)
		if err != nil {
			t.Fatalf("SetHighScore(%d) failed: %v", step.score, err)
		}
		if changed != step.changed {
			t.Errorf("SetHighScore(%d) changed = %v, expected %v", step.score, changed, step.changed)
		}
		got, err := store.HighScore("invaders")
		if err != nil {
			t.Fatalf("HighScore() failed: %v", err)
		}
		if got != step.expected {
			t.Errorf("after SetHighScore(%d), HighScore() = %d, expected %d", step.score, got, step.expected)
		}
	}
}

func TestSQLiteStorePerGame(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SetHighScore("invaders", 40); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	if _, err := store.SetHighScore("other", 90); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}

	entries, err := store.BestScores()
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].GameID != "other" || entries[0].Score != 90 {
		t.Errorf("First entry = %+v, expected other/90", entries[0])
	}

	if err := store.ClearScore("other"); err != nil {
		t.Fatalf("ClearScore() failed: %v", err)
	}
	score, _ := store.HighScore("other")
	if score != 0 {
		t.Errorf("HighScore() after clear = %d, expected 0", score)
	}
}

func TestSQLiteStoreConcurrentWriters(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SetHighScore("invaders", score); err != nil {
				t.Errorf("SetHighScore(%d) failed: %v", score, err)
			}
		}(i)
	}
	wg.Wait()

	score, err := store.HighScore("invaders")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 20 {
		t.Errorf("HighScore() = %d, expected 20", score)
	}
}

func TestSQLiteStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
