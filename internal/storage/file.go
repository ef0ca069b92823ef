package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps a best score as a decimal integer in a text file.
// It holds exactly one value, so the game ID arguments are ignored.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile prepares a file store at path. The file itself is created on the
// first successful SetHighScore.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: empty score file path")
	}
	resolved, err := preparePath(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: resolved}, nil
}

// Path returns the resolved file location.
func (f *FileStore) Path() string {
	return f.path
}

// HighScore returns the stored score. A missing file reads as 0.
func (f *FileStore) HighScore(string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) read() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read score file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt score file %s: %w", f.path, err)
	}
	return score, nil
}

// SetHighScore overwrites the file only when score exceeds the stored value.
func (f *FileStore) SetHighScore(_ string, score int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return false, err
	}
	if score <= current {
		return false, nil
	}

	// Write to a sibling temp file and rename so readers never see a torn value
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".scoreboard-*")
	if err != nil {
		return false, fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(score)); err != nil {
		tmp.Close()
		return false, fmt.Errorf("storage: cannot write score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("storage: cannot write score: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return false, fmt.Errorf("storage: cannot replace score file: %w", err)
	}
	return true, nil
}

// BestScores reports the single stored score under gameID "invaders".
func (f *FileStore) BestScores() ([]BestScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	score, err := f.read()
	if err != nil {
		return nil, err
	}
	entry := BestScore{GameID: "invaders", Score: score}
	if info, err := os.Stat(f.path); err == nil {
		entry.UpdatedAt = info.ModTime()
	}
	return []BestScore{entry}, nil
}

// Close is a no-op; the file is not held open.
func (f *FileStore) Close() error {
	return nil
}

var (
	_ HighScoreStore = (*FileStore)(nil)
	_ Lister         = (*FileStore)(nil)
)
