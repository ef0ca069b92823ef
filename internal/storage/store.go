// Package storage persists the best score of each game.
// Two backends are provided: a plain text file holding one integer, and a
// SQLite database using the pure-Go modernc.org/sqlite driver.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// HighScoreStore keeps a single best-score scalar per game.
// Implementations are safe for concurrent use.
type HighScoreStore interface {
	// HighScore returns the stored best score, or 0 if none was saved.
	HighScore(gameID string) (int, error)

	// SetHighScore stores score if it beats the current best.
	// Reports whether the stored value changed.
	SetHighScore(gameID string, score int) (bool, error)

	// Close releases the underlying resources.
	Close() error
}

// BestScore is one stored best score.
type BestScore struct {
	GameID    string
	Score     int
	UpdatedAt time.Time
}

// Lister is implemented by stores that can enumerate every saved best score.
type Lister interface {
	BestScores() ([]BestScore, error)
}

// Kind selects a HighScoreStore backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
)

// ErrUnknownKind is returned by Open for an unsupported backend name.
var ErrUnknownKind = errors.New("storage: unknown store kind")

// Open creates the store of the given kind at path.
func Open(kind Kind, path string) (HighScoreStore, error) {
	var (
		store HighScoreStore
		err   error
	)
	switch kind {
	case KindFile:
		var fs *FileStore
		if fs, err = OpenFile(path); err == nil {
			store = fs
		}
	case KindSQLite:
		var ss *SQLiteStore
		if ss, err = OpenSQLite(path); err == nil {
			store = ss
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return store, err
}

// DefaultPath returns the conventional location for a store of the given kind.
func DefaultPath(kind Kind) string {
	if kind == KindSQLite {
		return "~/.arcade/invaders.db"
	}
	return "~/.arcade/scoreboard"
}

// preparePath expands a leading ~ and creates the parent directories.
func preparePath(path string) (string, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return path, nil
}
