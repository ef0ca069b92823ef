package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps one best score per game in a SQLite database.
// Used by the SSH server, where many sessions share the same store.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath, err := preparePath(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Serialize writers; SQLite allows one at a time anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// HighScore returns the best score for the given game.
// Returns 0 if no score exists.
func (s *SQLiteStore) HighScore(gameID string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// SetHighScore upserts the score when it beats the stored one.
func (s *SQLiteStore) SetHighScore(gameID string, score int) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO best_scores (game_id, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE
		 SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		gameID, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save high score: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// BestScores returns every stored best score, highest first.
func (s *SQLiteStore) BestScores() ([]BestScore, error) {
	rows, err := s.db.Query(
		`SELECT game_id, score, updated_at
		 FROM best_scores
		 ORDER BY score DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []BestScore
	for rows.Next() {
		var e BestScore
		var updatedAt any
		if err := rows.Scan(&e.GameID, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTimestamp(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScore deletes the stored best score for the given game.
func (s *SQLiteStore) ClearScore(gameID string) error {
	_, err := s.db.Exec("DELETE FROM best_scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear score: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var (
	_ HighScoreStore = (*SQLiteStore)(nil)
	_ Lister         = (*SQLiteStore)(nil)
)
