// Package storage persists level results and player settings in SQLite
// using the pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one recorded level result.
type ScoreEntry struct {
	ID        int64
	LevelID   string
	Score     int
	Stars     int
	CreatedAt time.Time
}

// DefaultPath returns the database location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "slingcritter.db"
	}
	return filepath.Join(dir, "slingcritter", "scores.db")
}

// Open creates or opens the database at dbPath, creating parent
// directories and running migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level ON results(level_id, score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordScore stores a finished attempt and returns its id.
func (s *Store) RecordScore(levelID string, score, stars int) (int64, error) {
	if s == nil {
		return 0, nil
	}
	res, err := s.db.Exec(
		"INSERT INTO results (level_id, score, stars) VALUES (?, ?, ?)",
		levelID, score, stars,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestScore returns the highest score for the level, or 0 if none.
func (s *Store) BestScore(levelID string) (int, error) {
	if s == nil {
		return 0, nil
	}
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM results WHERE level_id = ?", levelID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return int(best.Int64), nil
}

// BestStars returns the most stars earned on the level.
func (s *Store) BestStars(levelID string) (int, error) {
	if s == nil {
		return 0, nil
	}
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(stars) FROM results WHERE level_id = ?", levelID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query stars: %w", err)
	}
	return int(best.Int64), nil
}

// TopScores returns up to limit results for the level, best first.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, score, stars, created_at
		 FROM results
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Score, &e.Stars, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Setting reads a stored setting. ok is false when it was never set.
func (s *Store) Setting(key string) (value string, ok bool, err error) {
	if s == nil {
		return "", false, nil
	}
	err = s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores or replaces a setting.
func (s *Store) SetSetting(key, value string) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}
