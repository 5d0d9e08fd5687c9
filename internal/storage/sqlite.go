// Package storage provides SQLite-based persistence for episode results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for episode records.
type Store struct {
	db *sql.DB
}

// EpisodeRecord is one finished (or truncated) episode.
type EpisodeRecord struct {
	ID          int64
	RunID       string // Groups the episodes of one run or session
	EnvID       string
	Agent       string
	Seed        int64
	Steps       int
	TotalReward float64
	FruitEaten  int
	SnakeLen    int
	EndReason   string // "wall", "self", "truncated", "closed"
	CreatedAt   time.Time
}

// EnvStats contains aggregated statistics for an environment.
type EnvStats struct {
	EnvID      string
	Episodes   int
	BestReturn float64
	AvgReturn  float64
	AvgSteps   float64
	MostFruit  int
	LastRun    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL DEFAULT '',
			env_id TEXT NOT NULL,
			agent TEXT NOT NULL,
			seed INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			total_reward REAL NOT NULL,
			fruit_eaten INTEGER NOT NULL DEFAULT 0,
			snake_len INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_env_id ON episodes(env_id);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(env_id, total_reward DESC);
		CREATE INDEX IF NOT EXISTS idx_episodes_run_id ON episodes(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveEpisode records a finished episode.
// Returns the ID of the inserted record.
func (s *Store) SaveEpisode(rec EpisodeRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (run_id, env_id, agent, seed, steps, total_reward, fruit_eaten, snake_len, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.EnvID,
		rec.Agent,
		rec.Seed,
		rec.Steps,
		rec.TotalReward,
		rec.FruitEaten,
		rec.SnakeLen,
		rec.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const episodeColumns = `id, run_id, env_id, agent, seed, steps, total_reward, fruit_eaten, snake_len, end_reason, created_at`

// TopEpisodes retrieves the N best episodes for the given env.
// Results are ordered by total reward, then by fruit eaten, descending.
func (s *Store) TopEpisodes(envID string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE env_id = ?
		 ORDER BY total_reward DESC, fruit_eaten DESC, id ASC
		 LIMIT ?`,
		envID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	return scanEpisodes(rows)
}

// RecentEpisodes retrieves the most recent episodes across all envs.
func (s *Store) RecentEpisodes(limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent episodes: %w", err)
	}
	defer rows.Close()

	return scanEpisodes(rows)
}

// scanEpisodes reads every row into records.
func scanEpisodes(rows *sql.Rows) ([]EpisodeRecord, error) {
	var records []EpisodeRecord
	for rows.Next() {
		var r EpisodeRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.EnvID,
			&r.Agent,
			&r.Seed,
			&r.Steps,
			&r.TotalReward,
			&r.FruitEaten,
			&r.SnakeLen,
			&r.EndReason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RunEpisodes retrieves every episode of one run in the order played.
func (s *Store) RunEpisodes(runID string) ([]EpisodeRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run episodes: %w", err)
	}
	defer rows.Close()

	return scanEpisodes(rows)
}

// BestReturn returns the highest episode return for the given env.
// ok is false if no episodes exist.
func (s *Store) BestReturn(envID string) (best float64, ok bool, err error) {
	var v sql.NullFloat64
	err = s.db.QueryRow(
		"SELECT MAX(total_reward) FROM episodes WHERE env_id = ?",
		envID,
	).Scan(&v)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best return: %w", err)
	}

	if !v.Valid {
		return 0, false, nil
	}
	return v.Float64, true, nil
}

// Stats retrieves aggregated statistics for a specific env.
func (s *Store) Stats(envID string) (*EnvStats, error) {
	stats := &EnvStats{EnvID: envID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(total_reward), 0), COALESCE(AVG(total_reward), 0),
		        COALESCE(AVG(steps), 0), COALESCE(MAX(fruit_eaten), 0)
		 FROM episodes WHERE env_id = ?`,
		envID,
	).Scan(&stats.Episodes, &stats.BestReturn, &stats.AvgReturn, &stats.AvgSteps, &stats.MostFruit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get env stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM episodes WHERE env_id = ? ORDER BY id DESC LIMIT 1`,
		envID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// ClearEpisodes deletes all episodes for the given env.
func (s *Store) ClearEpisodes(envID string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE env_id = ?", envID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// parseTime handles the datetime column arriving as time.Time or string.
func parseTime(v any) time.Time {
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
