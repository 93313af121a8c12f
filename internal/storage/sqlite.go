// Package storage provides SQLite-based persistence for finished runs.
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

	"github.com/vovakirdan/schoolrun/internal/core"
)

// ErrInvalidRun is returned by SaveRun for records that cannot be stored.
var ErrInvalidRun = errors.New("storage: invalid run")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run.
type RunEntry struct {
	ID        int64
	GameID    string
	Outcome   core.Outcome
	Ticks     int    // simulated ticks from the first move to the outcome
	Detail    string // free-form, e.g. the death reason
	CreatedAt time.Time
}

// Seconds converts the run length to seconds at the given tick rate.
func (e RunEntry) Seconds(tickRate int) float64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	return float64(e.Ticks) / float64(tickRate)
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(game_id, outcome, ticks);
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

// SaveRun records a finished run and returns the ID of the inserted record.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	if e.GameID == "" || e.Outcome == core.OutcomeNone || e.Ticks < 0 {
		return 0, fmt.Errorf("%w: game %q outcome %q ticks %d", ErrInvalidRun, e.GameID, e.Outcome, e.Ticks)
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (game_id, outcome, ticks, detail) VALUES (?, ?, ?, ?)",
		e.GameID, string(e.Outcome), e.Ticks, e.Detail,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the fastest arrivals for the given game.
// Results are ordered by ticks ascending.
func (s *Store) BestRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT id, game_id, outcome, ticks, detail, created_at
		 FROM runs
		 WHERE game_id = ? AND outcome = ?
		 ORDER BY ticks ASC, id ASC
		 LIMIT ?`,
		gameID, string(core.OutcomeArrived), limit,
	)
}

// RecentRuns retrieves the latest runs of any outcome, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryRuns(
		`SELECT id, game_id, outcome, ticks, detail, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var outcome string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &outcome, &e.Ticks, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Outcome = core.Outcome(outcome)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTicks returns the fastest arrival for the given game.
// ok is false when the game has never been finished.
func (s *Store) BestTicks(gameID string) (ticks int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(ticks) FROM runs WHERE game_id = ? AND outcome = ?",
		gameID, string(core.OutcomeArrived),
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Runs       int
	Arrivals   int
	HitByCar   int
	Falls      int
	BestTicks  int // zero when Arrivals is zero
	AvgTicks   float64
	LastPlayed time.Time
}

const statsColumns = `game_id,
		COUNT(*),
		COALESCE(SUM(outcome = 'arrived'), 0),
		COALESCE(SUM(outcome = 'hit_by_car'), 0),
		COALESCE(SUM(outcome = 'fell'), 0),
		COALESCE(MIN(CASE WHEN outcome = 'arrived' THEN ticks END), 0),
		COALESCE(AVG(CASE WHEN outcome = 'arrived' THEN ticks END), 0),
		MAX(created_at)`

func scanStats(row interface{ Scan(...any) error }) (*GameStats, error) {
	var st GameStats
	var lastPlayed any
	if err := row.Scan(&st.GameID, &st.Runs, &st.Arrivals, &st.HitByCar, &st.Falls,
		&st.BestTicks, &st.AvgTicks, &lastPlayed); err != nil {
		return nil, err
	}
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	var runs int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE game_id = ?", gameID).Scan(&runs); err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if runs == 0 {
		return &GameStats{GameID: gameID}, nil
	}

	stats, err := scanStats(s.db.QueryRow(
		"SELECT "+statsColumns+" FROM runs WHERE game_id = ? GROUP BY game_id",
		gameID,
	))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query("SELECT " + statsColumns + " FROM runs GROUP BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.GameID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and the SQLite text format.
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
