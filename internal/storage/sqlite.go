// Package storage provides SQLite-based persistence for played runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// A run is journaled as its starting parameters (seed, board size,
// difficulty, gameplay settings) plus every accepted direction change with the tick it was
// accepted on. That is enough to re-simulate the run exactly.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/config"
)

// ErrRunNotFound is returned for an unknown run ID.
var ErrRunNotFound = errors.New("storage: run not found")

// Outcomes recorded for a run.
const (
	OutcomeInProgress = "in_progress"
	OutcomeCollision  = "collision"
	OutcomeBoardFull  = "board_full"
	OutcomeAbandoned  = "abandoned" // Left to the menu or quit mid-run
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one journaled game.
type Run struct {
	ID         string
	Difficulty string
	Seed       int64
	Columns    int
	Rows       int
	Score      int
	Ticks      uint64
	Outcome    string
	Gameplay   *config.GameplayConfig // nil for runs journaled without it
	CreatedAt  time.Time
	FinishedAt time.Time // Zero while in progress
}

// Event is a direction change accepted before step Tick+1.
type Event struct {
	RunID     string
	Tick      uint64
	Direction string
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
	// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY
	// between the game loop and the CLI readers of the same process.
	db.SetMaxOpenConns(1)

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
			id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			grid_columns INTEGER NOT NULL,
			grid_rows INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			initial_length INTEGER,
			score_per_food INTEGER,
			spawn_ratio REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			direction TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_run_events_run ON run_events(run_id, id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.addMissingColumns("runs", map[string]string{
		"initial_length": "INTEGER",
		"score_per_food": "INTEGER",
		"spawn_ratio":    "REAL",
	})
}

// addMissingColumns upgrades tables created by older versions.
func (s *Store) addMissingColumns(table string, columns map[string]string) error {
	rows, err := s.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		have[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for name, typ := range columns {
		if have[name] {
			continue
		}
		if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, name, typ)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun journals the start of a run and returns its ID. A fresh UUID is
// assigned when r.ID is empty.
func (s *Store) CreateRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Outcome == "" {
		r.Outcome = OutcomeInProgress
	}

	var initialLength, scorePerFood sql.NullInt64
	var spawnRatio sql.NullFloat64
	if g := r.Gameplay; g != nil {
		initialLength = sql.NullInt64{Int64: int64(g.InitialLength), Valid: true}
		scorePerFood = sql.NullInt64{Int64: int64(g.ScorePerFood), Valid: true}
		spawnRatio = sql.NullFloat64{Float64: g.ExhaustiveSpawnRatio, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, difficulty, seed, grid_columns, grid_rows, score, ticks, outcome,
		                   initial_length, score_per_food, spawn_ratio)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Difficulty, r.Seed, r.Columns, r.Rows, r.Score, int64(r.Ticks), r.Outcome,
		initialLength, scorePerFood, spawnRatio,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create run: %w", err)
	}
	return r.ID, nil
}

// AppendEvent records a direction change accepted while the run had
// executed tick steps.
func (s *Store) AppendEvent(runID string, tick uint64, direction string) error {
	res, err := s.db.Exec(
		`INSERT INTO run_events (run_id, tick, direction)
		 SELECT ?, ?, ? WHERE EXISTS (SELECT 1 FROM runs WHERE id = ?)`,
		runID, int64(tick), direction, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append event: %w", err)
	}
	return expectRow(res, runID)
}

// FinishRun stores the final score, step count and outcome of a run.
func (s *Store) FinishRun(runID string, score int, ticks uint64, outcome string) error {
	res, err := s.db.Exec(
		`UPDATE runs
		 SET score = ?, ticks = ?, outcome = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		score, int64(ticks), outcome, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	return expectRow(res, runID)
}

// Run retrieves a run by ID.
func (s *Store) Run(id string) (Run, error) {
	row := s.db.QueryRow(
		`SELECT id, difficulty, seed, grid_columns, grid_rows, score, ticks, outcome,
		        initial_length, score_per_food, spawn_ratio, created_at, finished_at
		 FROM runs
		 WHERE id = ?`,
		id,
	)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// Events retrieves the direction changes of a run in the order they were
// recorded.
func (s *Store) Events(runID string) ([]Event, error) {
	if _, err := s.Run(runID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT run_id, tick, direction
		 FROM run_events
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var tick int64
		if err := rows.Scan(&e.RunID, &tick, &e.Direction); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Tick = uint64(tick)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// RecentRuns retrieves the most recently started runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, seed, grid_columns, grid_rows, score, ticks, outcome,
		        initial_length, score_per_food, spawn_ratio, created_at, finished_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and its events.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_events WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if err := expectRow(res, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var ticks int64
	var initialLength, scorePerFood sql.NullInt64
	var spawnRatio sql.NullFloat64
	var createdAt, finishedAt any
	if err := sc.Scan(
		&r.ID,
		&r.Difficulty,
		&r.Seed,
		&r.Columns,
		&r.Rows,
		&r.Score,
		&ticks,
		&r.Outcome,
		&initialLength,
		&scorePerFood,
		&spawnRatio,
		&createdAt,
		&finishedAt,
	); err != nil {
		return Run{}, err
	}
	r.Ticks = uint64(ticks)
	if initialLength.Valid && scorePerFood.Valid && spawnRatio.Valid {
		r.Gameplay = &config.GameplayConfig{
			InitialLength:        int(initialLength.Int64),
			ScorePerFood:         int(scorePerFood.Int64),
			ExhaustiveSpawnRatio: spawnRatio.Float64,
		}
	}
	r.CreatedAt = parseTime(createdAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes; NULL yields the
// zero time.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func expectRow(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
