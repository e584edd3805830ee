package videoquiz

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// RunLog is a sqlite-backed telemetry store for pipeline runs. It records
// stage outcomes and fallback usage, never quiz content. A nil *RunLog is
// valid everywhere and disables telemetry.
type RunLog struct {
	db *sql.DB
}

// Run represents one pipeline run in the store.
type Run struct {
	ID        string    `json:"id"`
	MediaFile string    `json:"media_file"`
	StartedAt time.Time `json:"started_at"`
	Status    string    `json:"status"` // "running", "done", "failed"
	Error     string    `json:"error,omitempty"`
}

// RunStage represents one recorded stage of a run.
type RunStage struct {
	ID         string    `json:"id"`
	RunID      string    `json:"run_id"`
	Stage      string    `json:"stage"`
	Status     string    `json:"status"` // "ok", "failed", "fallback"
	Detail     string    `json:"detail"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// OpenRunLog opens the telemetry database, creating tables as needed.
func OpenRunLog(dbPath string) (*RunLog, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping run log: %w", err)
	}

	rl := &RunLog{db: db}
	if err := rl.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return rl, nil
}

// Close closes the database connection.
func (rl *RunLog) Close() error {
	return rl.db.Close()
}

func (rl *RunLog) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			media_file TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'running',
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS run_stages (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			stage TEXT NOT NULL,
			status TEXT NOT NULL,
			detail TEXT,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
	}

	for _, query := range queries {
		if _, err := rl.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// StartRun records the beginning of a pipeline run.
func (rl *RunLog) StartRun(runID, mediaFile string) error {
	_, err := rl.db.Exec(
		"INSERT INTO runs (id, media_file, started_at, status) VALUES (?, ?, ?, 'running')",
		runID, mediaFile, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}
	return nil
}

// RecordStage records the outcome of one pipeline stage.
func (rl *RunLog) RecordStage(runID, stage, status, detail string, duration time.Duration) error {
	_, err := rl.db.Exec(
		"INSERT INTO run_stages (id, run_id, stage, status, detail, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		uuid.NewString(), runID, stage, status, detail, duration.Milliseconds(), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record stage: %w", err)
	}
	return nil
}

// FinishRun records the final status of a run.
func (rl *RunLog) FinishRun(runID, status, errMsg string) error {
	_, err := rl.db.Exec(
		"UPDATE runs SET status = ?, error = ? WHERE id = ?",
		status, errMsg, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	return nil
}

// GetRuns retrieves the most recent runs, optionally limited by count.
func (rl *RunLog) GetRuns(limit int) ([]Run, error) {
	query := "SELECT id, media_file, started_at, status, COALESCE(error, '') FROM runs ORDER BY started_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := rl.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.MediaFile, &run.StartedAt, &run.Status, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// GetRunStages retrieves all recorded stages for a run, in order.
func (rl *RunLog) GetRunStages(runID string) ([]RunStage, error) {
	rows, err := rl.db.Query(
		"SELECT id, run_id, stage, status, COALESCE(detail, ''), duration_ms, created_at FROM run_stages WHERE run_id = ? ORDER BY created_at",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run stages: %w", err)
	}
	defer rows.Close()

	var stages []RunStage
	for rows.Next() {
		var stage RunStage
		if err := rows.Scan(&stage.ID, &stage.RunID, &stage.Stage, &stage.Status, &stage.Detail, &stage.DurationMs, &stage.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run stage: %w", err)
		}
		stages = append(stages, stage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run stages: %w", err)
	}
	return stages, nil
}
