// Package store persists training runs and their accepted window rows to
// SQLite so a run's inputs can be inspected after the fact.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/wearlab-data/stress.report/internal/dataset"
)

// TrainingRun is one trainer invocation: its configuration, row counts, and
// (once fitting finishes) the serialized artifact.
type TrainingRun struct {
	RunID        string          `json:"run_id"`
	Source       string          `json:"source"`
	WindowSecs   float64         `json:"window_s"`
	StrideSecs   float64         `json:"stride_s"`
	WeightMode   string          `json:"weight_mode"`
	RowCount     int             `json:"row_count"`
	BaselineRows int             `json:"baseline_rows"`
	StressRows   int             `json:"stress_rows"`
	ArtifactJSON json.RawMessage `json:"artifact_json,omitempty"`
	CreatedAtNs  int64           `json:"created_at_ns"`
}

// TrainingStore provides persistence for training runs and window rows.
type TrainingStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path and applies any pending
// schema migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*TrainingStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// A single connection keeps ":memory:" stores coherent; the pool would
	// otherwise hand each connection its own empty database.
	db.SetMaxOpenConns(1)
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &TrainingStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *TrainingStore) Close() error {
	return s.db.Close()
}

// InsertRun records a new training run. An empty RunID gets a fresh UUID.
func (s *TrainingStore) InsertRun(run *TrainingRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAtNs == 0 {
		run.CreatedAtNs = time.Now().UnixNano()
	}

	query := `
		INSERT INTO training_runs (
			run_id, source, window_s, stride_s, weight_mode,
			row_count, baseline_rows, stress_rows, artifact_json, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		run.RunID,
		run.Source,
		run.WindowSecs,
		run.StrideSecs,
		run.WeightMode,
		run.RowCount,
		run.BaselineRows,
		run.StressRows,
		nullableJSON(run.ArtifactJSON),
		run.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// SetArtifact attaches the serialized artifact to a finished run.
func (s *TrainingStore) SetArtifact(runID string, artifactJSON []byte) error {
	res, err := s.db.Exec(
		`UPDATE training_runs SET artifact_json = ? WHERE run_id = ?`,
		string(artifactJSON), runID,
	)
	if err != nil {
		return fmt.Errorf("set artifact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set artifact: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("set artifact: run %s not found", runID)
	}
	return nil
}

// InsertRows stores the accepted window rows of a run in one transaction.
func (s *TrainingStore) InsertRows(runID string, rows []dataset.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO window_rows (
			run_id, subject, t0_secs, t1_secs,
			hr_mean_bpm, hrv_sdnn_ms, wrist_temp_c, acc_rms_g, label
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		f := r.Features
		if _, err := stmt.Exec(
			runID, r.Subject, r.T0, r.T1,
			f.HRMeanBPM, f.HRVSDNNms, f.WristTempC, f.AccRMSG, r.Label,
		); err != nil {
			return fmt.Errorf("insert row for %s [%.0f,%.0f): %w", r.Subject, r.T0, r.T1, err)
		}
	}
	return tx.Commit()
}

// GetRun retrieves a run by ID.
func (s *TrainingStore) GetRun(runID string) (*TrainingRun, error) {
	query := `
		SELECT run_id, source, window_s, stride_s, weight_mode,
		       row_count, baseline_rows, stress_rows, artifact_json, created_at_ns
		FROM training_runs
		WHERE run_id = ?
	`
	var run TrainingRun
	var artifact sql.NullString
	err := s.db.QueryRow(query, runID).Scan(
		&run.RunID,
		&run.Source,
		&run.WindowSecs,
		&run.StrideSecs,
		&run.WeightMode,
		&run.RowCount,
		&run.BaselineRows,
		&run.StressRows,
		&artifact,
		&run.CreatedAtNs,
	)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	if artifact.Valid {
		run.ArtifactJSON = json.RawMessage(artifact.String)
	}
	return &run, nil
}

// CountRows returns the number of stored window rows for a run.
func (s *TrainingStore) CountRows(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM window_rows WHERE run_id = ?`, runID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
