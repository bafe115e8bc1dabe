package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
)

// Run statuses
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Store keeps traversal runs and the collections they fetched in DuckDB
type Store struct {
	db   *sql.DB
	path string
}

// Run is one traversal
type Run struct {
	ID            string
	PresetName    string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Status        string
	Error         string
	SnapshotCount int
}

// Scope holds the parent identifiers a collection was listed under
type Scope struct {
	AccountID     string
	WebPropertyID string
	ProfileID     string
}

// Snapshot is one collection response captured during a run
type Snapshot struct {
	RunID      string
	Seq        int
	Collection string
	Scope      Scope
	ItemCount  int
	Payload    json.RawMessage
	FetchedAt  time.Time
}

// Open opens or creates the archive database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initializeTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive tables: %w", err)
	}

	return store, nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initializeTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id VARCHAR PRIMARY KEY,
			preset_name VARCHAR,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP,
			status VARCHAR NOT NULL,
			error TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			run_id VARCHAR NOT NULL,
			seq INTEGER NOT NULL,
			collection VARCHAR NOT NULL,  -- 'accounts', 'webproperties', 'profiles', 'goals', 'segments'
			account_id VARCHAR,
			web_property_id VARCHAR,
			profile_id VARCHAR,
			item_count INTEGER NOT NULL,
			payload TEXT NOT NULL,        -- JSON-encoded collection response
			fetched_at TIMESTAMP NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// StartRun records a new run and returns its id
func (s *Store) StartRun(ctx context.Context, presetName string) (string, error) {
	runID := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, preset_name, started_at, status)
		VALUES (?, ?, ?, ?)
	`, runID, presetName, time.Now().UTC(), StatusRunning)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	return runID, nil
}

// FinishRun marks a run succeeded, or failed with runErr
func (s *Store) FinishRun(ctx context.Context, runID string, runErr error) error {
	status, message := StatusSucceeded, ""
	if runErr != nil {
		status, message = StatusFailed, runErr.Error()
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, status = ?, error = ?
		WHERE run_id = ?
	`, time.Now().UTC(), status, message, runID)
	return err
}

// RecordSnapshot stores one collection response under the run
func (s *Store) RecordSnapshot(ctx context.Context, runID string, seq int, collection string, scope Scope, itemCount int, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", collection, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots
		(run_id, seq, collection, account_id, web_property_id, profile_id, item_count, payload, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, seq, collection, scope.AccountID, scope.WebPropertyID, scope.ProfileID,
		itemCount, string(data), time.Now().UTC())

	return err
}

// ListRuns returns the most recent runs first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.preset_name, r.started_at, r.finished_at, r.status, r.error,
		       (SELECT COUNT(*) FROM snapshots sn WHERE sn.run_id = r.run_id) AS snapshot_count
		FROM runs r
		ORDER BY r.started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetRun returns a single run, or an error if it does not exist
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.run_id, r.preset_name, r.started_at, r.finished_at, r.status, r.error,
		       (SELECT COUNT(*) FROM snapshots sn WHERE sn.run_id = r.run_id) AS snapshot_count
		FROM runs r
		WHERE r.run_id = ?
	`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		presetName sql.NullString
		finishedAt sql.NullTime
		message    sql.NullString
		count      int64
	)

	if err := row.Scan(&run.ID, &presetName, &run.StartedAt, &finishedAt, &run.Status, &message, &count); err != nil {
		return nil, err
	}

	run.PresetName = presetName.String
	run.Error = message.String
	run.SnapshotCount = int(count)
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

// Snapshots returns a run's snapshots in fetch order
func (s *Store) Snapshots(ctx context.Context, runID string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, collection, account_id, web_property_id, profile_id,
		       item_count, payload, fetched_at
		FROM snapshots
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var (
			snap                                Snapshot
			accountID, webPropertyID, profileID sql.NullString
			payload                             string
		)
		err := rows.Scan(&snap.RunID, &snap.Seq, &snap.Collection,
			&accountID, &webPropertyID, &profileID,
			&snap.ItemCount, &payload, &snap.FetchedAt)
		if err != nil {
			return nil, err
		}
		snap.Scope = Scope{
			AccountID:     accountID.String,
			WebPropertyID: webPropertyID.String,
			ProfileID:     profileID.String,
		}
		snap.Payload = json.RawMessage(payload)
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// CleanupOlderThan removes runs started before cutoff with their snapshots
func (s *Store) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	cutoff = cutoff.UTC()

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE run_id IN (SELECT run_id FROM runs WHERE started_at < ?)
	`, cutoff); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	deleted, _ := result.RowsAffected()
	return int(deleted), nil
}
