// Package ledger records batch runs and per-workbook outcomes in SQLite.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct"

	_ "modernc.org/sqlite" // SQLite driver
)

// Table names for run tracking.
const (
	runsTable  = "evalstruct_runs"
	filesTable = "evalstruct_files"
)

// Run is one recorded batch run.
type Run struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  *time.Time
	InputDir    string
	FilesOK     int
	FilesFailed int
}

// FileRecord is one recorded workbook outcome.
type FileRecord struct {
	RunID      int64
	Input      string
	Output     string
	Sheets     int
	Members    int
	DurationMs int64
	Error      string
}

// Store is the run ledger. A Store opened with an empty path records nothing.
type Store struct {
	db    *sql.DB
	runID int64
}

var _ evalstruct.Recorder = &Store{} // Compile-time check

// Open opens or creates the ledger database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w", path, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to ledger database: %w", err)
	}
	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create ledger tables: %w", err)
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				started_at TEXT NOT NULL,
				finished_at TEXT,
				input_dir TEXT NOT NULL,
				files_ok INTEGER NOT NULL DEFAULT 0,
				files_failed INTEGER NOT NULL DEFAULT 0
			);`, runsTable)},
		{filesTable, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL REFERENCES %s(id),
				input TEXT NOT NULL,
				output TEXT,
				sheets INTEGER NOT NULL,
				members INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL,
				error TEXT
			);`, filesTable, runsTable)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// Enabled reports whether the store writes anything.
func (s *Store) Enabled() bool {
	return s.db != nil
}

// BeginRun starts a run; later RecordFile calls are attached to it.
func (s *Store) BeginRun(inputDir string, started time.Time) (int64, error) {
	if s.db == nil {
		return 0, nil
	}
	res, err := s.db.Exec(
		fmt.Sprintf(`INSERT INTO %s (started_at, input_dir) VALUES (?, ?)`, runsTable),
		started.UTC().Format(time.RFC3339Nano), inputDir)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.runID = id
	return id, nil
}

// RecordFile implements evalstruct.Recorder.
func (s *Store) RecordFile(o evalstruct.FileOutcome) error {
	if s.db == nil {
		return nil
	}
	if s.runID == 0 {
		return errors.New("no run started")
	}
	var errText sql.NullString
	if o.Err != nil {
		errText = sql.NullString{String: o.Err.Error(), Valid: true}
	}
	_, err := s.db.Exec(
		fmt.Sprintf(`INSERT INTO %s (run_id, input, output, sheets, members, duration_ms, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, filesTable),
		s.runID, o.Input, o.Output, o.Sheets, o.Members, o.Duration.Milliseconds(), errText)
	return err
}

// EndRun closes the current run with its totals.
func (s *Store) EndRun(finished time.Time, ok, failed int) error {
	if s.db == nil {
		return nil
	}
	if s.runID == 0 {
		return errors.New("no run started")
	}
	_, err := s.db.Exec(
		fmt.Sprintf(`UPDATE %s SET finished_at = ?, files_ok = ?, files_failed = ? WHERE id = ?`, runsTable),
		finished.UTC().Format(time.RFC3339Nano), ok, failed, s.runID)
	return err
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if s.db == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT id, started_at, finished_at, input_dir, files_ok, files_failed
			FROM %s ORDER BY id DESC LIMIT ?`, runsTable), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		var finished sql.NullString
		if err := rows.Scan(&r.ID, &started, &finished, &r.InputDir, &r.FilesOK, &r.FilesFailed); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, err
		}
		if finished.Valid {
			t, err := time.Parse(time.RFC3339Nano, finished.String)
			if err != nil {
				return nil, err
			}
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the workbook outcomes of a run in insertion order.
func (s *Store) Files(runID int64) ([]FileRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT run_id, input, output, sheets, members, duration_ms, error
			FROM %s WHERE run_id = ? ORDER BY rowid`, filesTable), runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		var out, errText sql.NullString
		if err := rows.Scan(&f.RunID, &f.Input, &out, &f.Sheets, &f.Members, &f.DurationMs, &errText); err != nil {
			return nil, err
		}
		f.Output = out.String
		f.Error = errText.String
		files = append(files, f)
	}
	return files, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
