// Package journal records conversion runs in a local SQLite database.
//
// The journal answers "what did I convert, from what source, and when"
// without keeping the documents themselves; outputs live on disk and in
// the conversion cache. The pure Go SQLite driver is used by default; the
// cgo_sqlite build tag switches to mattn/go-sqlite3.
package journal

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input       TEXT NOT NULL,
	input_hash  TEXT NOT NULL,
	output      TEXT NOT NULL,
	pages       INTEGER NOT NULL,
	lines       INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run is one recorded conversion.
type Run struct {
	ID        string
	Input     string
	InputHash string
	Output    string
	Pages     int
	Lines     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Journal is an open run journal.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record inserts one run. A missing ID gets a fresh UUID; a zero
// CreatedAt gets the current time.
func (j *Journal) Record(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := j.db.Exec(
		`INSERT INTO runs (id, input, input_hash, output, pages, lines, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.InputHash, run.Output,
		run.Pages, run.Lines, run.Duration.Milliseconds(),
		run.CreatedAt.Format(time.RFC3339),
	)
	return run, err
}

// List returns the most recent runs, newest first. limit <= 0 means all.
func (j *Journal) List(limit int) ([]Run, error) {
	query := `SELECT id, input, input_hash, output, pages, lines, duration_ms, created_at
	          FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Input, &r.InputHash, &r.Output,
			&r.Pages, &r.Lines, &durationMS, &createdAt); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
