// Package sqlitesink is a record.Sink backed by a SQLite database via
// modernc.org/sqlite, the pure-Go driver used for exactly this kind of
// append log in the retrieval pack's adaptive-state controller
// (internal/state/store.go).
//
// Accepted and Step vectors are stored as JSON arrays rather than one
// column per dimension: unlike csvsink, which is opened once per fixed
// dimensionality, a sqlitesink is meant to be long-lived and potentially
// shared across sampler runs of differing D, so a fixed column count is
// the wrong shape for its schema.
package sqlitesink

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/opensample/mhchain/record"
)

const schema = `
CREATE TABLE IF NOT EXISTS samples (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT NOT NULL,
	seq            INTEGER NOT NULL,
	log_likelihood REAL NOT NULL,
	accepted_flag  INTEGER NOT NULL,
	accepted_json  TEXT NOT NULL,
	step_json      TEXT
);
CREATE INDEX IF NOT EXISTS samples_run_id_idx ON samples (run_id, seq);
`

// Sink appends Records as rows in a "samples" table. Not safe for
// concurrent use (spec.md §5); open one Sink per sampler goroutine if
// ever running several chains against the same database file.
type Sink struct {
	db     *sql.DB
	insert *sql.Stmt
}

// Open opens (creating if necessary) the SQLite database at path and
// migrates the samples schema.
//
// Stage 1 (Prepare): open the database, set WAL journaling for safer
// concurrent reads while a run is in progress.
// Stage 2 (Execute): run the schema migration.
// Stage 3 (Finalize): prepare the insert statement once, reused by every
// Append call.
func Open(path string) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitesink: open %q: %w", path, err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("sqlitesink: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlitesink: migrate: %w", err)
	}
	stmt, err := db.Prepare(`
		INSERT INTO samples (run_id, seq, log_likelihood, accepted_flag, accepted_json, step_json)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("sqlitesink: prepare insert: %w", err)
	}
	return &Sink{db: db, insert: stmt}, nil
}

// Append inserts r as one row. Accepted and Step are marshaled to JSON
// arrays; Step is stored as SQL NULL when r.Step is nil (no trial-step
// recording for this record).
func (s *Sink) Append(r record.Record) error {
	accJSON, err := json.Marshal(r.Accepted)
	if err != nil {
		return fmt.Errorf("sqlitesink: marshal accepted: %w", err)
	}

	var stepJSON sql.NullString
	if r.Step != nil {
		b, err := json.Marshal(r.Step)
		if err != nil {
			return fmt.Errorf("sqlitesink: marshal step: %w", err)
		}
		stepJSON = sql.NullString{String: string(b), Valid: true}
	}

	acceptedFlag := 0
	if r.AcceptedFlag {
		acceptedFlag = 1
	}

	if _, err := s.insert.Exec(r.RunID, r.Seq, r.LogLikelihood, acceptedFlag, string(accJSON), stepJSON); err != nil {
		return fmt.Errorf("sqlitesink: insert seq %d: %w", r.Seq, err)
	}
	return nil
}

// Close releases the prepared statement and closes the database handle.
func (s *Sink) Close() error {
	if err := s.insert.Close(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("sqlitesink: close statement: %w", err)
	}
	return s.db.Close()
}

var _ record.Sink = (*Sink)(nil)
