package integrity

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// LogEntry is one validation record from the integrity log
type LogEntry struct {
	Status      string
	ValidatedAt string
	Notes       string
}

// Log is a read-only view over the SQLite integrity log maintained by the
// upstream ingest tooling. The triage pipeline only ever queries it.
type Log struct {
	db *sql.DB
}

// OpenLog opens the integrity log at path. A missing file is not an error:
// it returns (nil, nil) and the verifier degrades gracefully.
func OpenLog(path string) (*Log, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat integrity log: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open integrity log: %w", err)
	}
	return &Log{db: db}, nil
}

// Lookup returns the most recent validation entry for a hash, or nil when
// the log has no record of it.
func (l *Log) Lookup(hash string) (*LogEntry, error) {
	row := l.db.QueryRow(`
		SELECT status, validation_date, COALESCE(notes, '')
		FROM integrity_validation
		WHERE file_hash = ?
		ORDER BY validation_date DESC
		LIMIT 1`, hash)

	var entry LogEntry
	if err := row.Scan(&entry.Status, &entry.ValidatedAt, &entry.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query integrity log: %w", err)
	}
	return &entry, nil
}

// Close closes the underlying database
func (l *Log) Close() error {
	return l.db.Close()
}
