// internal/eventlog/eventlog.go
package eventlog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tamzrod/phototrap/internal/persist"
)

// schema.sql holds the artifact table. Every statement is idempotent.
//
//go:embed schema.sql
var schemaSQL string

// Entry is one saved artifact as stored.
type Entry struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Kind       string    `json:"kind"`
	Path       string    `json:"path"`
	Frames     int       `json:"frames"`
	Start      time.Time `json:"start"`
	Closed     time.Time `json:"closed"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Log indexes flushed artifacts in SQLite.
type Log struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Log, error) {
	if path == "" {
		return nil, errors.New("eventlog: path required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open %s: %w", path, err)
	}
	// single writer; avoids SQLITE_BUSY between the flush worker and readers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("eventlog: schema: %w", err)
	}
	return &Log{db: db, now: time.Now}, nil
}

// Record implements persist.Index.
func (l *Log) Record(ctx context.Context, a persist.Artifact) error {
	const q = `
		INSERT INTO artifacts (id, session_id, kind, path, frames, started_ns, closed_ns, recorded_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := l.db.ExecContext(ctx, q,
		uuid.NewString(),
		a.SessionID,
		string(a.Kind),
		a.Path,
		a.Frames,
		a.Start.UnixNano(),
		a.Closed.UnixNano(),
		l.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("eventlog: insert %s: %w", a.Path, err)
	}
	return nil
}

// Recent returns up to limit entries, newest close time first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
		SELECT id, session_id, kind, path, frames, started_ns, closed_ns, recorded_ns
		FROM artifacts
		ORDER BY closed_ns DESC
		LIMIT ?
	`
	rows, err := l.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("eventlog: query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var startNs, closedNs, recNs int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Path, &e.Frames, &startNs, &closedNs, &recNs); err != nil {
			return nil, fmt.Errorf("eventlog: scan: %w", err)
		}
		e.Start = time.Unix(0, startNs)
		e.Closed = time.Unix(0, closedNs)
		e.RecordedAt = time.Unix(0, recNs)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (l *Log) Close() error {
	return l.db.Close()
}
