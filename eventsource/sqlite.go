package eventsource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a durable Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed event store at the
// given path. Use ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps :memory: databases coherent and matches
	// the engine's single-writer model.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
	PRAGMA journal_mode = WAL;

	CREATE TABLE IF NOT EXISTS events (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL,
		stream_id  TEXT NOT NULL,
		version    INTEGER NOT NULL,
		type       TEXT NOT NULL,
		data       TEXT,
		created_at DATETIME NOT NULL,
		UNIQUE (stream_id, version)
	);

	CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream_id, version);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append adds events to a stream with an optimistic version check.
func (s *SQLiteStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	current, err := streamVersionTx(ctx, tx, streamID)
	if err != nil {
		return -1, err
	}
	if expectedVersion != current {
		return current, ErrConcurrencyConflict
	}

	version := current
	for i, event := range events {
		event.StreamID = streamID
		event.Version = expectedVersion + 1 + i

		var data any
		if len(event.Data) > 0 {
			data = string(event.Data)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (id, stream_id, version, type, data, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			event.ID, event.StreamID, event.Version, event.Type, data, event.CreatedAt.UTC(),
		)
		if err != nil {
			return -1, fmt.Errorf("insert event: %w", err)
		}
		version = event.Version
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

// Read returns events in a stream starting at fromVersion.
func (s *SQLiteStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stream_id, version, type, data, created_at
		 FROM events WHERE stream_id = ? AND version >= ?
		 ORDER BY version`, streamID, fromVersion,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ReadAll returns events matching the filter in global append order.
func (s *SQLiteStore) ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error) {
	query := `SELECT id, stream_id, version, type, data, created_at FROM events`
	var conditions []string
	var args []any

	if filter.StreamID != "" {
		conditions = append(conditions, "stream_id = ?")
		args = append(args, filter.StreamID)
	}
	if len(filter.Types) > 0 {
		placeholders := ""
		for i, t := range filter.Types {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
			args = append(args, t)
		}
		conditions = append(conditions, "type IN ("+placeholders+")")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// StreamVersion returns the last version in a stream, or -1.
func (s *SQLiteStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream_id = ?`, streamID,
	).Scan(&version)
	if err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

// DeleteStream removes a stream and all its events.
func (s *SQLiteStore) DeleteStream(ctx context.Context, streamID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE stream_id = ?`, streamID)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func streamVersionTx(ctx context.Context, tx *sql.Tx, streamID string) (int, error) {
	var version sql.NullInt64
	err := tx.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream_id = ?`, streamID,
	).Scan(&version)
	if err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var result []*Event
	for rows.Next() {
		var event Event
		var data sql.NullString
		var createdAt time.Time
		err := rows.Scan(&event.ID, &event.StreamID, &event.Version, &event.Type, &data, &createdAt)
		if err != nil {
			return nil, err
		}
		if data.Valid {
			event.Data = json.RawMessage(data.String)
		}
		event.CreatedAt = createdAt
		result = append(result, &event)
	}
	return result, rows.Err()
}
