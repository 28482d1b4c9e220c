package activity

import (
	"context"
	"fmt"
	"time"

	"tigerlee/internal/adapters/storage"
	"tigerlee/internal/domain/notification"
)

const timeLayout = time.RFC3339Nano

// SQLiteStore implements Store on the activity table.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new activity store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an event.
// PRE: event.Validate() == nil
// POST: Event is persisted; saving the same ID twice is a no-op
func (s *SQLiteStore) Save(ctx context.Context, event notification.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, kind, detail, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		event.ID, event.Kind, event.Detail, event.At.UTC().Format(timeLayout))
	return err
}

// Recent returns the newest events first.
// PRE: limit > 0
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]notification.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, detail, created_at FROM activity ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notification.Event
	for rows.Next() {
		var e notification.Event
		var at string
		if err := rows.Scan(&e.ID, &e.Kind, &e.Detail, &at); err != nil {
			return nil, err
		}
		e.At, err = time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("activity %s: bad timestamp: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
