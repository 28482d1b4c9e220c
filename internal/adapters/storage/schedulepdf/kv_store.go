package schedulepdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tigerlee/internal/adapters/storage/kv"
	domain "tigerlee/internal/domain/schedulepdf"
)

// KVStore implements Store as a data URI under Key.
type KVStore struct {
	kv kv.Store
}

// NewKVStore creates a schedule store on top of a key-value backend.
func NewKVStore(store kv.Store) *KVStore {
	return &KVStore{kv: store}
}

// Load returns the stored document.
// POST: Returns ErrNotFound when nothing usable is stored
func (s *KVStore) Load(ctx context.Context) (domain.Document, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return domain.Document{}, ErrNotFound
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("load schedule: %w", err)
	}
	doc, err := domain.Parse(raw)
	if err != nil {
		slog.Warn("schedule_pdf_malformed", "key", Key, "error", err)
		return domain.Document{}, ErrNotFound
	}
	return doc, nil
}

// Save replaces the stored document.
func (s *KVStore) Save(ctx context.Context, doc domain.Document) error {
	if err := s.kv.Set(ctx, Key, doc.DataURI); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// Delete removes the stored document.
func (s *KVStore) Delete(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
