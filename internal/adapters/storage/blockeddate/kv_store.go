package blockeddate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"tigerlee/internal/adapters/storage/kv"
	domain "tigerlee/internal/domain/blockeddate"
)

// KVStore implements Store as a JSON array under Key.
type KVStore struct {
	kv kv.Store
}

// NewKVStore creates a blocked-date store on top of a key-value backend.
func NewKVStore(store kv.Store) *KVStore {
	return &KVStore{kv: store}
}

// Load reads the persisted set.
// POST: absent or malformed data yields an empty set and a nil error
func (s *KVStore) Load(ctx context.Context) (domain.Set, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return domain.Set{}, nil
	}
	if err != nil {
		return domain.Set{}, fmt.Errorf("load blocked dates: %w", err)
	}
	var set domain.Set
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		slog.Warn("blocked_dates_malformed", "key", Key, "error", err)
		return domain.Set{}, nil
	}
	return set, nil
}

// Save writes the full set, replacing whatever was stored.
func (s *KVStore) Save(ctx context.Context, set domain.Set) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode blocked dates: %w", err)
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save blocked dates: %w", err)
	}
	return nil
}
