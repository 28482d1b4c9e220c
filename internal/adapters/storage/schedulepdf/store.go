package schedulepdf

import (
	"context"
	"errors"

	domain "tigerlee/internal/domain/schedulepdf"
)

// Key is the storage key holding the uploaded schedule as a data URI.
const Key = "tigerlee_schedule_pdf"

// ErrNotFound means no schedule has been uploaded.
var ErrNotFound = errors.New("no schedule uploaded")

// Store persists the uploaded schedule document.
type Store interface {
	Load(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, doc domain.Document) error
	Delete(ctx context.Context) error
}
