package projections

import (
	"context"
	"errors"

	scheduleStore "tigerlee/internal/adapters/storage/schedulepdf"
	"tigerlee/internal/domain/schedulepdf"
)

// ScheduleStoreForProjection defines the store interface needed by QueryGetSchedulePDF.
type ScheduleStoreForProjection interface {
	Load(ctx context.Context) (schedulepdf.Document, error)
}

// GetSchedulePDFDeps holds dependencies for QueryGetSchedulePDF.
type GetSchedulePDFDeps struct {
	Store   ScheduleStoreForProjection
	Default []byte
}

// SchedulePDF is the document to serve.
type SchedulePDF struct {
	Data      []byte
	IsDefault bool
}

// QueryGetSchedulePDF returns the uploaded schedule, or the bundled default
// when none is stored.
func QueryGetSchedulePDF(ctx context.Context, deps GetSchedulePDFDeps) (SchedulePDF, error) {
	doc, err := deps.Store.Load(ctx)
	if errors.Is(err, scheduleStore.ErrNotFound) {
		return SchedulePDF{Data: deps.Default, IsDefault: true}, nil
	}
	if err != nil {
		return SchedulePDF{}, err
	}
	data, err := doc.Bytes()
	if err != nil {
		return SchedulePDF{Data: deps.Default, IsDefault: true}, nil
	}
	return SchedulePDF{Data: data}, nil
}
