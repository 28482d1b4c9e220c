package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tigerlee/internal/domain/notification"
	"tigerlee/internal/domain/schedulepdf"
)

// Orchestrator errors for schedule management.
var (
	ErrReadFailed           = errors.New("failed to read the selected file")
	ErrConfirmationRequired = errors.New("reset requires confirmation")
)

// ScheduleStoreForOrchestrator defines the store interface needed by upload/reset.
type ScheduleStoreForOrchestrator interface {
	Save(ctx context.Context, doc schedulepdf.Document) error
	Delete(ctx context.Context) error
}

// ScheduleDeps holds dependencies for ExecuteUploadSchedule and ExecuteResetSchedule.
type ScheduleDeps struct {
	Store      ScheduleStoreForOrchestrator
	Publisher  EventPublisher
	GenerateID func() string
	Now        func() time.Time
}

// UploadScheduleInput carries an uploaded file.
type UploadScheduleInput struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// ExecuteUploadSchedule stores a new class schedule PDF.
// PRE: Body is positioned at the start of the file
// POST: on success the stored document decodes to the uploaded bytes and
// schedule_updated is published; on ErrNotPDF Body has not been read
func ExecuteUploadSchedule(ctx context.Context, input UploadScheduleInput, deps ScheduleDeps) (schedulepdf.UploadResult, error) {
	failed := schedulepdf.UploadResult{Status: schedulepdf.StatusError, FileName: input.FileName}

	if err := schedulepdf.CheckType(input.ContentType); err != nil {
		slog.Info("admin_event", "event", "schedule_rejected", "file", input.FileName, "content_type", input.ContentType)
		return failed, err
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, schedulepdf.MaxBytes+1))
	if err != nil {
		slog.Warn("admin_event", "event", "schedule_read_failed", "file", input.FileName, "error", err)
		return failed, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	doc, err := schedulepdf.FromBytes(data)
	if err != nil {
		return failed, err
	}
	if err := deps.Store.Save(ctx, doc); err != nil {
		return failed, err
	}

	now := deps.Now()
	slog.Info("admin_event", "event", "schedule_uploaded", "file", input.FileName, "bytes", len(data))
	publishChange(ctx, deps.Publisher, notification.KindScheduleUpdated, "uploaded "+input.FileName, deps.GenerateID, deps.Now)
	return schedulepdf.UploadResult{Status: schedulepdf.StatusSuccess, FileName: input.FileName, UploadedAt: now}, nil
}

// ResetScheduleInput carries the operator's confirmation.
type ResetScheduleInput struct {
	Confirmed bool
}

// ExecuteResetSchedule removes the uploaded schedule so the default is served.
// PRE: input.Confirmed is true
// POST: no schedule is stored and schedule_updated is published
func ExecuteResetSchedule(ctx context.Context, input ResetScheduleInput, deps ScheduleDeps) error {
	if !input.Confirmed {
		return ErrConfirmationRequired
	}
	if err := deps.Store.Delete(ctx); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "schedule_reset")
	publishChange(ctx, deps.Publisher, notification.KindScheduleUpdated, "reset to default", deps.GenerateID, deps.Now)
	return nil
}
