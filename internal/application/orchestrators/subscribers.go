package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sync"
	"time"

	emailAdapter "tigerlee/internal/adapters/email"
	"tigerlee/internal/domain/notification"
)

// ActivityStoreForOrchestrator defines the store interface needed by ActivityRecorder.
type ActivityStoreForOrchestrator interface {
	Save(ctx context.Context, event notification.Event) error
}

// ActivityRecorder persists every published event for the admin activity list.
type ActivityRecorder struct {
	Store ActivityStoreForOrchestrator
}

// Notify saves the event; failures are logged.
func (r ActivityRecorder) Notify(ctx context.Context, event notification.Event) {
	if err := r.Store.Save(ctx, event); err != nil {
		slog.Error("activity_save_failed", "id", event.ID, "kind", event.Kind, "error", err)
	}
}

// StaffNotifier emails staff when the class schedule changes.
// Sends run in the background so publishers are never held up by the provider.
type StaffNotifier struct {
	Sender     emailAdapter.Sender
	Recipients []string
	SiteURL    string
	Timeout    time.Duration

	wg sync.WaitGroup
}

// Notify sends a message for schedule_updated events and ignores the rest.
func (n *StaffNotifier) Notify(ctx context.Context, event notification.Event) {
	if event.Kind != notification.KindScheduleUpdated || len(n.Recipients) == 0 {
		return
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	msg := emailAdapter.Message{
		To:      n.Recipients,
		Subject: "Class schedule updated",
		HTML:    n.body(event),
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		if _, err := n.Sender.Send(sendCtx, msg); err != nil {
			slog.Error("staff_notify_failed", "event_id", event.ID, "error", err)
		}
	}()
}

// Wait blocks until in-flight sends finish.
func (n *StaffNotifier) Wait() {
	n.wg.Wait()
}

func (n *StaffNotifier) body(event notification.Event) string {
	link := n.SiteURL + "/schedule.pdf"
	return fmt.Sprintf(
		"<p>The class schedule was changed (%s) at %s.</p><p><a href=\"%s\">View the current schedule</a></p>",
		html.EscapeString(event.Detail), event.At.Format("Mon 2 Jan 2006 15:04 MST"), html.EscapeString(link))
}
