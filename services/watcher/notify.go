package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Notifier delivers messages about timetable changes somewhere.
type Notifier interface {
	// Name identifies the notifier in logs and in the sent message table.
	Name() string
	Notify(ctx context.Context, msg Message) error
}

// notifyAll sends the message through every notifier, a failing notifier
// does not keep the others from being tried. It returns how many notifiers
// delivered the message.
func notifyAll(ctx context.Context, notifiers []Notifier, msg Message) (int, error) {
	delivered := 0
	var errs []error
	for _, n := range notifiers {
		err := n.Notify(ctx, msg)
		if err != nil {
			slog.ErrorContext(ctx, "notify", "notifier", n.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		delivered++
		slog.DebugContext(ctx, "notified", "notifier", n.Name(), "title", msg.Title)
	}
	return delivered, errors.Join(errs...)
}
