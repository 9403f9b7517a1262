package watcher

import (
	"context"
	"fmt"
	"leonardo-backend/lib/timezone"
	"leonardo-backend/services/timetable"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// DefaultSchedule polls every five minutes.
const DefaultSchedule = "@every 5m"

// SnapshotBuilder is implemented by timetable.Service.
type SnapshotBuilder interface {
	BuildSnapshot(ctx context.Context, username, password, filter string) (timetable.Snapshot, error)
}

type Options struct {
	Filter   string
	Schedule string
	Username string
	Password string
	// ReportErrors sends failed polls to the notifiers as well.
	ReportErrors bool
}

// Watcher periodically builds a snapshot and notifies about it whenever it
// differs from the last stored one.
type Watcher struct {
	builder   SnapshotBuilder
	store     Store
	notifiers []Notifier
	opts      Options
	now       func() time.Time
}

func New(builder SnapshotBuilder, store Store, notifiers []Notifier, opts Options) Watcher {
	if opts.Filter == "" {
		opts.Filter = timetable.NoFilter
	}
	if opts.Schedule == "" {
		opts.Schedule = DefaultSchedule
	}
	return Watcher{
		builder:   builder,
		store:     store,
		notifiers: notifiers,
		opts:      opts,
		now:       timezone.Now,
	}
}

// Poll runs a single check, it reports whether the snapshot changed.
func (w Watcher) Poll(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "Poll")
	defer span.End()

	span.SetAttributes(attribute.String("filter", w.opts.Filter))

	fail := func(err error) (bool, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	snapshot, err := w.builder.BuildSnapshot(ctx, w.opts.Username, w.opts.Password, w.opts.Filter)
	if err != nil {
		if w.opts.ReportErrors {
			_, notifyErr := notifyAll(ctx, w.notifiers, RenderFailure(w.opts.Filter, err))
			if notifyErr != nil {
				slog.WarnContext(ctx, "report failed poll", "err", notifyErr)
			}
		}
		return fail(fmt.Errorf("build snapshot: %w", err))
	}

	previous, hadPrevious, err := w.store.Latest(ctx, w.opts.Filter)
	if err != nil {
		return fail(fmt.Errorf("read latest snapshot: %w", err))
	}
	hash, _, err := Hash(snapshot)
	if err != nil {
		return fail(fmt.Errorf("hash snapshot: %w", err))
	}
	if hadPrevious && previous.Hash == hash {
		slog.DebugContext(ctx, "no change in timetable", "filter", w.opts.Filter)
		return false, nil
	}

	changes := Diff(previous.Snapshot, snapshot)
	changesDetected.Add(ctx, 1, metric.WithAttributes(attribute.String("filter", w.opts.Filter)))
	slog.InfoContext(
		ctx, "timetable changed",
		"filter", w.opts.Filter,
		"added", len(changes.Added),
		"removed", len(changes.Removed),
		"first", !hadPrevious,
	)

	delivered, notifyErr := notifyAll(ctx, w.notifiers, RenderMessage(w.opts.Filter, snapshot, changes, !hadPrevious))
	// the snapshot is only recorded once somebody was told about it, so an
	// undelivered change is detected again on the next poll
	if len(w.notifiers) > 0 && delivered == 0 {
		span.RecordError(notifyErr)
		span.SetStatus(codes.Error, notifyErr.Error())
		return true, fmt.Errorf("no notifier delivered the change: %w", notifyErr)
	}

	_, _, _, err = w.store.Push(ctx, w.opts.Filter, snapshot, w.now())
	if err != nil {
		return fail(fmt.Errorf("store snapshot: %w", err))
	}
	if notifyErr != nil {
		span.RecordError(notifyErr)
		span.SetStatus(codes.Error, notifyErr.Error())
		return true, notifyErr
	}
	return true, nil
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(fmt.Sprintf("cron: %s", msg), keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(fmt.Sprintf("cron: %s", msg), append(keysAndValues, "err", err)...)
}

// Run polls once immediately and then on the schedule until ctx is done.
// Failed polls are logged and do not stop the watcher.
func (w Watcher) Run(ctx context.Context) error {
	poll := func() {
		_, err := w.Poll(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "poll timetable", "filter", w.opts.Filter, "err", err)
		}
	}

	logger := cronLogger{}
	cronner := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(timezone.Location),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	_, err := cronner.AddFunc(w.opts.Schedule, poll)
	if err != nil {
		return fmt.Errorf("schedule '%s': %w", w.opts.Schedule, err)
	}

	slog.InfoContext(ctx, "watching timetable", "filter", w.opts.Filter, "schedule", w.opts.Schedule)
	poll()
	cronner.Start()
	<-ctx.Done()
	<-cronner.Stop().Done()
	return nil
}
