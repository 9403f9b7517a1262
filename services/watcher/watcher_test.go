package watcher

import (
	"context"
	"errors"
	"leonardo-backend/services/timetable"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeBuilder struct {
	snapshots []timetable.Snapshot
	errs      []error
	calls     int
	filters   []string
}

func (b *fakeBuilder) BuildSnapshot(ctx context.Context, username, password, filter string) (timetable.Snapshot, error) {
	i := b.calls
	b.calls++
	b.filters = append(b.filters, filter)
	if i < len(b.errs) && b.errs[i] != nil {
		return timetable.Snapshot{}, b.errs[i]
	}
	return b.snapshots[i], nil
}

type recordingNotifier struct {
	name     string
	err      error
	lock     sync.Mutex
	messages []Message
}

func (n *recordingNotifier) Name() string {
	return n.name
}

func (n *recordingNotifier) Notify(ctx context.Context, msg Message) error {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.messages = append(n.messages, msg)
	return n.err
}

func (n *recordingNotifier) Messages() []Message {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]Message(nil), n.messages...)
}

func TestPoll(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	builder := &fakeBuilder{
		snapshots: []timetable.Snapshot{
			snapshotWith(mathEntry),
			snapshotWith(mathEntry),
			snapshotWith(mathEntry, bioEntry),
			{},
		},
		errs: []error{nil, nil, nil, errors.New("fetch page 1: unexpected status 500")},
	}
	notifier := &recordingNotifier{name: "recording"}
	w := New(builder, store, []Notifier{notifier}, Options{
		Filter:       "10A",
		ReportErrors: true,
	})

	ctx := context.Background()

	changed, err := w.Poll(ctx)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = w.Poll(ctx)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = w.Poll(ctx)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = w.Poll(ctx)
	require.Error(t, err)
	require.False(t, changed)

	require.Equal(t, []string{"10A", "10A", "10A", "10A"}, builder.filters)

	messages := notifier.Messages()
	require.Len(t, messages, 3)
	require.Contains(t, messages[0].Text, "Current timetable changes.")
	require.Contains(t, messages[1].Text, "There was a change (1 new).")
	require.True(t, messages[2].IsError)

	history, err := store.History(ctx, "10A", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestPollNotifierFailure(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	builder := &fakeBuilder{snapshots: []timetable.Snapshot{snapshotWith(mathEntry)}}
	broken := &recordingNotifier{name: "broken", err: errors.New("smtp down")}
	working := &recordingNotifier{name: "working"}
	w := New(builder, store, []Notifier{broken, working}, Options{})

	changed, err := w.Poll(context.Background())
	require.True(t, changed)
	require.ErrorContains(t, err, "broken: smtp down")
	require.Len(t, working.Messages(), 1)
	require.Equal(t, []string{timetable.NoFilter}, builder.filters)

	history, err := store.History(context.Background(), timetable.NoFilter, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestPollRetriesUndeliveredChange(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	builder := &fakeBuilder{
		snapshots: []timetable.Snapshot{
			snapshotWith(mathEntry),
			snapshotWith(mathEntry),
			snapshotWith(mathEntry),
		},
	}
	notifier := &recordingNotifier{name: "email", err: errors.New("smtp down")}
	w := New(builder, store, []Notifier{notifier}, Options{Filter: "10A"})

	ctx := context.Background()

	changed, err := w.Poll(ctx)
	require.True(t, changed)
	require.ErrorContains(t, err, "email: smtp down")

	history, err := store.History(ctx, "10A", 10)
	require.NoError(t, err)
	require.Empty(t, history)

	notifier.lock.Lock()
	notifier.err = nil
	notifier.lock.Unlock()

	changed, err = w.Poll(ctx)
	require.NoError(t, err)
	require.True(t, changed)

	messages := notifier.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, messages[0].Text, messages[1].Text)
	require.Contains(t, messages[1].Text, "Current timetable changes.")

	changed, err = w.Poll(ctx)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, notifier.Messages(), 2)

	history, err = store.History(ctx, "10A", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestPollWithoutNotifiers(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	builder := &fakeBuilder{snapshots: []timetable.Snapshot{snapshotWith(mathEntry), snapshotWith(mathEntry)}}
	w := New(builder, store, nil, Options{})

	changed, err := w.Poll(context.Background())
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = w.Poll(context.Background())
	require.NoError(t, err)
	require.False(t, changed)
}

func TestRun(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	builder := &fakeBuilder{snapshots: []timetable.Snapshot{snapshotWith(mathEntry)}}
	notifier := &recordingNotifier{name: "recording"}
	w := New(builder, store, []Notifier{notifier}, Options{Schedule: "@every 1h"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- w.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return len(notifier.Messages()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	err := New(builder, store, nil, Options{Schedule: "every sometimes"}).Run(context.Background())
	require.Error(t, err)
}
