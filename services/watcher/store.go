package watcher

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"leonardo-backend/services/timetable"
	"leonardo-backend/services/watcher/db"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Entry is one stored snapshot.
type Entry struct {
	ID        int64
	Filter    string
	Hash      string
	Snapshot  timetable.Snapshot
	CreatedAt time.Time
}

// Store keeps the history of distinct snapshots per filter.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Hash identifies the contents of a snapshot, snapshots are compared by it.
func Hash(snapshot timetable.Snapshot) (string, []byte, error) {
	contents, err := json.Marshal(snapshot)
	if err != nil {
		return "", nil, err
	}
	sum := sha256.Sum256(contents)
	return hex.EncodeToString(sum[:]), contents, nil
}

func entryFromRow(row db.Snapshot) (Entry, error) {
	var snapshot timetable.Snapshot
	err := json.Unmarshal([]byte(row.Contents), &snapshot)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:        row.ID,
		Filter:    row.Filter,
		Hash:      row.Hash,
		Snapshot:  snapshot,
		CreatedAt: time.Unix(row.Createdat, 0),
	}, nil
}

// Latest returns the most recent snapshot stored for the filter, the bool
// is false if there is none.
func (s Store) Latest(ctx context.Context, filter string) (Entry, bool, error) {
	ctx, span := tracer.Start(ctx, "Store.Latest")
	defer span.End()

	row, err := s.qry.GetLatestSnapshot(ctx, filter)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Entry{}, false, err
	}
	entry, err := entryFromRow(row)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Entry{}, false, err
	}
	return entry, true, nil
}

// Push stores the snapshot unless it is identical to the latest one of the
// filter. It returns the previous latest entry (if any) and whether the
// snapshot was new.
func (s Store) Push(ctx context.Context, filter string, snapshot timetable.Snapshot, at time.Time) (previous Entry, hadPrevious, changed bool, err error) {
	ctx, span := tracer.Start(ctx, "Store.Push")
	defer span.End()

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	hash, contents, err := Hash(snapshot)
	if err != nil {
		return Entry{}, false, false, err
	}
	span.SetAttributes(
		attribute.String("filter", filter),
		attribute.String("hash", hash),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, false, false, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	row, err := txqry.GetLatestSnapshot(ctx, filter)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Entry{}, false, false, err
	default:
		previous, err = entryFromRow(row)
		if err != nil {
			return Entry{}, false, false, err
		}
		hadPrevious = true
	}

	if hadPrevious && previous.Hash == hash {
		return previous, true, false, nil
	}

	_, err = txqry.CreateSnapshot(ctx, db.CreateSnapshotParams{
		Filter:    filter,
		Hash:      hash,
		Contents:  string(contents),
		Createdat: at.Unix(),
	})
	if err != nil {
		return Entry{}, false, false, err
	}
	err = tx.Commit()
	if err != nil {
		return Entry{}, false, false, err
	}
	return previous, hadPrevious, true, nil
}

// History lists up to `limit` stored snapshots of the filter, newest first.
func (s Store) History(ctx context.Context, filter string, limit int) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "Store.History")
	defer span.End()

	rows, err := s.qry.ListSnapshots(ctx, db.ListSnapshotsParams{
		Filter: filter,
		Limit:  int64(limit),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := entryFromRow(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SentMessage returns the reference of the last message `notifier` sent for
// the filter, "" if there is none.
func (s Store) SentMessage(ctx context.Context, notifier, filter string) (string, error) {
	reference, err := s.qry.GetSentMessage(ctx, db.GetSentMessageParams{
		Notifier: notifier,
		Filter:   filter,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return reference, err
}

func (s Store) SetSentMessage(ctx context.Context, notifier, filter, reference string) error {
	return s.qry.SetSentMessage(ctx, db.SetSentMessageParams{
		Notifier:  notifier,
		Filter:    filter,
		Reference: reference,
	})
}
