package db

import (
	"context"
)

const getLatestSnapshot = `-- name: GetLatestSnapshot :one
select id, filter, hash, contents, createdAt from Snapshot
where filter = ?
order by id desc
limit 1
`

func (q *Queries) GetLatestSnapshot(ctx context.Context, filter string) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getLatestSnapshot, filter)
	var i Snapshot
	err := row.Scan(
		&i.ID,
		&i.Filter,
		&i.Hash,
		&i.Contents,
		&i.Createdat,
	)
	return i, err
}

const createSnapshot = `-- name: CreateSnapshot :one
insert into Snapshot(filter, hash, contents, createdAt)
values (?, ?, ?, ?)
returning id
`

type CreateSnapshotParams struct {
	Filter    string
	Hash      string
	Contents  string
	Createdat int64
}

func (q *Queries) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createSnapshot,
		arg.Filter,
		arg.Hash,
		arg.Contents,
		arg.Createdat,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listSnapshots = `-- name: ListSnapshots :many
select id, filter, hash, contents, createdAt from Snapshot
where filter = ?
order by id desc
limit ?
`

type ListSnapshotsParams struct {
	Filter string
	Limit  int64
}

func (q *Queries) ListSnapshots(ctx context.Context, arg ListSnapshotsParams) ([]Snapshot, error) {
	rows, err := q.db.QueryContext(ctx, listSnapshots, arg.Filter, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Snapshot
	for rows.Next() {
		var i Snapshot
		if err := rows.Scan(
			&i.ID,
			&i.Filter,
			&i.Hash,
			&i.Contents,
			&i.Createdat,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getSentMessage = `-- name: GetSentMessage :one
select reference from SentMessage
where notifier = ? and filter = ?
`

type GetSentMessageParams struct {
	Notifier string
	Filter   string
}

func (q *Queries) GetSentMessage(ctx context.Context, arg GetSentMessageParams) (string, error) {
	row := q.db.QueryRowContext(ctx, getSentMessage, arg.Notifier, arg.Filter)
	var reference string
	err := row.Scan(&reference)
	return reference, err
}

const setSentMessage = `-- name: SetSentMessage :exec
insert into SentMessage(notifier, filter, reference)
values (?, ?, ?)
on conflict (notifier, filter) do update set reference = excluded.reference
`

type SetSentMessageParams struct {
	Notifier  string
	Filter    string
	Reference string
}

func (q *Queries) SetSentMessage(ctx context.Context, arg SetSentMessageParams) error {
	_, err := q.db.ExecContext(ctx, setSentMessage, arg.Notifier, arg.Filter, arg.Reference)
	return err
}
