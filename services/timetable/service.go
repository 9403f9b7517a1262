package timetable

import (
	"context"
	"leonardo-backend/lib/scrapers/vplan"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type ServiceOptions struct {
	// PageUrl is the page url template, see vplan.ClientOptions.
	PageUrl  string
	Timeout  time.Duration
	MaxPages int
}

// Service builds snapshots from the configured site, every call fetches the
// whole page sequence again.
type Service struct {
	opts ServiceOptions
}

func NewService(opts ServiceOptions) (Service, error) {
	// validates the url template
	_, err := vplan.NewClient(vplan.ClientOptions{PageUrl: opts.PageUrl})
	if err != nil {
		return Service{}, err
	}
	return Service{opts: opts}, nil
}

// BuildSnapshot fetches every page with the given credentials and returns
// the merged and sorted snapshot for `filter` (a class name or NoFilter).
func (s Service) BuildSnapshot(ctx context.Context, username, password, filter string) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "BuildSnapshot")
	defer span.End()

	client, err := vplan.NewClient(vplan.ClientOptions{
		PageUrl:  s.opts.PageUrl,
		Username: username,
		Password: password,
		Timeout:  s.opts.Timeout,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	snapshot, err := Build(ctx, client, BuildOptions{
		Filter:   filter,
		MaxPages: s.opts.MaxPages,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	snapshotsBuilt.Add(ctx, 1, metric.WithAttributes(attribute.String("filter", filter)))
	return snapshot, nil
}
