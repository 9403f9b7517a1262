package timetable

import (
	"context"
	"fmt"
	"leonardo-backend/lib/scrapers/vplan"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// NoFilter keeps the rows of every class.
const NoFilter = "NOFILTER"

// PageSource retrieves the markup of a page by its 1-based index,
// *vplan.Client is the production implementation.
type PageSource interface {
	FetchPage(ctx context.Context, page int) (string, error)
}

type BuildOptions struct {
	// Filter is either NoFilter or the exact (case-sensitive) class name
	// rows must have to be kept, an empty filter is treated as NoFilter.
	Filter string
	// MaxPages defaults to vplan.DefaultMaxPages.
	MaxPages int
}

func (o BuildOptions) keep(row vplan.Row) bool {
	return o.Filter == "" || o.Filter == NoFilter || o.Filter == row.Class
}

// Build follows the page sequence of `source` starting at page 1 until a
// page carries a navigation token that an earlier page already had. That
// page is still read, only then the loop stops. Every kept row and
// announcement is accumulated, merged and sorted into a Snapshot.
//
// Any fetch or extraction failure aborts the build, no partial snapshot is
// ever returned.
func Build(ctx context.Context, source PageSource, opts BuildOptions) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Build")
	defer span.End()

	span.SetAttributes(attribute.String("filter", opts.Filter))

	fail := func(err error) (Snapshot, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = vplan.DefaultMaxPages
	}

	snapshot := NewSnapshot()
	seen := map[string]struct{}{}
	pages := 0

	for page := 1; ; page++ {
		if page > maxPages {
			return fail(fmt.Errorf("%w (%d pages)", vplan.ErrPageLimit, maxPages))
		}
		err := ctx.Err()
		if err != nil {
			return fail(err)
		}

		markup, err := source.FetchPage(ctx, page)
		if err != nil {
			return fail(err)
		}
		parsed, err := vplan.ParsePage(ctx, markup)
		if err != nil {
			return fail(fmt.Errorf("page %d: %w", page, err))
		}
		rows, err := vplan.ExpandRows(parsed.Rows)
		if err != nil {
			return fail(fmt.Errorf("page %d: %w", page, err))
		}
		pages++

		if parsed.HasInfo {
			snapshot.Infos = append(snapshot.Infos, PlanInfo{
				Day:  parsed.Day,
				Info: parsed.Info,
			})
		}
		for _, row := range rows {
			if !opts.keep(row) {
				continue
			}
			snapshot.Data = append(snapshot.Data, PlanData{
				Day:      parsed.Day,
				Class:    row.Class,
				Lesson:   row.Lesson,
				Subject:  row.Subject,
				Room:     row.Room,
				Teachers: row.Teachers,
				Info:     row.Info,
				Notes:    row.Notes,
			})
		}

		if _, repeated := seen[parsed.Token]; repeated {
			break
		}
		seen[parsed.Token] = struct{}{}
	}

	collected := len(snapshot.Data)
	snapshot.Data = Merge(snapshot.Data)
	Sort(ctx, snapshot.Data)

	span.SetAttributes(
		attribute.Int("pages", pages),
		attribute.Int("rows", collected),
		attribute.Int("entries", len(snapshot.Data)),
		attribute.Int("infos", len(snapshot.Infos)),
	)
	slog.DebugContext(
		ctx, "built snapshot",
		"filter", opts.Filter,
		"pages", pages,
		"rows", collected,
		"entries", len(snapshot.Data),
	)
	return snapshot, nil
}
