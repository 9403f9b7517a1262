package timetable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// DateFormatError is reported for a day label that does not look like
// "<weekday> DD.MM.YYYY".
type DateFormatError struct {
	Day string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("malformed day label '%s'", e.Day)
}

// dayKey holds the year, month and day tokens of a label. They are compared
// as strings, which matches numeric order as long as the site keeps zero
// padding them.
type dayKey [3]string

func parseDay(day string) (dayKey, error) {
	fields := strings.Split(day, " ")
	if len(fields) < 2 {
		return dayKey{}, &DateFormatError{Day: day}
	}
	parts := strings.Split(fields[1], ".")
	if len(parts) < 3 {
		return dayKey{}, &DateFormatError{Day: day}
	}
	return dayKey{parts[2], parts[1], parts[0]}, nil
}

// CompareDays orders two day labels by date. Labels that cannot be parsed
// compare as equal to anything and the parse error is returned.
func CompareDays(a, b string) (int, error) {
	ka, err := parseDay(a)
	if err != nil {
		return 0, err
	}
	kb, err := parseDay(b)
	if err != nil {
		return 0, err
	}
	for i := range ka {
		if c := strings.Compare(ka[i], kb[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// Sort orders the entries in place by day, then by lesson. The sort is
// stable, entries with a malformed day keep their position relative to the
// ones they were compared against. Each malformed label is logged once.
func Sort(ctx context.Context, data []PlanData) {
	reported := map[string]struct{}{}
	report := func(err error) {
		var dateErr *DateFormatError
		if !errors.As(err, &dateErr) {
			return
		}
		if _, done := reported[dateErr.Day]; done {
			return
		}
		reported[dateErr.Day] = struct{}{}
		slog.WarnContext(ctx, "cannot compare day", "err", err)
	}

	slices.SortStableFunc(data, func(a, b PlanData) int {
		c, err := CompareDays(a.Day, b.Day)
		if err != nil {
			report(err)
			return 0
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Lesson, b.Lesson)
	})
}
