package timetable

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"leonardo-backend/lib/htmlutil"
	"leonardo-backend/lib/timezone"
	"log/slog"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const calendarProductId = "-//leonardo-backend//timetable//DE"

// DayDate converts a day label into local midnight of that day.
func DayDate(day string) (time.Time, error) {
	key, err := parseDay(day)
	if err != nil {
		return time.Time{}, err
	}
	var parts [3]int
	for i, token := range key {
		parts[i], err = strconv.Atoi(token)
		if err != nil {
			return time.Time{}, &DateFormatError{Day: day}
		}
	}
	year, month, date := parts[0], parts[1], parts[2]
	if month < 1 || month > 12 || date < 1 || date > 31 {
		return time.Time{}, &DateFormatError{Day: day}
	}
	return timezone.Date(year, time.Month(month), date), nil
}

func eventId(fields ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(fields, "\x00")))
	return hex.EncodeToString(hash[:16]) + "@leonardo-backend"
}

func entrySummary(entry PlanData) string {
	summary := fmt.Sprintf("%s: %s", entry.Lesson, htmlutil.PlainText(entry.Subject))
	if info := htmlutil.PlainText(entry.Info); info != "" {
		summary += fmt.Sprintf(" (%s)", info)
	}
	return summary
}

func entryDescription(entry PlanData) string {
	var lines []string
	add := func(label, value string) {
		value = htmlutil.PlainText(value)
		if value == "" {
			return
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, value))
	}
	add("Class", entry.Class)
	add("Lesson", entry.Lesson)
	add("Subject", entry.Subject)
	add("Room", entry.Room)
	add("Teachers", entry.Teachers)
	add("Type", entry.Info)
	add("Notes", entry.Notes)
	return strings.Join(lines, "\n")
}

// ToCalendar renders the snapshot as an iCalendar document with one all-day
// event per entry and announcement. Entries whose day cannot be turned into
// a date are left out. `stamp` is used as DTSTAMP of every event.
func ToCalendar(ctx context.Context, snapshot Snapshot, name string, stamp time.Time) string {
	ctx, span := tracer.Start(ctx, "ToCalendar")
	defer span.End()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductId)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(timezone.Location.String())

	addEvent := func(id, day, summary, description, location string) {
		start, err := DayDate(day)
		if err != nil {
			slog.WarnContext(ctx, "skipping calendar event", "err", err)
			return
		}
		event := cal.AddEvent(id)
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
		event.SetSummary(summary)
		if description != "" {
			event.SetDescription(description)
		}
		if location != "" {
			event.SetLocation(location)
		}
	}

	for _, info := range snapshot.Infos {
		addEvent(
			eventId("info", info.Day, info.Info),
			info.Day,
			fmt.Sprintf("Information for %s", info.Day),
			htmlutil.PlainText(info.Info),
			"",
		)
	}
	for _, entry := range snapshot.Data {
		addEvent(
			eventId(entry.Day, entry.Class, entry.Lesson, entry.Subject, entry.Room, entry.Teachers, entry.Info, entry.Notes),
			entry.Day,
			entrySummary(entry),
			entryDescription(entry),
			htmlutil.PlainText(entry.Room),
		)
	}

	return cal.Serialize()
}
