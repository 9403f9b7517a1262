package watcher

import (
	"fmt"
	"leonardo-backend/lib/htmlutil"
	"leonardo-backend/services/timetable"
	"strings"
)

// Message is what notifiers deliver, Text is plain text.
type Message struct {
	Filter string
	Title  string
	Text   string
	// IsError marks a failure report instead of a timetable update.
	IsError bool
}

const noChangesText = "There are no changes for the next days."

func changeSummary(changes Changes, first bool) string {
	if first {
		return "Current timetable changes."
	}
	parts := []string{}
	if n := len(changes.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new", n))
	}
	if n := len(changes.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if n := len(changes.AddedInfos) + len(changes.RemovedInfos); n > 0 {
		parts = append(parts, fmt.Sprintf("%d announcements updated", n))
	}
	if len(parts) == 0 {
		return "There was a change."
	}
	return fmt.Sprintf("There was a change (%s).", strings.Join(parts, ", "))
}

// RenderMessage describes the full current snapshot, headed by a summary of
// what changed since the previous one. `first` is set when there was no
// previous snapshot.
func RenderMessage(filter string, current timetable.Snapshot, changes Changes, first bool) Message {
	title := "Timetable"
	if filter != timetable.NoFilter && filter != "" {
		title = fmt.Sprintf("Timetable %s", filter)
	}

	if len(current.Infos) == 0 && len(current.Data) == 0 {
		return Message{Filter: filter, Title: title, Text: noChangesText}
	}

	var b strings.Builder
	b.WriteString(changeSummary(changes, first))

	for _, info := range current.Infos {
		fmt.Fprintf(&b, "\n\nAdditional information for %s\n%s", info.Day, htmlutil.PlainText(info.Info))
	}

	for _, entry := range current.Data {
		fmt.Fprintf(&b, "\n\n%s", entry.Day)
		field := func(label, value string) {
			fmt.Fprintf(&b, "\n%s: %s", label, htmlutil.PlainText(value))
		}
		if filter == timetable.NoFilter || filter == "" {
			field("Class", entry.Class)
		}
		field("Lesson", entry.Lesson)
		field("Subject", entry.Subject)
		field("Room", entry.Room)
		field("Teachers", entry.Teachers)
		field("Type", entry.Info)
		field("Information", entry.Notes)
	}

	return Message{Filter: filter, Title: title, Text: b.String()}
}

// RenderFailure reports a failed poll.
func RenderFailure(filter string, err error) Message {
	return Message{
		Filter:  filter,
		Title:   "Timetable could not be fetched",
		Text:    fmt.Sprintf("There was an error fetching the timetable: %s", err.Error()),
		IsError: true,
	}
}
