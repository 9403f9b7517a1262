package commands

import (
	"io"
	"leonardo-backend/lib/htmlutil"
	"leonardo-backend/services/timetable"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func renderSnapshot(out io.Writer, snapshot timetable.Snapshot) {
	if len(snapshot.Infos) > 0 {
		t := newTable(out)
		t.SetTitle("Announcements")
		t.AppendHeader(table.Row{"Day", "Info"})
		for _, info := range snapshot.Infos {
			t.AppendRow(table.Row{info.Day, htmlutil.PlainText(info.Info)})
		}
		t.Render()
	}

	t := newTable(out)
	t.SetTitle("Changes")
	t.AppendHeader(table.Row{"Day", "Class", "Lesson", "Subject", "Room", "Teachers", "Type", "Notes"})
	for _, entry := range snapshot.Data {
		t.AppendRow(table.Row{
			entry.Day,
			htmlutil.PlainText(entry.Class),
			htmlutil.PlainText(entry.Lesson),
			htmlutil.PlainText(entry.Subject),
			htmlutil.PlainText(entry.Room),
			htmlutil.PlainText(entry.Teachers),
			htmlutil.PlainText(entry.Info),
			htmlutil.PlainText(entry.Notes),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Entries", len(snapshot.Data)})
	t.Render()
}
