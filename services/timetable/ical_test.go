package timetable

import (
	"context"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/require"
)

func TestDayDate(t *testing.T) {
	date, err := DayDate("Montag 05.09.2024")
	require.NoError(t, err)
	require.Equal(t, 2024, date.Year())
	require.Equal(t, time.September, date.Month())
	require.Equal(t, 5, date.Day())
	require.Equal(t, "Europe/Berlin", date.Location().String())

	for _, day := range []string{"Montag", "Montag 5.x.2024", "Montag 40.09.2024", "Montag 05.13.2024"} {
		_, err := DayDate(day)
		var dateErr *DateFormatError
		require.ErrorAs(t, err, &dateErr, day)
	}
}

func TestToCalendar(t *testing.T) {
	snapshot := Snapshot{
		Infos: []PlanInfo{{Day: "Montag 05.09.2024", Info: "Projekttag"}},
		Data: []PlanData{
			{
				Day:      "Montag 05.09.2024",
				Class:    "10A",
				Lesson:   "1 & 2",
				Subject:  "Mathe",
				Room:     "R101",
				Teachers: "Mü",
				Info:     "Entfall",
				Notes:    "&nbsp;",
			},
			{Day: "kaputt", Class: "10A", Lesson: "3", Subject: "Bio"},
		},
	}
	stamp := time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC)

	out := ToCalendar(context.Background(), snapshot, "Timetable 10A", stamp)
	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	info := events[0]
	require.Equal(t, "20240905", info.GetProperty(ics.ComponentPropertyDtStart).Value)
	require.Equal(t, "Projekttag", info.GetProperty(ics.ComponentPropertyDescription).Value)

	lesson := events[1]
	require.Equal(t, "20240905", lesson.GetProperty(ics.ComponentPropertyDtStart).Value)
	require.Equal(t, "20240906", lesson.GetProperty(ics.ComponentPropertyDtEnd).Value)
	require.Equal(t, "1 & 2: Mathe (Entfall)", lesson.GetProperty(ics.ComponentPropertySummary).Value)
	require.Equal(t, "R101", lesson.GetProperty(ics.ComponentPropertyLocation).Value)
	require.Equal(t, "20240901T120000Z", lesson.GetProperty(ics.ComponentPropertyDtstamp).Value)

	// ids are stable across renderings
	again := ToCalendar(context.Background(), snapshot, "Timetable 10A", stamp)
	require.Equal(t, out, again)
}
