package timetable

import (
	"slices"
	"strings"
)

// LessonSeparator joins the lessons of merged entries.
const LessonSeparator = " & "

// mergeKey is every field of an entry except its lesson.
type mergeKey [7]string

func keyOf(d PlanData) mergeKey {
	return mergeKey{d.Subject, d.Day, d.Class, d.Room, d.Teachers, d.Info, d.Notes}
}

// Merge combines entries that only differ in their lesson into one entry
// whose lesson lists all of them joined by LessonSeparator. The input is
// left untouched. The result is stably ordered by subject, within a subject
// entries keep the order in which their group was first seen and lessons
// keep their input order.
func Merge(data []PlanData) []PlanData {
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, func(a, b PlanData) int {
		return strings.Compare(a.Subject, b.Subject)
	})

	out := make([]PlanData, 0, len(sorted))
	// index into out of each group in the current subject run
	groups := map[mergeKey]int{}
	for i, entry := range sorted {
		if i > 0 && sorted[i-1].Subject != entry.Subject {
			clear(groups)
		}
		key := keyOf(entry)
		if idx, ok := groups[key]; ok {
			out[idx].Lesson += LessonSeparator + entry.Lesson
			continue
		}
		groups[key] = len(out)
		out = append(out, entry)
	}
	return out
}
