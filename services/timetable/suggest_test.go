package timetable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestClasses(t *testing.T) {
	snapshot := Snapshot{
		Data: []PlanData{
			{Class: "10A"},
			{Class: "10B"},
			{Class: "10A"},
			{Class: "Q12"},
			{Class: ""},
			{Class: "5C"},
		},
	}
	require.Equal(t, []string{"10A", "10B", "Q12", "5C"}, snapshot.Classes())

	suggestions := SuggestClasses(snapshot, "10a", 2)
	require.Len(t, suggestions, 2)
	require.Equal(t, "10A", suggestions[0].Class)
	require.Equal(t, 1.0, suggestions[0].Similarity)
	require.Equal(t, "10B", suggestions[1].Class)

	require.Empty(t, SuggestClasses(snapshot, "xyz", 5))
	require.Empty(t, SuggestClasses(NewSnapshot(), "10A", 5))
}
