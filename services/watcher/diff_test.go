package watcher

import (
	"leonardo-backend/services/timetable"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	previous := snapshotWith(mathEntry, bioEntry)
	previous.Infos = []timetable.PlanInfo{{Day: "Montag 05.09.2024", Info: "Projekttag"}}

	moved := bioEntry
	moved.Room = "R202"
	current := snapshotWith(mathEntry, moved, mathEntry)

	changes := Diff(previous, current)
	require.False(t, changes.Empty())
	require.Equal(t, []timetable.PlanData{moved, mathEntry}, changes.Added)
	require.Equal(t, []timetable.PlanData{bioEntry}, changes.Removed)
	require.Empty(t, changes.AddedInfos)
	require.Equal(t, previous.Infos, changes.RemovedInfos)

	require.True(t, Diff(current, current).Empty())
	require.True(t, Diff(timetable.NewSnapshot(), timetable.Snapshot{}).Empty())
}
