package watcher

import "leonardo-backend/services/timetable"

// Changes lists what differs between two snapshots, entries are compared
// field by field (lesson included).
type Changes struct {
	AddedInfos   []timetable.PlanInfo
	RemovedInfos []timetable.PlanInfo
	Added        []timetable.PlanData
	Removed      []timetable.PlanData
}

func (c Changes) Empty() bool {
	return len(c.AddedInfos) == 0 && len(c.RemovedInfos) == 0 &&
		len(c.Added) == 0 && len(c.Removed) == 0
}

// subtract returns the elements of `a` not in `b`, respecting multiplicity.
func subtract[T comparable](a, b []T) []T {
	counts := make(map[T]int, len(b))
	for _, v := range b {
		counts[v]++
	}
	var out []T
	for _, v := range a {
		if counts[v] > 0 {
			counts[v]--
			continue
		}
		out = append(out, v)
	}
	return out
}

// Diff computes the changes going from `previous` to `current`, results keep
// the order of the snapshot they come from.
func Diff(previous, current timetable.Snapshot) Changes {
	return Changes{
		AddedInfos:   subtract(current.Infos, previous.Infos),
		RemovedInfos: subtract(previous.Infos, current.Infos),
		Added:        subtract(current.Data, previous.Data),
		Removed:      subtract(previous.Data, current.Data),
	}
}
