package timetable

// PlanInfo is the announcement shown above the table of one day.
type PlanInfo struct {
	Day  string `json:"day"`
	Info string `json:"info"`
}

// PlanData is a single row of the timetable, tagged with its day.
type PlanData struct {
	Day      string `json:"day"`
	Class    string `json:"class"`
	Lesson   string `json:"lesson"`
	Subject  string `json:"subject"`
	Room     string `json:"room"`
	Teachers string `json:"teachers"`
	Info     string `json:"info"`
	Notes    string `json:"notes"`
}

type Snapshot struct {
	Infos []PlanInfo `json:"infos"`
	Data  []PlanData `json:"data"`
}

// NewSnapshot returns a snapshot with empty (not nil) collections so that it
// always serializes to arrays.
func NewSnapshot() Snapshot {
	return Snapshot{
		Infos: []PlanInfo{},
		Data:  []PlanData{},
	}
}

// Classes returns the distinct class names of the snapshot in order of
// first appearance, empty class cells are skipped.
func (s Snapshot) Classes() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, entry := range s.Data {
		if entry.Class == "" {
			continue
		}
		if _, ok := seen[entry.Class]; ok {
			continue
		}
		seen[entry.Class] = struct{}{}
		out = append(out, entry.Class)
	}
	return out
}
