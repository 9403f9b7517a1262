package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
}

// timetable days are published in school-local time, the server clock may
// not be, so anything that compares against a timetable day goes through here.
func Now() time.Time {
	return time.Now().In(Location)
}

// Date returns local midnight of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Location)
}
