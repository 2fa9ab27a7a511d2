package domain

import "time"

// Weekday numbers service days 1=Monday through 5=Friday. This is the only
// weekday numbering used in the module; conversion from time.Weekday
// (0=Sunday) happens in WeekdayOf and nowhere else.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Friday
}

func (w Weekday) String() string {
	switch w {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	default:
		return "invalid"
	}
}

// WeekdayOf maps a calendar date to the service weekday. The second return
// is false for Saturday and Sunday, which carry no rota.
func WeekdayOf(t time.Time) (Weekday, bool) {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return 0, false
	default:
		return Weekday(int(t.Weekday())), true
	}
}

// DateOf truncates a timestamp to its calendar date at midnight UTC. All
// exception dates are stored and compared in this form so that date
// arithmetic is independent of the host timezone.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
