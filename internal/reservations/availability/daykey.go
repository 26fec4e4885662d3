package availability

import (
	"fmt"
	"time"
)

// DayFormat is the canonical calendar-day key: the date as observed in the
// venue's business timezone, independent of how the instant is stored.
const DayFormat = "2006-01-02"

// CanonicalDay maps a date value to its canonical day key. It accepts either
// an already-formatted YYYY-MM-DD string or an RFC3339 instant; instants are
// projected into loc before taking the date, never sliced as raw UTC.
func CanonicalDay(value string, loc *time.Location) (string, error) {
	if d, err := time.ParseInLocation(DayFormat, value, loc); err == nil {
		return d.Format(DayFormat), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc).Format(DayFormat), nil
	}
	return "", fmt.Errorf("unrecognized date value %q", value)
}

// CanonicalDayOf projects a stored instant to its day key in loc.
func CanonicalDayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayFormat)
}

// AnchorNoon returns the instant at local noon of the given canonical day.
// Reservations store their date anchored at noon so later rendering in any
// nearby timezone cannot shift the calendar day.
func AnchorNoon(day string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DayFormat, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", day, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), nil
}
