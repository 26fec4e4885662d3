package availability

import (
	"fmt"
	"time"
)

// MinuteOfDay parses a 24-hour HH:MM wall-clock string into minutes since
// midnight.
func MinuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlap reports whether the half-open minute intervals [startA, endA) and
// [startB, endB) intersect. Touching endpoints do not overlap: an event that
// ends at 22:00 does not collide with one starting at 22:00.
func Overlap(startA, endA, startB, endB int) bool {
	return max(startA, startB) < min(endA, endB)
}
