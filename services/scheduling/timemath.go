// Package scheduling implements the pure availability-to-schedule engine:
// merging grid selections into contiguous blocks, expanding blocks into
// fixed-duration slots, detecting calendar conflicts and ranking slots by
// vote score. Everything here is deterministic computation over in-memory
// data; persistence and transport live elsewhere.
package scheduling

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical calendar-day format used throughout the
// engine. All times are wall-clock local to the stored day string.
const DayKeyLayout = "2006-01-02"

// ParseDay parses a day key into the local midnight of that day.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", day, err)
	}
	return t, nil
}

// ValidDay reports whether day is a well-formed day key.
func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// MinuteInstant converts a day key plus minutes-from-midnight into an
// absolute local instant.
func MinuteInstant(day string, minute int) (time.Time, error) {
	midnight, err := ParseDay(day)
	if err != nil {
		return time.Time{}, err
	}
	return midnight.Add(time.Duration(minute) * time.Minute), nil
}

// FormatMinutes converts minutes from midnight into a human-readable time string.
func FormatMinutes(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, ampm)
}

// RangeLabel renders a start/end minute pair, e.g. "9:00 AM - 10:00 AM".
func RangeLabel(start, end int) string {
	return fmt.Sprintf("%s - %s", FormatMinutes(start), FormatMinutes(end))
}
