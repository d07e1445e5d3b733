package datemath

import (
	"errors"
	"time"
)

// ErrNoMatch is returned when no grammar rule recognizes the input.
// It is the only error the resolver ever produces.
var ErrNoMatch = errors.New("datemath: no date/time expression recognized")

// RelativeDate is a closed-vocabulary day offset from the reference date.
type RelativeDate int

const (
	Today RelativeDate = iota
	Tomorrow
	DayAfterTomorrow
)

// Days returns the day offset of the relative date.
func (r RelativeDate) Days() int {
	return int(r)
}

func (r RelativeDate) String() string {
	switch r {
	case Today:
		return "сегодня"
	case Tomorrow:
		return "завтра"
	case DayAfterTomorrow:
		return "послезавтра"
	}
	return "unknown"
}

// TimeOfDay is the bucket a spoken hour belongs to ("7 утра", "2 часа дня").
type TimeOfDay int

const (
	Morning TimeOfDay = iota
	Afternoon
	Evening
	Night
)

// Hour converts an hour word (0-23) spoken inside the bucket into a 24-hour value.
func (b TimeOfDay) Hour(hour int) int {
	switch b {
	case Morning:
		if hour > 11 {
			hour = hour % 12
		}
	case Afternoon:
		if hour == 0 {
			hour = 12
		} else if hour < 12 {
			hour += 12
			// "дня" stays within 12-17; anything later reads as the plain hour.
			if hour > 17 {
				hour -= 12
			}
		}
	case Evening:
		if hour < 12 {
			hour += 12
		}
	case Night:
		if hour >= 12 {
			hour = hour % 12
		}
	}
	return hour % 24
}

func (b TimeOfDay) String() string {
	switch b {
	case Morning:
		return "утра"
	case Afternoon:
		return "дня"
	case Evening:
		return "вечера"
	case Night:
		return "ночи"
	}
	return "unknown"
}

// Clock is an hour:minute pair without a date.
type Clock struct {
	Hour   int
	Minute int
}

// Valid reports whether the clock is a real 24-hour time.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// On returns the instant at this clock time on t's calendar date.
func (c Clock) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

// Match is a resolved deadline together with the rule that produced it.
type Match struct {
	Time time.Time
	Rule string
	// Span is the (possibly extended) text the rule matched. Set by extraction only.
	Span string
}
