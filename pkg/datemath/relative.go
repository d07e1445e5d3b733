package datemath

import (
	"strings"
	"time"
	"unicode"
)

// ResolveRelative resolves a single relative-date word ("завтра") or weekday name ("вторник", "пт")
// to a calendar date (midnight in ref's location). A weekday resolves to its next occurrence on or
// after the reference date.
func ResolveRelative(word string, ref time.Time) (time.Time, error) {
	key := strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	}))

	if rel, ok := relativeDates[key]; ok {
		return dateOf(ref).AddDate(0, 0, rel.Days()), nil
	}
	if wd, ok := weekdays[key]; ok {
		return ResolveWeekday(wd, ref, nil), nil
	}
	return time.Time{}, ErrNoMatch
}

// ResolveWeekday returns the date of the next wd on or after ref's date. When at is given and the
// target is today, today only counts if that clock time is still ahead of ref; otherwise the date
// moves a week forward.
func ResolveWeekday(wd time.Weekday, ref time.Time, at *Clock) time.Time {
	today := dateOf(ref)
	ahead := (int(wd) - int(ref.Weekday()) + 7) % 7
	if ahead == 0 && at != nil && !at.On(ref).After(ref) {
		ahead = 7
	}
	return today.AddDate(0, 0, ahead)
}

// nextWeekdayStrict is the weekday-alone rule: always 1..7 days ahead, never today.
func nextWeekdayStrict(wd time.Weekday, ref time.Time) time.Time {
	ahead := (int(wd) - int(ref.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return dateOf(ref).AddDate(0, 0, ahead)
}
