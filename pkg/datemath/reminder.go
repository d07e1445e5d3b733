package datemath

import (
	"strings"
	"time"
)

// reminderOffsets are the fixed offsets accepted after "за" or "через".
var reminderOffsets = map[string]time.Duration{
	"15 минут": 15 * time.Minute,
	"полчаса":  30 * time.Minute,
	"30 минут": 30 * time.Minute,
	"час":      time.Hour,
	"2 часа":   2 * time.Hour,
	"3 часа":   3 * time.Hour,
	"день":     24 * time.Hour,
	"неделю":   7 * 24 * time.Hour,
}

// reminderDefaultClock is used when a reminder names a date without a time.
var reminderDefaultClock = Clock{Hour: 9}

var (
	offsetRe = mustCompile(`^(?<dir>за|через)\s+(?<rest>.+)$`)
	amountRe = mustCompile(`^(?<amount>\d+)\s+(?<unit>\S+)$`)
)

// ParseReminder resolves a reminder expression. "за ..." offsets count back from deadline when one
// is given; every other offset counts forward from ref. Absolute times and dates resolve on their own.
// A reminder is never earlier than one minute after ref.
func (p *Parser) ParseReminder(text string, ref time.Time, deadline *time.Time) (time.Time, error) {
	ref = p.reference(ref)
	s := cleanExpression(text)
	if s == "" {
		return time.Time{}, ErrNoMatch
	}

	t, ok := p.resolveReminder(s, ref, deadline)
	if !ok {
		return time.Time{}, ErrNoMatch
	}
	if !t.After(ref) {
		t = ref.Add(time.Minute)
	}
	return t, nil
}

func (p *Parser) resolveReminder(s string, ref time.Time, deadline *time.Time) (time.Time, bool) {
	if m := find(offsetRe, s); m != nil {
		if d, ok := reminderOffset(named(m, "rest")); ok {
			if named(m, "dir") == "за" && deadline != nil {
				return p.reference(*deadline).Add(-d), true
			}
			return ref.Add(d), true
		}
	}

	res, err := p.MatchDeadline(s, ref)
	if err != nil {
		return time.Time{}, false
	}
	if isEndOfDay(res.Time) {
		return reminderDefaultClock.On(res.Time), true
	}
	return res.Time, true
}

func reminderOffset(rest string) (time.Duration, bool) {
	if d, ok := reminderOffsets[rest]; ok {
		return d, true
	}

	m := find(amountRe, rest)
	if m == nil {
		return 0, false
	}
	amount := time.Duration(atoi(named(m, "amount"), -1))
	if amount < 0 {
		return 0, false
	}

	var unit time.Duration
	name := named(m, "unit")
	switch {
	case strings.HasPrefix(name, "мин"):
		unit = time.Minute
	case strings.HasPrefix(name, "час"):
		unit = time.Hour
	case strings.HasPrefix(name, "дн"), strings.HasPrefix(name, "ден"):
		unit = 24 * time.Hour
	case strings.HasPrefix(name, "недел"):
		unit = 7 * 24 * time.Hour
	default:
		return 0, false
	}
	if amount > maxOffsetDays*24*time.Hour/unit {
		return 0, false
	}
	return amount * unit, true
}

func isEndOfDay(t time.Time) bool {
	return t.Hour() == 23 && t.Minute() == 59 && t.Second() == 59
}

// ParseReminder resolves a reminder expression using ref's location.
func ParseReminder(text string, ref time.Time, deadline *time.Time) (time.Time, error) {
	return defaultParser.ParseReminder(text, ref, deadline)
}
