package datemath

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single regex evaluation. Inputs are short chat messages.
const matchTimeout = 200 * time.Millisecond

// maxOffsetDays bounds "через N ..." and "за N ..." amounts; larger values are treated as no match.
const maxOffsetDays = 3650

var relativeDates = map[string]RelativeDate{
	"сегодня":     Today,
	"завтра":      Tomorrow,
	"послезавтра": DayAfterTomorrow,
}

// relativeDayOffsets is the vocabulary accepted when a relative date stands alone.
var relativeDayOffsets = map[string]int{
	"сегодня":          0,
	"сегодняшний день": 0,
	"завтра":           1,
	"послезавтра":      2,
	"через день":       1,
	"через 2 дня":      2,
	"через 3 дня":      3,
	"через неделю":     7,
	"через 2 недели":   14,
}

var weekdays = map[string]time.Weekday{
	"понедельник": time.Monday,
	"пн":          time.Monday,
	"вторник":     time.Tuesday,
	"вт":          time.Tuesday,
	"среда":       time.Wednesday,
	"среду":       time.Wednesday,
	"ср":          time.Wednesday,
	"четверг":     time.Thursday,
	"чт":          time.Thursday,
	"пятница":     time.Friday,
	"пятницу":     time.Friday,
	"пт":          time.Friday,
	"суббота":     time.Saturday,
	"субботу":     time.Saturday,
	"сб":          time.Saturday,
	"воскресенье": time.Sunday,
	"вс":          time.Sunday,
}

var months = map[string]time.Month{
	"января": time.January, "январь": time.January,
	"февраля": time.February, "февраль": time.February,
	"марта": time.March, "март": time.March,
	"апреля": time.April, "апрель": time.April,
	"мая": time.May, "май": time.May,
	"июня": time.June, "июнь": time.June,
	"июля": time.July, "июль": time.July,
	"августа": time.August, "август": time.August,
	"сентября": time.September, "сентябрь": time.September,
	"октября": time.October, "октябрь": time.October,
	"ноября": time.November, "ноябрь": time.November,
	"декабря": time.December, "декабрь": time.December,
}

var buckets = map[string]TimeOfDay{
	"утра":   Morning,
	"дня":    Afternoon,
	"вечера": Evening,
	"ночи":   Night,
}

var numberWords = map[string]int{
	"один":          1,
	"одна":          1,
	"одну":          1,
	"два":           2,
	"две":           2,
	"три":           3,
	"четыре":        4,
	"пять":          5,
	"шесть":         6,
	"семь":          7,
	"восемь":        8,
	"девять":        9,
	"десять":        10,
	"одиннадцать":   11,
	"двенадцать":    12,
	"тринадцать":    13,
	"четырнадцать":  14,
	"пятнадцать":    15,
	"шестнадцать":   16,
	"семнадцать":    17,
	"восемнадцать":  18,
	"девятнадцать":  19,
	"двадцать":      20,
	"двадцать один": 21,
	"двадцать одна": 21,
	"двадцать два":  22,
	"двадцать две":  22,
	"двадцать три":  23,
}

// Longer phrases first so "двадцать три" wins over "двадцать" and "три".
var numberWordsOrdered = []string{
	"двадцать три", "двадцать две", "двадцать два", "двадцать одна", "двадцать один",
	"двадцать", "девятнадцать", "восемнадцать", "семнадцать", "шестнадцать",
	"пятнадцать", "четырнадцать", "тринадцать", "двенадцать", "одиннадцать",
	"десять", "девять", "восемь", "семь", "шесть", "пять", "четыре",
	"три", "две", "два", "одну", "одна", "один",
}

// Pattern fragments shared by the grammar tables.
var (
	relAlt     = `завтра|сегодня|послезавтра`
	bucketAlt  = `утра|дня|вечера|ночи`
	numWordAlt = strings.Join(numberWordsOrdered, "|")
	monthAlt   = `январ[ья]|феврал[ья]|март[а]?|апрел[ья]|ма[йя]|июн[ья]|июл[ья]|август[а]?|сентябр[ья]|октябр[ья]|ноябр[ья]|декабр[ья]`
	weekdayAlt = `понедельник|вторник|среда|среду|четверг|пятница|пятницу|суббота|субботу|воскресенье|пн|вт|ср|чт|пт|сб|вс`
	hourWord   = `(?:(?<hour>\d{1,2})|(?<word>` + numWordAlt + `))`
)

func mustCompile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.IgnoreCase)
	re.MatchTimeout = matchTimeout
	return re
}

// find returns the first match of re in s, or nil. Timeouts count as no match.
func find(re *regexp2.Regexp, s string) *regexp2.Match {
	m, err := re.FindStringMatch(s)
	if err != nil {
		return nil
	}
	return m
}

// named returns the text captured by a named group, or "" when it did not participate.
func named(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}

// atoi parses s, returning def for an empty or malformed value.
func atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// spokenHour reads the hour from either the digit or the number-word group.
func spokenHour(m *regexp2.Match) (int, bool) {
	if h := named(m, "hour"); h != "" {
		return atoi(h, -1), true
	}
	if w := named(m, "word"); w != "" {
		n, ok := numberWords[strings.ToLower(w)]
		return n, ok
	}
	return 0, false
}

// bucketClock applies the time-of-day bucket (if any) to the matched hour.
func bucketClock(m *regexp2.Match) (Clock, bool) {
	hour, ok := spokenHour(m)
	if !ok {
		return Clock{}, false
	}
	c := Clock{Hour: hour, Minute: atoi(named(m, "minute"), 0)}
	if b, ok := buckets[strings.ToLower(named(m, "bucket"))]; ok {
		c.Hour = b.Hour(c.Hour)
	}
	return c, c.Valid()
}

// dateOf returns midnight of t's calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns 23:59:59 of t's calendar date.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// calendarDate builds a date, rejecting values time.Date would silently normalize (31.02, 13th month).
func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// inferYear picks the reference year, or the next one if the date already passed.
func inferYear(month time.Month, day int, ref time.Time) (time.Time, bool) {
	d, ok := calendarDate(ref.Year(), month, day, ref.Location())
	if !ok {
		// 29 February in a non-leap reference year may still exist next time around.
		return calendarDate(ref.Year()+1, month, day, ref.Location())
	}
	if d.Before(dateOf(ref)) {
		return calendarDate(ref.Year()+1, month, day, ref.Location())
	}
	return d, true
}

// future returns t, or t shifted by one day when t is not after ref.
func future(t, ref time.Time) time.Time {
	if !t.After(ref) {
		return t.AddDate(0, 0, 1)
	}
	return t
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}
