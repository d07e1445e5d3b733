package datemath

import (
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Rule names reported in Match.Rule.
const (
	ruleTimeOfDay          = "time_of_day"
	ruleTimeBeforeRelative = "time_before_relative"
	ruleRelativeTimeOfDay  = "relative_time_of_day"
	ruleRelativeUntil      = "relative_until"
	ruleRelativeClock      = "relative_clock"
	ruleBareHour           = "bare_hour"
	ruleRelativeDate       = "relative_date"
	ruleWeekdayClock       = "weekday_clock"
	ruleWeekday            = "weekday"
	ruleInPeriod           = "in_period"
	ruleClock              = "clock"
	ruleNumericDateTime    = "numeric_datetime"
	ruleMonthName          = "month_name"
	ruleNumericDate        = "numeric_date"
	ruleFallback           = "nlp_fallback"
)

// Numeric date layouts. Each yields day/month/year groups; the year-less form infers the year.
var numericDateLayouts = []string{
	`(?<day>\d{1,2})\.(?<month>\d{1,2})\.(?<year>\d{4})`,
	`(?<day>\d{1,2})/(?<month>\d{1,2})/(?<year>\d{4})`,
	`(?<year>\d{4})-(?<month>\d{1,2})-(?<day>\d{1,2})`,
	`(?<day>\d{1,2})-(?<month>\d{1,2})-(?<year>\d{4})`,
}

var yearlessDateLayouts = []string{
	`(?<day>\d{1,2})\.(?<month>\d{1,2})`,
	`(?<day>\d{1,2})/(?<month>\d{1,2})`,
}

// deadlineRules is the §-ordered grammar: the first rule whose anchored pattern matches and whose
// handler accepts the values decides the result.
var deadlineRules = buildDeadlineRules()

func buildDeadlineRules() []rule {
	rel := `(?<rel>` + relAlt + `)`
	bucket := `(?<bucket>` + bucketAlt + `)`

	rules := []rule{
		// 1. "7 утра", "в 2 часа дня", "шесть вечера"
		{ruleTimeOfDay, mustCompile(`^(?:в\s+)?` + hourWord + `(?::(?<minute>\d{2}))?(?:\s+час(?:ов|а)?)?\s+` + bucket + `$`), resolveTimeOfDay},
		// 2. "в 16:00 завтра"
		{ruleTimeBeforeRelative, mustCompile(`^в\s+(?<hour>\d{1,2})(?:\s*[:.]?\s*(?<minute>\d{2}))?\s+` + rel + `$`), resolveRelativeClock},
		// 3. "завтра в 7 утра"
		{ruleRelativeTimeOfDay, mustCompile(`^` + rel + `\s+(?:в\s+)?` + hourWord + `(?::(?<minute>\d{2}))?(?:\s+час(?:ов|а)?)?\s+` + bucket + `$`), resolveRelativeClock},
		// 4. "завтра до 18:00"
		{ruleRelativeUntil, mustCompile(`^` + rel + `\s+до\s+(?<hour>\d{1,2})(?:[:.](?<minute>\d{2}))?$`), resolveRelativeClock},
		// 5. "завтра в 14 часов 30", "завтра в 14 часов", "завтра в 14:00", "завтра 14 30", "завтра 14"
		{ruleRelativeClock, mustCompile(`^` + rel + `\s+в\s+(?<hour>\d{1,2})\s+час(?:ов|а)?\s+(?<minute>\d{1,2})\s*(?:минут[аы]?|мин|м)?$`), resolveRelativeClock},
		{ruleRelativeClock, mustCompile(`^` + rel + `\s+в\s+(?<hour>\d{1,2})\s+час(?:ов|а)?$`), resolveRelativeClock},
		{ruleRelativeClock, mustCompile(`^` + rel + `\s+в\s+(?<hour>\d{1,2})(?:[:.](?<minute>\d{2}))?$`), resolveRelativeClock},
		{ruleRelativeClock, mustCompile(`^` + rel + `\s+(?<hour>\d{1,2})\s+(?<minute>\d{2})$`), resolveRelativeClock},
		{ruleRelativeClock, mustCompile(`^` + rel + `\s+(?<hour>\d{1,2})(?:[:.](?<minute>\d{2}))?$`), resolveRelativeClock},
		// 6. "19"
		{ruleBareHour, mustCompile(`^(?<hour>\d{1,2})$`), resolveClockToday},
		// 7. "завтра", "через неделю"
		{ruleRelativeDate, mustCompile(`^(?<phrase>` + alternation(relativeDayOffsets) + `)$`), resolveRelativeDate},
		// 8. "вторник 14:00", "в пятницу в 10 утра"
		{ruleWeekdayClock, mustCompile(`^(?:(?:в|во)\s+)?(?<wd>` + weekdayAlt + `)\s+(?:в\s+)?(?<hour>\d{1,2})(?:\s*[:.]?\s*(?<minute>\d{2}))?(?:\s+час(?:ов|а)?)?(?:\s+` + bucket + `)?$`), resolveWeekdayClock},
		// 9. "пятница", "в среду"
		{ruleWeekday, mustCompile(`^(?:(?:в|во)\s+)?(?<wd>` + weekdayAlt + `)$`), resolveWeekday},
		// 10. "через 3 дня", "через 2 недели", "через месяц в 10:00"
		{ruleInPeriod, mustCompile(`^через\s+(?:(?<amount>\d+)\s+)?(?<unit>\S+)(?:\s+в\s+(?<hour>\d{1,2})(?:[:.](?<minute>\d{2}))?)?$`), resolveInPeriod},
		// 11. "14 часов 30", "в 14 часов", "18:30", "18 30", "в 19"
		{ruleClock, mustCompile(`^(?:в\s+)?(?<hour>\d{1,2})\s+час(?:ов|а)?\s+(?<minute>\d{1,2})\s*(?:минут[аы]?|мин|м)?$`), resolveClockToday},
		{ruleClock, mustCompile(`^(?:в\s+)?(?<hour>\d{1,2})\s+час(?:ов|а)?$`), resolveClockToday},
		{ruleClock, mustCompile(`^(?:в\s+)?(?<hour>\d{1,2})[:.](?<minute>\d{2})$`), resolveClockToday},
		{ruleClock, mustCompile(`^(?<hour>\d{1,2})\s+(?<minute>\d{2})$`), resolveClockToday},
		{ruleClock, mustCompile(`^в\s+(?<hour>\d{1,2})$`), resolveClockToday},
	}

	// 12. "25.01.2026 18:00", "2026-01-25 в 18:00", "25/01 в 18"
	for _, layout := range append(append([]string{}, numericDateLayouts...), yearlessDateLayouts...) {
		rules = append(rules,
			rule{ruleNumericDateTime, mustCompile(`^` + layout + `\s+(?:в\s+)?(?<hour>\d{1,2})[:.](?<minute>\d{2})$`), resolveNumericDate},
			rule{ruleNumericDateTime, mustCompile(`^` + layout + `\s+в\s+(?<hour>\d{1,2})$`), resolveNumericDate},
		)
	}

	// 13. "15 февраля", "16 февраля 2026 в 15:30", "15 февраля в 7 вечера"
	rules = append(rules, rule{ruleMonthName, mustCompile(`^(?<day>\d{1,2})\s+(?<monthname>` + monthAlt + `)(?:\s+(?<year>\d{4}))?` +
		`(?:\s+(?:в\s+)?(?<hour>\d{1,2})(?:\s*[:.]?\s*(?<minute>\d{2}))?(?:\s+час(?:ов|а)?)?(?:\s+` + bucket + `)?)?$`), resolveMonthName})

	// 14. "25.01.2026", "2026-01-25", "25.01"
	for _, layout := range append(append([]string{}, numericDateLayouts...), yearlessDateLayouts...) {
		rules = append(rules, rule{ruleNumericDate, mustCompile(`^` + layout + `$`), resolveNumericDate})
	}

	return rules
}

// alternation builds a regex alternation from map keys, longest first.
func alternation[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return strings.Join(keys, "|")
}

func resolveTimeOfDay(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	c, ok := bucketClock(m)
	if !ok {
		return time.Time{}, false
	}
	return future(c.On(ref), ref), true
}

// resolveRelativeClock handles every "<relative date> + <time>" form, bucketed or not.
func resolveRelativeClock(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	rel, ok := relativeDates[strings.ToLower(named(m, "rel"))]
	if !ok {
		return time.Time{}, false
	}
	c, ok := bucketClock(m)
	if !ok {
		return time.Time{}, false
	}
	return future(c.On(ref.AddDate(0, 0, rel.Days())), ref), true
}

func resolveClockToday(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	c := Clock{Hour: atoi(named(m, "hour"), -1), Minute: atoi(named(m, "minute"), 0)}
	if !c.Valid() {
		return time.Time{}, false
	}
	return future(c.On(ref), ref), true
}

func resolveRelativeDate(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	days, ok := relativeDayOffsets[strings.ToLower(named(m, "phrase"))]
	if !ok {
		return time.Time{}, false
	}
	return endOfDay(ref.AddDate(0, 0, days)), true
}

func resolveWeekdayClock(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	wd, ok := weekdays[strings.ToLower(named(m, "wd"))]
	if !ok {
		return time.Time{}, false
	}
	c, ok := bucketClock(m)
	if !ok {
		return time.Time{}, false
	}
	return c.On(ResolveWeekday(wd, ref, &c)), true
}

func resolveWeekday(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	wd, ok := weekdays[strings.ToLower(named(m, "wd"))]
	if !ok {
		return time.Time{}, false
	}
	return endOfDay(nextWeekdayStrict(wd, ref)), true
}

func resolveInPeriod(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	amount := 1
	if a := named(m, "amount"); a != "" {
		amount = atoi(a, -1)
	}
	if amount < 0 || amount > maxOffsetDays {
		return time.Time{}, false
	}

	var days int
	unit := strings.ToLower(named(m, "unit"))
	switch {
	case strings.HasPrefix(unit, "дн"), strings.HasPrefix(unit, "ден"):
		days = amount
	case strings.HasPrefix(unit, "недел"):
		days = amount * 7
	case strings.HasPrefix(unit, "месяц"):
		// A month is approximated as 30 days.
		days = amount * 30
	default:
		return time.Time{}, false
	}

	if days > maxOffsetDays {
		return time.Time{}, false
	}

	d := ref.AddDate(0, 0, days)
	if named(m, "hour") == "" {
		return endOfDay(d), true
	}
	c := Clock{Hour: atoi(named(m, "hour"), -1), Minute: atoi(named(m, "minute"), 0)}
	if !c.Valid() {
		return time.Time{}, false
	}
	return c.On(d), true
}

// resolveNumericDate handles DD.MM.YYYY-style dates with or without a clock time.
func resolveNumericDate(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	day := atoi(named(m, "day"), 0)
	month := time.Month(atoi(named(m, "month"), 0))

	var (
		d  time.Time
		ok bool
	)
	if y := named(m, "year"); y != "" {
		d, ok = calendarDate(atoi(y, 0), month, day, ref.Location())
	} else {
		d, ok = inferYear(month, day, ref)
	}
	if !ok {
		return time.Time{}, false
	}

	if named(m, "hour") == "" {
		return endOfDay(d), true
	}
	c := Clock{Hour: atoi(named(m, "hour"), -1), Minute: atoi(named(m, "minute"), 0)}
	if !c.Valid() {
		return time.Time{}, false
	}
	return c.On(d), true
}

func resolveMonthName(m *regexp2.Match, ref time.Time) (time.Time, bool) {
	month, ok := months[strings.ToLower(named(m, "monthname"))]
	if !ok {
		return time.Time{}, false
	}
	day := atoi(named(m, "day"), 0)

	var d time.Time
	if y := named(m, "year"); y != "" {
		d, ok = calendarDate(atoi(y, 0), month, day, ref.Location())
	} else {
		d, ok = inferYear(month, day, ref)
	}
	if !ok {
		return time.Time{}, false
	}

	if named(m, "hour") == "" {
		return endOfDay(d), true
	}
	c, ok := bucketClock(m)
	if !ok {
		return time.Time{}, false
	}
	return c.On(d), true
}
