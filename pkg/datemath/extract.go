package datemath

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// extractionRule is a pattern that locates a deadline inside free text.
// The matched span is handed to the deadline grammar for resolution.
type extractionRule struct {
	priority int
	re       *regexp2.Regexp
	// probe enables the time-extension probe when the span resolved to a date only.
	probe bool
	// accept rejects a match based on its surroundings. before/after are lowercased.
	accept func(before, after string, atEnd bool) bool
}

var (
	dateBeforeRe = mustCompile(`(?:\b(?:завтра|сегодня|послезавтра)|\b(?:(?:в|во)\s+)?(?:` + weekdayAlt + `)|\d{1,2}\s+(?:` + monthAlt + `)|\d{1,2}[./]\d{1,2}(?:[./]\d{4})?)\s*$`)
	unitAfterRe  = mustCompile(`^\s*(?:часов|часа|час|минут[аы]?|утра|вечера|дня|ночи)\b`)
	timeAfterRe  = mustCompile(`^\s*(?:в\s+)?\d`)
	durationRe   = mustCompile(`\b(?:через|на|за)\s*$`)
)

// acceptClockWord drops "через 2 дня" and "на 3 дня", where the bucket word is a day count. A clock
// directly after a date or weekday is left to the date rule so both end up in one span.
func acceptClockWord(before, _ string, _ bool) bool {
	return find(durationRe, before) == nil && find(dateBeforeRe, before) == nil
}

// acceptBareClock keeps "в 19" only when it follows a date or closes the sentence.
func acceptBareClock(before, after string, atEnd bool) bool {
	if find(unitAfterRe, after) != nil {
		return false
	}
	return atEnd || find(dateBeforeRe, before) != nil
}

// acceptBareRelative defers "завтра 14" and "завтра в 14" to the combined rules.
func acceptBareRelative(_, after string, _ bool) bool {
	return find(timeAfterRe, after) == nil
}

var extractionRules = buildExtractionRules()

func buildExtractionRules() []extractionRule {
	rel := `(?:завтра|сегодня|послезавтра)`
	clock := `(?<hour>\d{1,2})(?:\s*[:.]?\s*(?<minute>\d{2}))?`
	bucketed := `(?:в\s+)?` + hourWord + `(?::(?<minute>\d{2}))?(?:\s+час(?:ов|а)?)?\s+(?:` + bucketAlt + `)`
	dayMonth := `\d{1,2}\s+(?:` + monthAlt + `)`
	timeSuffix := `(?:\s+(?:в\s+)?(?<hour>\d{1,2})[:.](?<minute>\d{2}))?`

	rules := []extractionRule{
		{priority: 13, re: mustCompile(`\bв\s+` + clock + `\s+` + rel + `\b`)},
		{priority: 12, re: mustCompile(`\b` + rel + `\s+` + bucketed + `\b`)},
		{priority: 11, re: mustCompile(`\b` + bucketed + `\b`), accept: acceptClockWord},
		{priority: 10, re: mustCompile(`\b` + rel + `\s+в\s+` + clock + `\b`)},
		{priority: 10, re: mustCompile(`\b(?:(?:в|во)\s+)?(?:` + weekdayAlt + `)\s+(?:в\s+)?` + clock + `(?:\s+час(?:ов|а)?)?(?:\s+(?:` + bucketAlt + `))?\b`)},
		{priority: 10, re: mustCompile(`\b` + dayMonth + `(?:\s+\d{4})?\s+в\s+` + clock + `(?:\s+час(?:ов|а)?)?(?:\s+(?:` + bucketAlt + `))?\b`)},
		{priority: 9, re: mustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}` + timeSuffix + `\b`), probe: true},
		{priority: 9, re: mustCompile(`\b\d{1,2}/\d{1,2}/\d{4}` + timeSuffix + `\b`), probe: true},
		{priority: 9, re: mustCompile(`\b\d{4}-\d{1,2}-\d{1,2}` + timeSuffix + `\b`), probe: true},
		{priority: 9, re: mustCompile(`\b\d{1,2}-\d{1,2}-\d{4}` + timeSuffix + `\b`), probe: true},
		{priority: 8, re: mustCompile(`\b` + rel + `\s+` + clock + `\b`)},
		{priority: 7, re: mustCompile(`\b` + dayMonth + `(?:\s+\d{4})?\b`), probe: true},
		{priority: 6, re: mustCompile(`\bчерез\s+\d+\s+(?:недел[иьюя]|дн[яей]|день|месяц(?:а|ев)?)\b`), probe: true},
		{priority: 5, re: mustCompile(`\bчерез\s+(?:недел[юя]|день)\b`), probe: true},
		{priority: 4, re: mustCompile(`(?:` + dayMonth + `|` + rel + `|\d{1,2}[./]\d{1,2})\s+в\s+` + clock + `\b`)},
		{priority: 4, re: mustCompile(`\bв\s+` + clock + `\b`), accept: acceptBareClock},
		{priority: 3, re: mustCompile(`\b` + rel + `\b`), probe: true, accept: acceptBareRelative},
		{priority: 3, re: mustCompile(`\b(?:в|во)\s+(?:` + weekdayAlt + `)\b`), probe: true},
		{priority: 2, re: mustCompile(`\b[0-2]?\d[:.]\d{2}\s*$`)},
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].priority > rules[j].priority
	})
	return rules
}

// timeProbes recognize a time expression directly after a date-only span.
// Each yields hour/minute (and optionally word/bucket) groups.
var timeProbes = []*regexp2.Regexp{
	mustCompile(`^\s+(?:в\s+)?` + hourWord + `(?::(?<minute>\d{2}))?(?:\s+час(?:ов|а)?)?\s+(?<bucket>` + bucketAlt + `)\b`),
	mustCompile(`^\s+в\s+(?<hour>\d{1,2})(?:\s*[:.]?\s*(?<minute>\d{2}))?\b`),
	mustCompile(`^\s+(?<hour>\d{1,2})\s*[:.]\s*(?<minute>\d{2})\b`),
	mustCompile(`^\s+(?<hour>\d{1,2})\s+(?<minute>\d{2})\b`),
	mustCompile(`^\s+(?<hour>\d{1,2})\s+(?:часов|часа|час|ч)\s*(?:(?<minute>\d{1,2})\s*(?:минут[аы]?|мин|м))?\b`),
	mustCompile(`^\s+(?<hour>\d{1,2})\s+(?:часов|часа|час|ч)(?:\s+(?<minute>\d{1,2}))?\b`),
}

// probeTime looks for a time right after a date-only span. It returns the clock and the number of
// runes the time occupies.
func probeTime(after string) (Clock, int, bool) {
	for _, re := range timeProbes {
		m := find(re, after)
		if m == nil {
			continue
		}
		c, ok := bucketClock(m)
		if !ok {
			continue
		}
		return c, m.Length, true
	}
	return Clock{}, 0, false
}

// ExtractMatch finds a deadline embedded in free text. It returns the text with the deadline removed
// and the resolved match, whose Span is the (possibly extended) expression that was resolved.
// When nothing resolves, or removing the deadline would leave no text, it returns the original text
// and ErrNoMatch.
func (p *Parser) ExtractMatch(text string, ref time.Time) (string, Match, error) {
	ref = p.reference(ref)

	trimmed := strings.TrimSpace(text)
	original := []rune(trimmed)
	lowered := lowerRunes(trimmed)
	lower := string(lowered)

	for _, r := range extractionRules {
		m := find(r.re, lower)
		for ; m != nil; m = next(r.re, m) {
			start, end := m.Index, m.Index+m.Length
			after := string(lowered[end:])

			if r.accept != nil && !r.accept(string(lowered[:start]), after, end == len(lowered)) {
				continue
			}

			span := strings.TrimSpace(m.String())
			resolved, ok := p.resolveSpan(r, m, span, after, ref)
			if !ok {
				continue
			}
			if resolved.extra > 0 {
				end += resolved.extra
			}

			title := strings.Join(strings.Fields(string(original[:start])+" "+string(original[end:])), " ")
			if title == "" {
				return text, Match{}, ErrNoMatch
			}
			return title, resolved.match, nil
		}
	}
	return text, Match{}, ErrNoMatch
}

type resolvedSpan struct {
	match Match
	// extra is the number of runes after the primary span consumed by the extension probe.
	extra int
}

// resolveSpan parses the primary span, first trying it extended with a directly following time.
func (p *Parser) resolveSpan(r extractionRule, m *regexp2.Match, span, after string, ref time.Time) (resolvedSpan, bool) {
	if r.probe && named(m, "hour") == "" {
		if c, n, ok := probeTime(after); ok {
			extended := fmt.Sprintf("%s в %d:%02d", span, c.Hour, c.Minute)
			if res, err := p.MatchDeadline(extended, ref); err == nil {
				res.Span = extended
				return resolvedSpan{match: res, extra: n}, true
			}
		}
	}

	res, err := p.MatchDeadline(span, ref)
	if err != nil {
		return resolvedSpan{}, false
	}
	res.Span = span
	return resolvedSpan{match: res}, true
}

func next(re *regexp2.Regexp, m *regexp2.Match) *regexp2.Match {
	n, err := re.FindNextMatch(m)
	if err != nil {
		return nil
	}
	return n
}

// ExtractDeadline splits text into a title and an embedded deadline.
func (p *Parser) ExtractDeadline(text string, ref time.Time) (string, time.Time, error) {
	title, m, err := p.ExtractMatch(text, ref)
	if err != nil {
		return title, time.Time{}, err
	}
	return title, m.Time, nil
}

// ExtractDeadline splits text into a title and an embedded deadline using ref's location.
func ExtractDeadline(text string, ref time.Time) (string, time.Time, error) {
	return defaultParser.ExtractDeadline(text, ref)
}

// ExtractMatch is ExtractDeadline that also reports the resolved rule and span.
func ExtractMatch(text string, ref time.Time) (string, Match, error) {
	return defaultParser.ExtractMatch(text, ref)
}
