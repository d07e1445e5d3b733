package datemath

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

type replacement struct {
	re   *regexp2.Regexp
	with string
}

func replace(pattern, with string) replacement {
	return replacement{re: mustCompile(pattern), with: with}
}

const monthGenitiveAlt = `январ[ья]|феврал[ья]|март[а]?|апрел[ья]|ма[йя]|июн[ья]|июл[ья]|август[а]?|сентябр[ья]|октябр[ья]|ноябр[ья]|декабр[ья]`

// normalizations run in order; later entries rely on the canonical forms produced by earlier ones.
var normalizations = []replacement{
	// relative-date synonyms
	replace(`\bзавтрашний день\b`, "завтра"),
	replace(`\bзавтрашний\b`, "завтра"),
	replace(`\bпосле завтра\b`, "послезавтра"),
	replace(`\bпосле завтрашний\b`, "послезавтра"),
	replace(`\bпослезавтрашний\b`, "послезавтра"),
	replace(`\bпосле завтрашнего дня\b`, "послезавтра"),
	replace(`\bсегодняшний день\b`, "сегодня"),
	replace(`\bсегодняшний\b`, "сегодня"),

	// time-of-day nouns to the genitive
	replace(`\bутром\b`, "утра"),
	replace(`\bдн[её]м\b`, "дня"),
	replace(`\bвечером\b`, "вечера"),
	replace(`\bночью\b`, "ночи"),

	// "16 часов 30 минут" -> "16:30"
	replace(`\b(\d{1,2})\s*(?:часов|часа|час|ч)\s*(\d{1,2})\s*(?:минут[аы]?|мин|м)?\b`, "$1:$2"),
	// "16 часов" -> "16:00"
	replace(`\b(\d{1,2})\s+(?:часов|час|ч)\b`, "$1:00"),

	// filler words around a time
	replace(`\bвремя\s+(\d{1,2}[:.]?\d{0,2})\b`, "$1"),
	replace(`\bв\s+(\d{1,2}[:.]?\d{0,2})\s+(?:часов|часа|час)\b`, "в $1"),

	replace(`\s*:\s*`, ":"),
	replace(`\s*\.\s*`, "."),

	// "16 00" -> "16:00" where it reads as a time
	replace(`\bв\s+(\d{1,2})\s+(\d{2})\b(?![:.]\d)`, "в $1:$2"),
	replace(`(?<![\d:.])\b(\d{1,2})\s+(\d{2})\s+(часов?|ч|минут?|м|утра|дня|вечера|ночи|завтра|сегодня|послезавтра)`, "$1:$2 $3"),
	replace(`(?<![\d:.])\b(\d{1,2})\s+(\d{2})\s*$`, "$1:$2"),
	replace(`\b(завтра|сегодня|послезавтра|\d{1,2}\s+(?:`+monthGenitiveAlt+`))\s+(\d{1,2})\s+(\d{2})\b(?![:.]\d)`, "$1 в $2:$3"),
	replace(`(?<![\d:.])\b(\d{1,2})\s+(\d{2})\b(?![:.]\d)(?!\s*(?:январ|феврал|март|апрел|май|июн|июл|август|сентябр|октябр|ноябр|декабр|дня|недел|месяц))`, "$1:$2"),

	// time before relative date -> relative date before time
	replace(`\bв\s+(\d{1,2}[:.]?\d{0,2})\s+(завтра|сегодня|послезавтра)\b`, "$2 в $1"),
	replace(`\b(\d{1,2}[:.]\d{2})\s+(завтра|сегодня|послезавтра)\b`, "$2 в $1"),
	replace(`\b(\d{1,2})\s+(завтра|сегодня|послезавтра)\b`, "$2 в $1"),

	// "в 7 утра" -> "7 утра"
	replace(`\bв\s+(\d{1,2})\s+(утра|дня|вечера|ночи)\b`, "$1 $2"),
	replace(`\bв\s+(\d{1,2})\s+часа?\s+(утра|дня|вечера|ночи)\b`, "$1 $2"),

	replace(`\bчерез\s+(\d+)\s+(?:дня|дней|день)\b`, "через $1 дня"),
	replace(`\bчерез\s+(\d+)\s+(?:неделю|недели|недель)\b`, "через $1 недели"),

	// "15-го февраля" -> "15 февраля"
	replace(`\b(\d{1,2})\s*(?:-\s*)?(?:го|ое|е|-)\s+(`+monthGenitiveAlt+`)`, "$1 $2"),

	replace(`[,;]\s*`, " "),
	replace(`\s+`, " "),
}

// maxNormalizePasses bounds how often the rewrite table is re-applied while the text keeps changing.
const maxNormalizePasses = 4

// Normalize rewrites speech-to-text phrasing of dates and times into the canonical textual form the
// parser expects, and capitalizes the first letter. The table is re-applied until the text stops
// changing, so normalized text is a fixed point. It never fails: if any substitution errors out, the
// input is returned with only its first letter capitalized.
func Normalize(text string) string {
	if text == "" {
		return text
	}

	s := strings.ToLower(strings.TrimSpace(text))
	for range maxNormalizePasses {
		out, ok := normalizePass(s)
		if !ok {
			return capitalizeFirst(text)
		}
		if out == s {
			break
		}
		s = out
	}
	return capitalizeFirst(s)
}

func normalizePass(s string) (string, bool) {
	for _, r := range normalizations {
		out, err := r.re.Replace(s, r.with, -1, -1)
		if err != nil {
			return "", false
		}
		s = out
	}
	return strings.TrimSpace(s), true
}

func capitalizeFirst(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
