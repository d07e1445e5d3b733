package datemath

import (
	"fmt"
	"time"
)

var monthsGenitive = [...]string{
	"", "января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var weekdaysShort = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// FormatDate renders t's date relative to ref: "сегодня", "завтра", "послезавтра" or "10 февраля".
func FormatDate(t, ref time.Time) string {
	switch daysBetween(ref, t) {
	case 0:
		return Today.String()
	case 1:
		return Tomorrow.String()
	case 2:
		return DayAfterTomorrow.String()
	}
	return fmt.Sprintf("%d %s", t.Day(), monthsGenitive[t.Month()])
}

// FormatDateFull renders "завтра, 11 февраля, Ср" or "15 марта, Вс".
func FormatDateFull(t, ref time.Time) string {
	full := fmt.Sprintf("%d %s, %s", t.Day(), monthsGenitive[t.Month()], weekdaysShort[t.Weekday()])
	if d := daysBetween(ref, t); d >= 0 && d <= 2 {
		return RelativeDate(d).String() + ", " + full
	}
	return full
}

// FormatDeadline renders a deadline for display. End-of-day deadlines show the date alone.
func FormatDeadline(t, ref time.Time) string {
	date := FormatDate(t, ref)
	if isEndOfDay(t) {
		return date
	}
	return fmt.Sprintf("%s %02d:%02d", date, t.Hour(), t.Minute())
}

// daysBetween counts calendar days from ref's date to t's date in ref's location.
func daysBetween(ref, t time.Time) int {
	from := dateOf(ref)
	to := dateOf(t.In(ref.Location()))
	// Round to absorb DST shifts.
	return int((to.Sub(from) + 12*time.Hour).Hours() / 24)
}
