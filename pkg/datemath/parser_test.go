package datemath_test

import (
	"errors"
	"testing"
	"time"

	"task-reminder-bot/pkg/datemath"
)

// 2026-02-10 is a Tuesday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.February, day, hour, minute, 0, 0, time.UTC)
}

func endOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 23, 59, 59, 0, time.UTC)
}

func TestNewParser(t *testing.T) {
	if _, err := datemath.NewParser("Europe/Moscow"); err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}
	if _, err := datemath.NewParser("Invalid/Timezone"); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParseDeadline(t *testing.T) {
	morning := at(10, 10, 0)

	tests := []struct {
		name    string
		text    string
		ref     time.Time
		want    time.Time
		wantErr bool
	}{
		{name: "tomorrow is end of day", text: "завтра", ref: morning, want: endOf(2026, 2, 11)},
		{name: "tomorrow ignores ref clock", text: "Завтра", ref: at(10, 23, 58), want: endOf(2026, 2, 11)},
		{name: "day after tomorrow", text: "послезавтра", ref: morning, want: endOf(2026, 2, 12)},
		{name: "in a week", text: "через неделю", ref: morning, want: endOf(2026, 2, 17)},
		{name: "clock ahead today", text: "14:30", ref: morning, want: at(10, 14, 30)},
		{name: "clock already passed", text: "14:30", ref: at(10, 15, 0), want: at(11, 14, 30)},
		{name: "clock with dot", text: "18.45", ref: morning, want: at(10, 18, 45)},
		{name: "clock with space", text: "18 30", ref: morning, want: at(10, 18, 30)},
		{name: "clock equal to ref rolls", text: "10:00", ref: morning, want: at(11, 10, 0)},
		{name: "worded hour", text: "14 часов", ref: morning, want: at(10, 14, 0)},
		{name: "worded hour and minute", text: "14 часов 30", ref: morning, want: at(10, 14, 30)},
		{name: "preposition and hour", text: "в 19", ref: morning, want: at(10, 19, 0)},
		{name: "morning already passed", text: "7 утра", ref: at(10, 8, 0), want: at(11, 7, 0)},
		{name: "afternoon is never early morning", text: "2 часа дня", ref: morning, want: at(10, 14, 0)},
		{name: "afternoon boundary", text: "5 дня", ref: morning, want: at(10, 17, 0)},
		{name: "afternoon clamp past 17", text: "6 дня", ref: morning, want: at(11, 6, 0)},
		{name: "noon", text: "12 часов дня", ref: morning, want: at(10, 12, 0)},
		{name: "evening", text: "6 вечера", ref: morning, want: at(10, 18, 0)},
		{name: "evening number word", text: "шесть вечера", ref: morning, want: at(10, 18, 0)},
		{name: "midnight", text: "12 ночи", ref: morning, want: at(11, 0, 0)},
		{name: "time before relative date", text: "в 16:00 завтра", ref: morning, want: at(11, 16, 0)},
		{name: "relative date with bucket", text: "завтра в 7 утра", ref: morning, want: at(11, 7, 0)},
		{name: "relative date until", text: "завтра до 18:00", ref: morning, want: at(11, 18, 0)},
		{name: "relative date spoken hour and minute", text: "завтра в 14 часов 30", ref: morning, want: at(11, 14, 30)},
		{name: "relative date spoken hour", text: "завтра в 14 часов", ref: morning, want: at(11, 14, 0)},
		{name: "relative date clock", text: "завтра в 14:00", ref: morning, want: at(11, 14, 0)},
		{name: "relative date split clock", text: "завтра 14 30", ref: morning, want: at(11, 14, 30)},
		{name: "relative date bare hour", text: "послезавтра 9", ref: morning, want: at(12, 9, 0)},
		{name: "today passed rolls a day", text: "сегодня в 9", ref: morning, want: at(11, 9, 0)},
		{name: "bare hour ahead", text: "19", ref: morning, want: at(10, 19, 0)},
		{name: "bare hour passed", text: "9", ref: morning, want: at(11, 9, 0)},
		{name: "bare hour out of range", text: "25", ref: morning, wantErr: true},
		{name: "weekday with time later today", text: "вторник 14:00", ref: morning, want: at(10, 14, 0)},
		{name: "weekday with time passed today", text: "вторник 14:00", ref: at(10, 15, 0), want: at(17, 14, 0)},
		{name: "weekday with preposition and bucket", text: "в пятницу в 7 вечера", ref: morning, want: at(13, 19, 0)},
		{name: "weekday alone", text: "пятница", ref: morning, want: endOf(2026, 2, 13)},
		{name: "weekday alone never today", text: "вторник", ref: morning, want: endOf(2026, 2, 17)},
		{name: "weekday accusative", text: "в среду", ref: morning, want: endOf(2026, 2, 11)},
		{name: "in days", text: "через 5 дней", ref: morning, want: endOf(2026, 2, 15)},
		{name: "in weeks", text: "через 2 недели", ref: morning, want: endOf(2026, 2, 24)},
		{name: "in month is 30 days", text: "через 1 месяц", ref: morning, want: endOf(2026, 3, 12)},
		{name: "in days with time", text: "через 3 дня в 15:00", ref: morning, want: at(13, 15, 0)},
		{name: "numeric date time", text: "25.01.2026 18:00", ref: morning, want: time.Date(2026, 1, 25, 18, 0, 0, 0, time.UTC)},
		{name: "iso date time", text: "2026-03-01 в 09:30", ref: morning, want: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
		{name: "slash date", text: "25/03/2026", ref: morning, want: endOf(2026, 3, 25)},
		{name: "dashed date", text: "25-03-2026", ref: morning, want: endOf(2026, 3, 25)},
		{name: "yearless date", text: "25.10", ref: morning, want: endOf(2026, 10, 25)},
		{name: "yearless date already passed", text: "25.01", ref: morning, want: endOf(2027, 1, 25)},
		{name: "dot form read as clock first", text: "12.03", ref: morning, want: at(10, 12, 3)},
		{name: "month name", text: "15 февраля", ref: morning, want: endOf(2026, 2, 15)},
		{name: "month name already passed", text: "5 февраля", ref: morning, want: endOf(2027, 2, 5)},
		{name: "month name with year and time", text: "16 февраля 2026 в 15:30", ref: morning, want: at(16, 15, 30)},
		{name: "month name with bucket", text: "15 февраля в 7 вечера", ref: morning, want: at(15, 19, 0)},
		{name: "nominative month", text: "1 март", ref: morning, want: endOf(2026, 3, 1)},
		{name: "impossible date", text: "31.02.2026", ref: morning, wantErr: true},
		{name: "month 13", text: "10.13.2026", ref: morning, wantErr: true},
		{name: "day count too large to parse", text: "через 99999999999999999999 дней", ref: morning, wantErr: true},
		{name: "day count out of range", text: "через 9999999999 дней", ref: morning, wantErr: true},
		{name: "week count out of range", text: "через 600 недель", ref: morning, wantErr: true},
		{name: "largest day count", text: "через 3650 дней", ref: morning, want: endOf(2036, 2, 8)},
		{name: "prose", text: "купить хлеб", ref: morning, wantErr: true},
		{name: "empty", text: "   ", ref: morning, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := datemath.ParseDeadline(tt.text, tt.ref)
			if tt.wantErr {
				if !errors.Is(err, datemath.ErrNoMatch) {
					t.Fatalf("ParseDeadline(%q) = %v, %v; want ErrNoMatch", tt.text, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDeadline(%q) unexpected error: %v", tt.text, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDeadline(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseDeadlineWeekdayAloneIsAlwaysAhead(t *testing.T) {
	names := map[string]time.Weekday{
		"понедельник": time.Monday, "вторник": time.Tuesday, "среда": time.Wednesday,
		"четверг": time.Thursday, "пятница": time.Friday, "суббота": time.Saturday,
		"воскресенье": time.Sunday, "пн": time.Monday, "вс": time.Sunday,
	}

	for day := 9; day <= 15; day++ {
		ref := at(day, 12, 0)
		for name, wd := range names {
			got, err := datemath.ParseDeadline(name, ref)
			if err != nil {
				t.Fatalf("ParseDeadline(%q) unexpected error: %v", name, err)
			}
			if got.Weekday() != wd {
				t.Errorf("ParseDeadline(%q) from %v = %v, want a %v", name, ref, got, wd)
			}
			days := int(got.Sub(time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC)).Hours() / 24)
			if days < 1 || days > 7 {
				t.Errorf("ParseDeadline(%q) from %v is %d days ahead, want 1..7", name, ref, days)
			}
		}
	}
}

func TestMatchDeadlineReportsRule(t *testing.T) {
	ref := at(10, 10, 0)

	tests := []struct {
		text string
		rule string
	}{
		{"7 утра", "time_of_day"},
		{"завтра", "relative_date"},
		{"вторник 14:00", "weekday_clock"},
		{"15 февраля", "month_name"},
		{"25.01.2026", "numeric_date"},
	}

	for _, tt := range tests {
		m, err := datemath.MatchDeadline(tt.text, ref)
		if err != nil {
			t.Fatalf("MatchDeadline(%q) unexpected error: %v", tt.text, err)
		}
		if m.Rule != tt.rule {
			t.Errorf("MatchDeadline(%q).Rule = %q, want %q", tt.text, m.Rule, tt.rule)
		}
	}
}

func TestParserTimezone(t *testing.T) {
	p, err := datemath.NewParser("Europe/Moscow")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	// 07:00 UTC is 10:00 in Moscow.
	ref := time.Date(2026, 2, 10, 7, 0, 0, 0, time.UTC)
	got, err := p.ParseDeadline("14:30", ref)
	if err != nil {
		t.Fatalf("ParseDeadline: %v", err)
	}
	if got.Location() != p.Location() {
		t.Errorf("location = %v, want %v", got.Location(), p.Location())
	}
	if got.Hour() != 14 || got.Minute() != 30 || got.Day() != 10 {
		t.Errorf("got %v, want 2026-02-10 14:30 MSK", got)
	}
}

func TestResolveRelative(t *testing.T) {
	ref := at(10, 10, 0)
	midnight := func(day int) time.Time { return at(day, 0, 0) }

	tests := []struct {
		word    string
		want    time.Time
		wantErr bool
	}{
		{word: "сегодня", want: midnight(10)},
		{word: "Завтра!", want: midnight(11)},
		{word: " послезавтра, ", want: midnight(12)},
		{word: "вторник", want: midnight(10)},
		{word: "ср", want: midnight(11)},
		{word: "понедельник", want: midnight(16)},
		{word: "вчера", wantErr: true},
	}

	for _, tt := range tests {
		got, err := datemath.ResolveRelative(tt.word, ref)
		if tt.wantErr {
			if !errors.Is(err, datemath.ErrNoMatch) {
				t.Errorf("ResolveRelative(%q) error = %v, want ErrNoMatch", tt.word, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ResolveRelative(%q) unexpected error: %v", tt.word, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ResolveRelative(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestResolveWeekday(t *testing.T) {
	ref := at(10, 10, 0)

	if got := datemath.ResolveWeekday(time.Tuesday, ref, &datemath.Clock{Hour: 9}); !got.Equal(at(17, 0, 0)) {
		t.Errorf("passed time today: got %v, want next week", got)
	}
	if got := datemath.ResolveWeekday(time.Tuesday, ref, &datemath.Clock{Hour: 11}); !got.Equal(at(10, 0, 0)) {
		t.Errorf("upcoming time today: got %v, want today", got)
	}
	if got := datemath.ResolveWeekday(time.Thursday, ref, nil); !got.Equal(at(12, 0, 0)) {
		t.Errorf("later weekday: got %v, want Thursday", got)
	}
}

func TestTimeOfDayHour(t *testing.T) {
	tests := []struct {
		bucket datemath.TimeOfDay
		in     int
		want   int
	}{
		{datemath.Morning, 7, 7},
		{datemath.Morning, 13, 1},
		{datemath.Afternoon, 0, 12},
		{datemath.Afternoon, 1, 13},
		{datemath.Afternoon, 5, 17},
		{datemath.Afternoon, 6, 6},
		{datemath.Afternoon, 15, 15},
		{datemath.Evening, 7, 19},
		{datemath.Evening, 21, 21},
		{datemath.Night, 3, 3},
		{datemath.Night, 12, 0},
	}

	for _, tt := range tests {
		if got := tt.bucket.Hour(tt.in); got != tt.want {
			t.Errorf("%v.Hour(%d) = %d, want %d", tt.bucket, tt.in, got, tt.want)
		}
	}
}

func TestNLPFallback(t *testing.T) {
	p, err := datemath.NewParser("UTC", datemath.WithNLPFallback())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref := at(10, 10, 0)

	// grammar rules still win when the fallback is enabled
	m, err := p.MatchDeadline("завтра", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Rule != "relative_date" || !m.Time.Equal(endOf(2026, 2, 11)) {
		t.Errorf("MatchDeadline(завтра) = %v (%s)", m.Time, m.Rule)
	}

	// no grammar rule covers hour counts; the fallback resolves them
	m, err = p.MatchDeadline("через 3 часа", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Rule != "nlp_fallback" || !m.Time.Equal(at(10, 13, 0)) {
		t.Errorf("MatchDeadline(через 3 часа) = %v (%s), want %v (nlp_fallback)", m.Time, m.Rule, at(10, 13, 0))
	}
	if _, err := datemath.MatchDeadline("через 3 часа", ref); !errors.Is(err, datemath.ErrNoMatch) {
		t.Errorf("expected ErrNoMatch without the fallback, got %v", err)
	}

	if _, err := p.MatchDeadline("купить хлеб", ref); !errors.Is(err, datemath.ErrNoMatch) {
		t.Errorf("expected ErrNoMatch for prose, got %v", err)
	}
}
