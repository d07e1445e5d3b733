package datemath_test

import (
	"errors"
	"testing"
	"time"

	"task-reminder-bot/pkg/datemath"
)

func TestParseReminder(t *testing.T) {
	morning := at(10, 10, 0)
	evening := at(10, 18, 0)
	later := at(20, 18, 0)

	tests := []struct {
		name     string
		text     string
		ref      time.Time
		deadline *time.Time
		want     time.Time
		wantErr  bool
	}{
		{name: "before deadline", text: "за час", ref: morning, deadline: &evening, want: at(10, 17, 0)},
		{name: "before deadline clamps to ref", text: "за час", ref: at(10, 17, 30), deadline: &evening, want: at(10, 17, 31)},
		{name: "before without deadline counts from ref", text: "за 15 минут", ref: morning, want: at(10, 10, 15)},
		{name: "half an hour", text: "за полчаса", ref: morning, deadline: &evening, want: at(10, 17, 30)},
		{name: "after ignores deadline", text: "через 15 минут", ref: morning, deadline: &evening, want: at(10, 10, 15)},
		{name: "generic minutes", text: "через 45 минут", ref: morning, want: at(10, 10, 45)},
		{name: "generic hours", text: "через 3 часа", ref: morning, want: at(10, 13, 0)},
		{name: "generic days before deadline", text: "за 2 дня", ref: morning, deadline: &later, want: at(18, 18, 0)},
		{name: "week before deadline", text: "за неделю", ref: morning, deadline: &later, want: at(13, 18, 0)},
		{name: "clock today", text: "18:30", ref: morning, want: at(10, 18, 30)},
		{name: "clock passed rolls", text: "09:00", ref: morning, want: at(11, 9, 0)},
		{name: "date defaults to nine", text: "15.02.2026", ref: morning, want: at(15, 9, 0)},
		{name: "date and time", text: "01.03.2026 12:15", ref: morning, want: time.Date(2026, 3, 1, 12, 15, 0, 0, time.UTC)},
		{name: "today at nine is clamped", text: "10.02.2026", ref: morning, want: at(10, 10, 1)},
		{name: "past absolute is clamped", text: "25.01.2026 18:00", ref: morning, want: at(10, 10, 1)},
		{name: "relative date", text: "завтра", ref: morning, want: at(11, 9, 0)},
		{name: "relative date and clock", text: "завтра в 8:30", ref: morning, want: at(11, 8, 30)},
		{name: "unknown unit", text: "через 3 года", ref: morning, wantErr: true},
		{name: "weeks before deadline out of range", text: "за 9999999999 недель", ref: morning, deadline: &later, wantErr: true},
		{name: "weeks after out of range", text: "через 9999999999 недель", ref: morning, wantErr: true},
		{name: "minutes too large to parse", text: "через 99999999999999999999 минут", ref: morning, wantErr: true},
		{name: "gibberish", text: "абырвалг", ref: morning, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := datemath.ParseReminder(tt.text, tt.ref, tt.deadline)
			if tt.wantErr {
				if !errors.Is(err, datemath.ErrNoMatch) {
					t.Fatalf("ParseReminder(%q) = %v, %v; want ErrNoMatch", tt.text, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReminder(%q) unexpected error: %v", tt.text, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseReminder(%q) = %v, want %v", tt.text, got, tt.want)
			}
			if !got.After(tt.ref) {
				t.Errorf("ParseReminder(%q) = %v is not after ref %v", tt.text, got, tt.ref)
			}
		})
	}
}
