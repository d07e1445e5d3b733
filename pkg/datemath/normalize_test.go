package datemath_test

import (
	"strings"
	"testing"

	"task-reminder-bot/pkg/datemath"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"завтрашний день в 16 часов", "Завтра в 16:00"},
		{"в 16:00 завтра", "Завтра в 16:00"},
		{"встреча после завтра", "Встреча послезавтра"},
		{"позвонить утром", "Позвонить утра"},
		{"16 часов 30 минут", "16:30"},
		{"в 16 00 завтра", "Завтра в 16:00"},
		{"в 7 утра", "7 утра"},
		{"в 2 часа дня", "2 дня"},
		{"созвон 15-го февраля", "Созвон 15 февраля"},
		{"купить молоко, хлеб;  сыр", "Купить молоко хлеб сыр"},
		{"через 5 дней", "Через 5 дня"},
		{"  Собрание   завтра ", "Собрание завтра"},
		{"5 10 15 20", "5:10 15:20"},
	}

	for _, tt := range tests {
		if got := datemath.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"завтрашний день в 16 часов",
		"в 16:00 завтра",
		"Собрание 15-го февраля в 14 часов 30 минут",
		"позвонить маме вечером в 7",
		"через 2 недели сдать отчёт",
		"25.01.2026 18 00",
		"Купить хлеб",
		"5 10 15 20",
	}

	for _, in := range inputs {
		once := datemath.Normalize(in)
		if twice := datemath.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeIsIdempotentForGeneratedPhrases(t *testing.T) {
	tokens := []string{
		"5", "10", "15", "20", "7", "2", "30", "00", "16:00", ":",
		"в", "завтра", "часов", "час", "минут", "утра", "дня", "февраля", "через", "недели",
	}

	phrases := []string{""}
	for n := 0; n < 3; n++ {
		var longer []string
		for _, p := range phrases {
			for _, tok := range tokens {
				longer = append(longer, strings.TrimSpace(p+" "+tok))
			}
		}
		for _, in := range longer {
			once := datemath.Normalize(in)
			if twice := datemath.Normalize(once); twice != once {
				t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
			}
		}
		phrases = longer
	}
}

func TestNormalizedTextParses(t *testing.T) {
	ref := at(10, 10, 0)

	got, err := datemath.ParseDeadline(datemath.Normalize("в 16 00 завтра"), ref)
	if err != nil {
		t.Fatalf("ParseDeadline unexpected error: %v", err)
	}
	if !got.Equal(at(11, 16, 0)) {
		t.Errorf("got %v, want %v", got, at(11, 16, 0))
	}
}
