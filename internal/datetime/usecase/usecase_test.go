package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-reminder-bot/internal/datetime"
	"task-reminder-bot/internal/datetime/usecase"
	"task-reminder-bot/pkg/datemath"
	pkgLog "task-reminder-bot/pkg/log"
)

var ref = time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) (datetime.UseCase, *prometheus.Registry) {
	t.Helper()
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	uc, err := usecase.New(pkgLog.NewNop(), parser, reg)
	require.NoError(t, err)
	return uc, reg
}

func requests(t *testing.T, reg *prometheus.Registry, op, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "datetime_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["operation"] == op && labels["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestParse(t *testing.T) {
	uc, reg := newUseCase(t)
	ctx := context.Background()

	out, err := uc.Parse(ctx, datetime.ParseInput{Text: "завтра в 16:00", Reference: datetime.Reference{Now: &ref}})
	require.NoError(t, err)
	assert.True(t, out.Time.Equal(time.Date(2026, 2, 11, 16, 0, 0, 0, time.UTC)))
	assert.False(t, out.DateOnly)
	assert.Equal(t, "завтра 16:00", out.Display)
	assert.NotEmpty(t, out.Rule)

	out, err = uc.Parse(ctx, datetime.ParseInput{Text: "послезавтра", Reference: datetime.Reference{Now: &ref}})
	require.NoError(t, err)
	assert.True(t, out.DateOnly)
	assert.Equal(t, "послезавтра", out.Display)

	_, err = uc.Parse(ctx, datetime.ParseInput{Text: "абракадабра", Reference: datetime.Reference{Now: &ref}})
	assert.ErrorIs(t, err, datetime.ErrNotRecognized)

	_, err = uc.Parse(ctx, datetime.ParseInput{Text: "  "})
	assert.ErrorIs(t, err, datetime.ErrEmptyText)

	assert.Equal(t, 2.0, requests(t, reg, "parse", "matched"))
	assert.Equal(t, 1.0, requests(t, reg, "parse", "no_match"))
	assert.Equal(t, 1.0, requests(t, reg, "parse", "rejected"))
}

func TestParseTimezone(t *testing.T) {
	uc, _ := newUseCase(t)

	out, err := uc.Parse(context.Background(), datetime.ParseInput{
		Text:      "завтра в 9:00",
		Reference: datetime.Reference{Now: &ref, Timezone: "Europe/Moscow"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", out.Time.Location().String())
	assert.Equal(t, 9, out.Time.Hour())
	assert.True(t, out.Time.Equal(time.Date(2026, 2, 11, 6, 0, 0, 0, time.UTC)))

	_, err = uc.Parse(context.Background(), datetime.ParseInput{
		Text:      "завтра",
		Reference: datetime.Reference{Timezone: "Mars/Olympus"},
	})
	assert.ErrorIs(t, err, datetime.ErrInvalidTimezone)
}

func TestExtract(t *testing.T) {
	uc, reg := newUseCase(t)
	ctx := context.Background()

	out, err := uc.Extract(ctx, datetime.ExtractInput{Text: "Собрание завтра в 16:00", Reference: datetime.Reference{Now: &ref}})
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, "Собрание", out.Title)
	assert.Equal(t, "завтра в 16:00", out.Span)
	assert.True(t, out.Deadline.Equal(time.Date(2026, 2, 11, 16, 0, 0, 0, time.UTC)))

	out, err = uc.Extract(ctx, datetime.ExtractInput{Text: "Купить молоко", Reference: datetime.Reference{Now: &ref}})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, "Купить молоко", out.Title)

	assert.Equal(t, 1.0, requests(t, reg, "extract", "matched"))
	assert.Equal(t, 1.0, requests(t, reg, "extract", "no_match"))
}

func TestReminder(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	deadline := time.Date(2026, 2, 11, 16, 0, 0, 0, time.UTC)

	out, err := uc.Reminder(ctx, datetime.ReminderInput{Text: "за час", Deadline: &deadline, Reference: datetime.Reference{Now: &ref}})
	require.NoError(t, err)
	assert.True(t, out.Time.Equal(deadline.Add(-time.Hour)))
	assert.Equal(t, "завтра 15:00", out.Display)

	_, err = uc.Reminder(ctx, datetime.ReminderInput{Text: "когда-нибудь", Reference: datetime.Reference{Now: &ref}})
	assert.ErrorIs(t, err, datetime.ErrNotRecognized)
}

func TestNormalize(t *testing.T) {
	uc, _ := newUseCase(t)

	out, err := uc.Normalize(context.Background(), datetime.NormalizeInput{Text: "встреча завтра в 3 часа дня"})
	require.NoError(t, err)
	assert.Equal(t, datemath.Normalize("встреча завтра в 3 часа дня"), out.Text)

	_, err = uc.Normalize(context.Background(), datetime.NormalizeInput{})
	assert.ErrorIs(t, err, datetime.ErrEmptyText)
}

func TestSharedRegistry(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	reg := prometheus.NewRegistry()

	a, err := usecase.New(pkgLog.NewNop(), parser, reg)
	require.NoError(t, err)
	b, err := usecase.New(pkgLog.NewNop(), parser, reg)
	require.NoError(t, err)

	_, _ = a.Normalize(context.Background(), datetime.NormalizeInput{Text: "a"})
	_, _ = b.Normalize(context.Background(), datetime.NormalizeInput{Text: "b"})
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "datetime_requests_total"))
	assert.Equal(t, 2.0, requests(t, reg, "normalize", "matched"))
}
