package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-reminder-bot/internal/datetime"
	"task-reminder-bot/pkg/datemath"
)

const (
	opParse     = "parse"
	opExtract   = "extract"
	opReminder  = "reminder"
	opNormalize = "normalize"
)

func (uc *implUseCase) Parse(ctx context.Context, input datetime.ParseInput) (datetime.ParseOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		uc.metrics.observe(opParse, resultRejected, "")
		return datetime.ParseOutput{}, datetime.ErrEmptyText
	}
	p, ref, err := uc.reference(input.Reference)
	if err != nil {
		uc.metrics.observe(opParse, resultRejected, "")
		return datetime.ParseOutput{}, err
	}

	m, err := p.MatchDeadline(input.Text, ref)
	if err != nil {
		return datetime.ParseOutput{}, uc.noMatch(ctx, opParse, input.Text, err)
	}
	uc.metrics.observe(opParse, resultMatched, m.Rule)

	return datetime.ParseOutput{
		Time:     m.Time,
		Rule:     m.Rule,
		DateOnly: isDateOnly(m.Time),
		Display:  datemath.FormatDeadline(m.Time, ref),
	}, nil
}

func (uc *implUseCase) Extract(ctx context.Context, input datetime.ExtractInput) (datetime.ExtractOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		uc.metrics.observe(opExtract, resultRejected, "")
		return datetime.ExtractOutput{}, datetime.ErrEmptyText
	}
	p, ref, err := uc.reference(input.Reference)
	if err != nil {
		uc.metrics.observe(opExtract, resultRejected, "")
		return datetime.ExtractOutput{}, err
	}

	title, m, err := p.ExtractMatch(input.Text, ref)
	if errors.Is(err, datemath.ErrNoMatch) {
		uc.metrics.observe(opExtract, resultNoMatch, "")
		return datetime.ExtractOutput{Title: title}, nil
	}
	if err != nil {
		return datetime.ExtractOutput{}, fmt.Errorf("extract: %w", err)
	}
	uc.metrics.observe(opExtract, resultMatched, m.Rule)

	return datetime.ExtractOutput{
		Title:    title,
		Found:    true,
		Deadline: m.Time,
		Rule:     m.Rule,
		Span:     m.Span,
		Display:  datemath.FormatDeadline(m.Time, ref),
	}, nil
}

func (uc *implUseCase) Reminder(ctx context.Context, input datetime.ReminderInput) (datetime.ReminderOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		uc.metrics.observe(opReminder, resultRejected, "")
		return datetime.ReminderOutput{}, datetime.ErrEmptyText
	}
	p, ref, err := uc.reference(input.Reference)
	if err != nil {
		uc.metrics.observe(opReminder, resultRejected, "")
		return datetime.ReminderOutput{}, err
	}

	t, err := p.ParseReminder(input.Text, ref, input.Deadline)
	if err != nil {
		return datetime.ReminderOutput{}, uc.noMatch(ctx, opReminder, input.Text, err)
	}
	uc.metrics.observe(opReminder, resultMatched, "")

	return datetime.ReminderOutput{
		Time:    t,
		Display: datemath.FormatDate(t, ref) + " " + t.Format("15:04"),
	}, nil
}

func (uc *implUseCase) Normalize(ctx context.Context, input datetime.NormalizeInput) (datetime.NormalizeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		uc.metrics.observe(opNormalize, resultRejected, "")
		return datetime.NormalizeOutput{}, datetime.ErrEmptyText
	}
	uc.metrics.observe(opNormalize, resultMatched, "")
	return datetime.NormalizeOutput{Text: datemath.Normalize(input.Text)}, nil
}

// reference picks the parser for the requested timezone and the reference instant in it.
func (uc *implUseCase) reference(r datetime.Reference) (*datemath.Parser, time.Time, error) {
	p := uc.dateMath
	if r.Timezone != "" {
		var err error
		if p, err = uc.zoneParser(r.Timezone); err != nil {
			return nil, time.Time{}, err
		}
	}
	if r.Now == nil {
		return p, p.Now(), nil
	}
	return p, r.Now.In(p.Location()), nil
}

func (uc *implUseCase) zoneParser(tz string) (*datemath.Parser, error) {
	if p, ok := uc.zones.Get(tz); ok {
		return p, nil
	}
	p, err := datemath.NewParser(tz, uc.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", datetime.ErrInvalidTimezone, tz)
	}
	uc.zones.Add(tz, p)
	return p, nil
}

func (uc *implUseCase) noMatch(ctx context.Context, op, text string, err error) error {
	if errors.Is(err, datemath.ErrNoMatch) {
		uc.metrics.observe(op, resultNoMatch, "")
		uc.l.Debugf(ctx, "datetime.%s: no match for %q", op, text)
		return datetime.ErrNotRecognized
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isDateOnly(t time.Time) bool {
	return t.Hour() == 23 && t.Minute() == 59 && t.Second() == 59
}
