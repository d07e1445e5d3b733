package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/repository"
	"task-reminder-bot/pkg/datemath"
)

// Create normalizes the text, extracts a deadline and stores the task.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (task.CreateOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return task.CreateOutput{}, task.ErrEmptyInput
	}

	now := uc.now()
	normalized := datemath.Normalize(input.Text)

	title, m, err := uc.dateMath.ExtractMatch(normalized, now)
	var deadline *time.Time
	switch {
	case err == nil:
		d := m.Time
		deadline = &d
		uc.l.Debugf(ctx, "task.Create: deadline %s via %s span=%q", d.Format(time.RFC3339), m.Rule, m.Span)
	case errors.Is(err, datemath.ErrNoMatch):
		title = normalized
	default:
		return task.CreateOutput{}, fmt.Errorf("extract deadline: %w", err)
	}

	title = capitalizeFirst(strings.TrimSpace(title))
	if title == "" {
		return task.CreateOutput{}, task.ErrEmptyInput
	}

	out := task.CreateOutput{DeadlineRule: m.Rule}
	eventID, link := uc.trySyncCalendar(ctx, title, deadline)
	out.CalendarLink = link

	created, err := uc.repo.Create(ctx, repository.CreateOptions{
		ChatID:          sc.ChatID,
		Title:           title,
		Deadline:        deadline,
		CalendarEventID: eventID,
	})
	if err != nil {
		return task.CreateOutput{}, fmt.Errorf("create task: %w", err)
	}
	out.Task = created

	uc.l.Infof(ctx, "task.Create: chat=%d id=%s has_deadline=%t", sc.ChatID, created.ID, deadline != nil)
	return out, nil
}

// trySyncCalendar creates a calendar event for the deadline.
// Returns empty strings on failure or when sync is disabled (graceful degradation).
func (uc *implUseCase) trySyncCalendar(ctx context.Context, title string, deadline *time.Time) (string, string) {
	if uc.calendar == nil || deadline == nil {
		return "", ""
	}
	event, err := uc.calendar.CreateDeadlineEvent(ctx, uc.calendarID, title, *deadline)
	if err != nil {
		uc.l.Warnf(ctx, "task: calendar sync failed for %q: %v", title, err)
		return "", ""
	}
	return event.ID, event.HtmlLink
}
