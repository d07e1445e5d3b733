package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/pkg/datemath"
)

// SetDeadline parses an isolated deadline expression and attaches it to the task.
func (uc *implUseCase) SetDeadline(ctx context.Context, sc model.Scope, input task.SetDeadlineInput) (model.Task, error) {
	t, err := uc.detail(ctx, sc, input.TaskID)
	if err != nil {
		return model.Task{}, err
	}

	now := uc.now()
	deadline, err := uc.dateMath.ParseDeadline(strings.TrimSpace(input.Text), now)
	if errors.Is(err, datemath.ErrNoMatch) {
		return model.Task{}, task.ErrInvalidDeadline
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("parse deadline: %w", err)
	}
	if !deadline.After(now) {
		return model.Task{}, task.ErrDeadlinePassed
	}

	t.Deadline = &deadline
	if t.Reminder != nil && t.Reminder.After(deadline) {
		uc.l.Infof(ctx, "task.SetDeadline: dropping reminder of %s, it is after the new deadline", t.ID)
		t.Reminder = nil
		t.ReminderSent = false
	}
	if t.CalendarEventID == "" {
		t.CalendarEventID, _ = uc.trySyncCalendar(ctx, t.Title, t.Deadline)
	}

	updated, err := uc.repo.Update(ctx, t)
	if err != nil {
		return model.Task{}, mapRepoErr(err)
	}
	return updated, nil
}

// SetReminder computes the reminder against the stored deadline. A reminder later than the deadline is rejected.
func (uc *implUseCase) SetReminder(ctx context.Context, sc model.Scope, input task.SetReminderInput) (model.Task, error) {
	t, err := uc.detail(ctx, sc, input.TaskID)
	if err != nil {
		return model.Task{}, err
	}

	reminder, err := uc.dateMath.ParseReminder(strings.TrimSpace(input.Text), uc.now(), t.Deadline)
	if errors.Is(err, datemath.ErrNoMatch) {
		return model.Task{}, task.ErrInvalidReminder
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("parse reminder: %w", err)
	}
	if t.Deadline != nil && reminder.After(*t.Deadline) {
		return model.Task{}, task.ErrReminderAfterDeadline
	}

	t.Reminder = &reminder
	t.ReminderSent = false

	updated, err := uc.repo.Update(ctx, t)
	if err != nil {
		return model.Task{}, mapRepoErr(err)
	}
	return updated, nil
}

// Complete marks a task as done, addressed by ID or by its position in the open list.
func (uc *implUseCase) Complete(ctx context.Context, sc model.Scope, input task.CompleteInput) (model.Task, error) {
	var t model.Task
	if input.TaskID != "" {
		found, err := uc.detail(ctx, sc, input.TaskID)
		if err != nil {
			return model.Task{}, err
		}
		t = found
	} else {
		open, err := uc.List(ctx, sc, task.ListInput{})
		if err != nil {
			return model.Task{}, err
		}
		if input.Position < 1 || input.Position > len(open) {
			return model.Task{}, task.ErrNotFound
		}
		t = open[input.Position-1]
	}

	t.Done = true
	updated, err := uc.repo.Update(ctx, t)
	if err != nil {
		return model.Task{}, mapRepoErr(err)
	}
	uc.l.Infof(ctx, "task.Complete: chat=%d id=%s", sc.ChatID, t.ID)
	return updated, nil
}
