package task

import (
	"context"
	"time"

	"task-reminder-bot/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Create normalizes free text, pulls a deadline out of it and stores the remaining title as a task.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)
	// SetDeadline parses an isolated deadline expression and attaches it to a task.
	SetDeadline(ctx context.Context, sc model.Scope, input SetDeadlineInput) (model.Task, error)
	// SetReminder parses a reminder expression relative to the task's deadline.
	SetReminder(ctx context.Context, sc model.Scope, input SetReminderInput) (model.Task, error)
	List(ctx context.Context, sc model.Scope, input ListInput) ([]model.Task, error)
	Complete(ctx context.Context, sc model.Scope, input CompleteInput) (model.Task, error)

	// DueReminders returns open tasks whose reminder is at or before now and not yet delivered.
	DueReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error)
	MarkReminded(ctx context.Context, id string) error
}
