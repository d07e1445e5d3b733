package repository

import (
	"context"
	"time"

	"task-reminder-bot/internal/model"
)

// Repository is the persistence interface for tasks.
type Repository interface {
	Create(ctx context.Context, opt CreateOptions) (model.Task, error)
	Detail(ctx context.Context, chatID int64, id string) (model.Task, error)
	List(ctx context.Context, opt ListOptions) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	DueReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error)
	MarkReminded(ctx context.Context, id string) error
}
