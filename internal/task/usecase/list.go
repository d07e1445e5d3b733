package usecase

import (
	"context"
	"time"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/repository"
)

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) ([]model.Task, error) {
	tasks, err := uc.repo.List(ctx, repository.ListOptions{
		ChatID:      sc.ChatID,
		IncludeDone: input.IncludeDone,
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return tasks, nil
}

func (uc *implUseCase) DueReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	tasks, err := uc.repo.DueReminders(ctx, now, limit)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return tasks, nil
}

func (uc *implUseCase) MarkReminded(ctx context.Context, id string) error {
	return mapRepoErr(uc.repo.MarkReminded(ctx, id))
}
