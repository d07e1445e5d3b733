package usecase

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/repository"
)

func (uc *implUseCase) detail(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	t, err := uc.repo.Detail(ctx, sc.ChatID, id)
	if err != nil {
		return model.Task{}, mapRepoErr(err)
	}
	return t, nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return task.ErrNotFound
	}
	return err
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
