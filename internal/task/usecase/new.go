package usecase

import (
	"context"
	"time"

	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/repository"
	"task-reminder-bot/pkg/datemath"
	"task-reminder-bot/pkg/gcalendar"
	pkgLog "task-reminder-bot/pkg/log"
)

// Calendar is the part of the Google Calendar client used for deadline sync.
type Calendar interface {
	CreateDeadlineEvent(ctx context.Context, calendarID, title string, deadline time.Time) (*gcalendar.Event, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	dateMath   *datemath.Parser
	calendar   Calendar
	calendarID string
	now        func() time.Time
}

var _ task.UseCase = (*implUseCase)(nil)

// Option configures the task UseCase.
type Option func(*implUseCase)

// WithCalendar enables syncing deadlines to the given Google Calendar.
func WithCalendar(c Calendar, calendarID string) Option {
	return func(uc *implUseCase) {
		uc.calendar = c
		uc.calendarID = calendarID
	}
}

// WithClock replaces the wall clock used as the reference instant.
func WithClock(now func() time.Time) Option {
	return func(uc *implUseCase) {
		uc.now = now
	}
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	dateMath *datemath.Parser,
	opts ...Option,
) *implUseCase {
	uc := &implUseCase{
		l:        l,
		repo:     repo,
		dateMath: dateMath,
		now:      dateMath.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
