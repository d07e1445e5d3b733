package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput            = errors.New("input text is empty")
	ErrNotFound              = errors.New("task not found")
	ErrInvalidDeadline       = errors.New("deadline not recognized")
	ErrDeadlinePassed        = errors.New("deadline already passed")
	ErrInvalidReminder       = errors.New("reminder not recognized")
	ErrReminderAfterDeadline = errors.New("reminder is after the deadline")
)
