package task

import "task-reminder-bot/internal/model"

// CreateInput is the input for task creation.
type CreateInput struct {
	Text string // Free text, possibly containing a deadline ("Собрание завтра в 16:00")
}

// CreateOutput is the result of task creation.
type CreateOutput struct {
	Task         model.Task
	DeadlineRule string // Grammar rule that produced the deadline, empty when none was found
	CalendarLink string // Google Calendar event link (may be empty)
}

// SetDeadlineInput attaches a deadline to an existing task.
type SetDeadlineInput struct {
	TaskID string
	Text   string // "завтра в 16:00", "15.02.2026", "через неделю"
}

// SetReminderInput attaches a reminder to an existing task.
type SetReminderInput struct {
	TaskID string
	Text   string // "за час", "через 30 минут", "завтра в 9 утра"
}

// ListInput filters the task list of a chat.
type ListInput struct {
	IncludeDone bool
}

// CompleteInput identifies the task to close, either by ID or by its 1-based position in the open list.
type CompleteInput struct {
	TaskID   string
	Position int
}
