package repository

import "time"

// CreateOptions holds the parameters for storing a new task.
type CreateOptions struct {
	ChatID          int64
	Title           string
	Deadline        *time.Time
	Reminder        *time.Time
	CalendarEventID string
}

// ListOptions holds the parameters for listing a chat's tasks.
type ListOptions struct {
	ChatID      int64
	IncludeDone bool
	Limit       int // 0 means no limit
}
