package model

import "time"

// Task is a single to-do item owned by a Telegram chat.
type Task struct {
	ID              string     // UUID
	ChatID          int64      // Owning Telegram chat
	Title           string     // Task text with the deadline expression removed
	Deadline        *time.Time // nil when the user never gave one; 23:59:59 means "sometime that day"
	Reminder        *time.Time // nil when no reminder was requested
	ReminderSent    bool
	Done            bool
	CalendarEventID string // Google Calendar event ID, empty when not synced
	CreatedAt       time.Time
}
