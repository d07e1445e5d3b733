package datetime

import "context"

// UseCase exposes the Russian date/time resolver over the service boundary.
type UseCase interface {
	Parse(ctx context.Context, input ParseInput) (ParseOutput, error)
	Extract(ctx context.Context, input ExtractInput) (ExtractOutput, error)
	Reminder(ctx context.Context, input ReminderInput) (ReminderOutput, error)
	Normalize(ctx context.Context, input NormalizeInput) (NormalizeOutput, error)
}
