package datetime

import "time"

// Reference selects the instant and zone an expression is resolved against.
// Zero values mean "now" and the service's configured timezone.
type Reference struct {
	Now      *time.Time
	Timezone string
}

type ParseInput struct {
	Text string
	Reference
}

type ParseOutput struct {
	Time     time.Time
	Rule     string
	DateOnly bool   // No explicit time was given; Time is 23:59:59
	Display  string // "завтра 16:00", "15 февраля"
}

type ExtractInput struct {
	Text string
	Reference
}

type ExtractOutput struct {
	Title    string
	Found    bool
	Deadline time.Time
	Rule     string
	Span     string // The excised deadline phrase
	Display  string
}

type ReminderInput struct {
	Text     string
	Deadline *time.Time
	Reference
}

type ReminderOutput struct {
	Time    time.Time
	Display string
}

type NormalizeInput struct {
	Text string
}

type NormalizeOutput struct {
	Text string
}
