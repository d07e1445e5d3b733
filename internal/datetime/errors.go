package datetime

import "errors"

var (
	ErrEmptyText       = errors.New("text is empty")
	ErrNotRecognized   = errors.New("expression not recognized")
	ErrInvalidTimezone = errors.New("invalid timezone")
)
