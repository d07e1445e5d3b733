package middleware

import (
	"task-reminder-bot/pkg/log"
)

// Middleware holds the gin middlewares shared by every route group.
type Middleware struct {
	l log.Logger
}

func New(l log.Logger) Middleware {
	return Middleware{l: l}
}
