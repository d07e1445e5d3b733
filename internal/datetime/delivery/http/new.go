package http

import (
	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/datetime"
	pkgLog "task-reminder-bot/pkg/log"
)

// Handler is the public interface for the datetime HTTP delivery layer.
type Handler interface {
	Parse(c *gin.Context)
	Extract(c *gin.Context)
	Reminder(c *gin.Context)
	Normalize(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc datetime.UseCase
}

// New creates a new HTTP handler for the datetime domain.
func New(l pkgLog.Logger, uc datetime.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
