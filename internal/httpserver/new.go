package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	dtHTTP "task-reminder-bot/internal/datetime/delivery/http"
	tgDelivery "task-reminder-bot/internal/task/delivery/telegram"
	"task-reminder-bot/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Observability
	gatherer  prometheus.Gatherer
	readiness func(ctx context.Context) error

	// Domains
	telegramHandler tgDelivery.Handler
	datetimeHandler dtHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	// Readiness is probed by /ready, typically a database ping.
	Readiness func(ctx context.Context) error

	TelegramHandler tgDelivery.Handler
	DatetimeHandler dtHTTP.Handler
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		gatherer:        cfg.Gatherer,
		readiness:       cfg.Readiness,
		telegramHandler: cfg.TelegramHandler,
		datetimeHandler: cfg.DatetimeHandler,
	}
	if srv.gatherer == nil {
		srv.gatherer = prometheus.DefaultGatherer
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
