package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"task-reminder-bot/config"
	_ "task-reminder-bot/docs" // Swagger docs
	dtHTTP "task-reminder-bot/internal/datetime/delivery/http"
	dtUsecase "task-reminder-bot/internal/datetime/usecase"
	"task-reminder-bot/internal/httpserver"
	"task-reminder-bot/internal/reminder"
	tgDelivery "task-reminder-bot/internal/task/delivery/telegram"
	taskSQLite "task-reminder-bot/internal/task/repository/sqlite"
	"task-reminder-bot/internal/task/usecase"
	"task-reminder-bot/pkg/datemath"
	"task-reminder-bot/pkg/gcalendar"
	"task-reminder-bot/pkg/log"
	"task-reminder-bot/pkg/telegram"
)

// @title       Task Reminder Bot API
// @description Telegram task bot with Russian natural-language deadlines, reminders and Google Calendar sync.
// @version     1
// @host        localhost:8080
// @schemes     http
// @BasePath    /
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Task Reminder Bot...")
	logger.Infof(ctx, "Environment: %s, timezone: %s", cfg.Environment.Name, cfg.DateTime.Timezone)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(ctx, "Service stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	// 3. Date/time resolution
	var dmOpts []datemath.Option
	if cfg.DateTime.NLPFallback {
		dmOpts = append(dmOpts, datemath.WithNLPFallback())
	}
	dateMathParser, err := datemath.NewParser(cfg.DateTime.Timezone, dmOpts...)
	if err != nil {
		return err
	}

	// 4. Storage
	taskRepo, err := taskSQLite.New(cfg.Storage.SQLitePath, dateMathParser.Location())
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer taskRepo.Close()
	logger.Infof(ctx, "Task store: %s", cfg.Storage.SQLitePath)

	// 5. Google Calendar client (optional)
	var ucOpts []usecase.Option
	if cfg.GoogleCalendar.Enabled {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			ucOpts = append(ucOpts, usecase.WithCalendar(calendarClient, cfg.GoogleCalendar.CalendarID))
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	taskUC := usecase.New(logger, taskRepo, dateMathParser, ucOpts...)

	// 6. Date/time API
	datetimeUC, err := dtUsecase.New(logger, dateMathParser, prometheus.DefaultRegisterer, dmOpts...)
	if err != nil {
		return fmt.Errorf("datetime usecase: %w", err)
	}
	datetimeHandler := dtHTTP.New(logger, datetimeUC)

	// 7. Telegram (optional)
	var (
		telegramHandler tgDelivery.Handler
		dispatcher      *reminder.Dispatcher
	)
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, taskUC, telegramBot, dateMathParser, tgDelivery.Config{
			SecretToken:     cfg.Telegram.SecretToken,
			RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
			ConversationTTL: cfg.Telegram.ConversationTTL,
		})

		registerWebhook(ctx, logger, telegramBot, cfg.Telegram)

		if cfg.Reminder.Enabled {
			dispatcher = reminder.New(logger, taskUC, telegramBot, dateMathParser, reminder.Config{
				Interval:  cfg.Reminder.PollInterval,
				BatchSize: cfg.Reminder.BatchSize,
			})
		}
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Gatherer:        prometheus.DefaultGatherer,
		Readiness:       taskRepo.Ping,
		TelegramHandler: telegramHandler,
		DatetimeHandler: datetimeHandler,
	})
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	// 9. Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})
	if dispatcher != nil {
		g.Go(func() error {
			if err := dispatcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("reminder dispatcher: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// registerWebhook points Telegram at this service: the configured URL wins, otherwise an ngrok tunnel is looked up.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPI != "" {
		ngrokURL, err := newTunnelDetector().detect(ctx, cfg.NgrokAPI)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}

	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook not registered: no webhook_url and no ngrok tunnel")
		return
	}
	if err := bot.SetWebhook(ctx, webhookURL, cfg.SecretToken); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}
