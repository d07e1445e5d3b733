package reminder

import (
	"context"
	"fmt"
	"time"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/pkg/datemath"
	pkgLog "task-reminder-bot/pkg/log"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

// Config controls the polling loop.
type Config struct {
	Interval  time.Duration
	BatchSize int
}

// Dispatcher polls for due reminders and delivers them to Telegram.
type Dispatcher struct {
	l        pkgLog.Logger
	uc       task.UseCase
	bot      pkgTelegram.Sender
	dateMath *datemath.Parser
	cfg      Config
}

// New creates a reminder Dispatcher.
func New(l pkgLog.Logger, uc task.UseCase, bot pkgTelegram.Sender, dateMath *datemath.Parser, cfg Config) *Dispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Dispatcher{l: l, uc: uc, bot: bot, dateMath: dateMath, cfg: cfg}
}

// Run blocks until ctx is cancelled, checking for due reminders every interval.
func (d *Dispatcher) Run(ctx context.Context) error {
	t := time.NewTicker(d.cfg.Interval)
	defer t.Stop()

	d.l.Infof(ctx, "reminder dispatcher started, interval=%s", d.cfg.Interval)

	// kick immediately
	d.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			d.l.Info(ctx, "reminder dispatcher stopped")
			return ctx.Err()
		case <-t.C:
			d.Tick(ctx)
		}
	}
}

// Tick delivers one batch of due reminders and returns how many were sent.
// A reminder that fails to send stays unsent and is retried on the next tick.
func (d *Dispatcher) Tick(ctx context.Context) int {
	now := d.dateMath.Now()
	due, err := d.uc.DueReminders(ctx, now, d.cfg.BatchSize)
	if err != nil {
		d.l.Errorf(ctx, "reminder: due reminders query failed: %v", err)
		return 0
	}

	sent := 0
	for _, t := range due {
		if ctx.Err() != nil {
			break
		}
		if err := d.bot.SendMessage(ctx, t.ChatID, d.message(t, now)); err != nil {
			d.l.Warnf(ctx, "reminder: send to chat %d failed for task %s: %v", t.ChatID, t.ID, err)
			continue
		}
		if err := d.uc.MarkReminded(ctx, t.ID); err != nil {
			d.l.Errorf(ctx, "reminder: mark task %s failed: %v", t.ID, err)
			continue
		}
		sent++
	}
	if sent > 0 {
		d.l.Infof(ctx, "reminder: delivered %d of %d", sent, len(due))
	}
	return sent
}

func (d *Dispatcher) message(t model.Task, now time.Time) string {
	msg := "🔔 Напоминание: " + t.Title
	if t.Deadline != nil {
		msg += fmt.Sprintf("\nДедлайн: %s", datemath.FormatDeadline(*t.Deadline, now))
	}
	return msg
}
