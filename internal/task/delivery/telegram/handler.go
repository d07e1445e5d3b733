package telegram

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	pkgLog "task-reminder-bot/pkg/log"
	pkgResponse "task-reminder-bot/pkg/response"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

const processTimeout = 20 * time.Second

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// Telegram retries any non-2xx answer, so dropped and rate-limited updates are still acknowledged with 200.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.validateSecret(c.GetHeader(pkgTelegram.SecretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edited messages, channel posts, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	if err := h.security.checkRateLimit(msg.Chat.ID); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		pkgResponse.OK(c, map[string]string{"status": "rate_limited"})
		return
	}

	// the reply must not be cut off when Telegram closes the webhook request
	procCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), processTimeout)
	defer cancel()
	procCtx = pkgLog.WithFields(procCtx, "chat_id", msg.Chat.ID, "update_id", update.UpdateID)

	if err := h.processMessage(procCtx, msg); err != nil {
		h.l.Errorf(procCtx, "telegram handler: processMessage failed: %v", err)
	}

	pkgResponse.OK(c, map[string]string{"status": "processed"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	chatID := msg.Chat.ID
	if text == "" {
		if msg.Voice != nil {
			return h.reply(ctx, chatID, msgVoiceUnsupported)
		}
		return nil
	}

	var from pkgTelegram.User
	if msg.From != nil {
		from = *msg.From
	}
	sc := model.NewTelegramScope(chatID, from.ID, from.Username)

	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start", "/help":
		h.endConversation(chatID)
		return h.reply(ctx, chatID, msgHelp)
	case "/cancel":
		h.endConversation(chatID)
		return h.reply(ctx, chatID, msgCancelled)
	case "/add":
		if arg == "" {
			h.setStep(chatID, stepAwaitTitle, "")
			return h.reply(ctx, chatID, msgAskTitle)
		}
		return h.handleTitle(ctx, sc, arg)
	case "/list":
		h.endConversation(chatID)
		return h.handleList(ctx, sc)
	case "/done":
		h.endConversation(chatID)
		return h.handleDone(ctx, sc, arg)
	case "/skip":
		return h.handleSkip(ctx, sc)
	}
	if strings.HasPrefix(cmd, "/") {
		return h.reply(ctx, chatID, msgUnknownCommand)
	}

	conv, ok := h.conversation(chatID)
	if !ok {
		// plain text outside a dialog is a quick add
		return h.handleTitle(ctx, sc, text)
	}

	switch conv.step {
	case stepAwaitDeadline:
		return h.handleDeadline(ctx, sc, conv.taskID, text)
	case stepAwaitReminder:
		return h.handleReminder(ctx, sc, conv.taskID, text)
	default:
		return h.handleTitle(ctx, sc, text)
	}
}

func (h *handler) handleTitle(ctx context.Context, sc model.Scope, text string) error {
	out, err := h.uc.Create(ctx, sc, task.CreateInput{Text: text})
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: uc.Create: %v", err)
		return h.reply(ctx, sc.ChatID, errorMessage(err))
	}

	reply := h.presentCreated(out)
	if out.Task.Deadline == nil {
		h.setStep(sc.ChatID, stepAwaitDeadline, out.Task.ID)
		return h.reply(ctx, sc.ChatID, reply+"\n\n"+msgAskDeadline)
	}
	h.setStep(sc.ChatID, stepAwaitReminder, out.Task.ID)
	return h.reply(ctx, sc.ChatID, reply+"\n\n"+msgAskReminder)
}

func (h *handler) handleDeadline(ctx context.Context, sc model.Scope, taskID, text string) error {
	t, err := h.uc.SetDeadline(ctx, sc, task.SetDeadlineInput{TaskID: taskID, Text: text})
	if err != nil {
		h.l.Debugf(ctx, "telegram handler: uc.SetDeadline: %v", err)
		if isFatal(err) {
			h.endConversation(sc.ChatID)
		}
		return h.reply(ctx, sc.ChatID, errorMessage(err))
	}

	h.setStep(sc.ChatID, stepAwaitReminder, taskID)
	return h.reply(ctx, sc.ChatID, "Дедлайн: "+h.formatDeadline(*t.Deadline)+"\n\n"+msgAskReminder)
}

func (h *handler) handleReminder(ctx context.Context, sc model.Scope, taskID, text string) error {
	t, err := h.uc.SetReminder(ctx, sc, task.SetReminderInput{TaskID: taskID, Text: text})
	if err != nil {
		h.l.Debugf(ctx, "telegram handler: uc.SetReminder: %v", err)
		if isFatal(err) {
			h.endConversation(sc.ChatID)
		}
		return h.reply(ctx, sc.ChatID, errorMessage(err))
	}

	h.endConversation(sc.ChatID)
	return h.reply(ctx, sc.ChatID, "Напоминание: "+h.formatReminder(*t.Reminder)+"\n"+msgDone)
}

func (h *handler) handleSkip(ctx context.Context, sc model.Scope) error {
	conv, ok := h.conversation(sc.ChatID)
	if !ok {
		return h.reply(ctx, sc.ChatID, msgNothingToSkip)
	}
	switch conv.step {
	case stepAwaitDeadline:
		h.setStep(sc.ChatID, stepAwaitReminder, conv.taskID)
		return h.reply(ctx, sc.ChatID, msgAskReminder)
	case stepAwaitReminder:
		h.endConversation(sc.ChatID)
		return h.reply(ctx, sc.ChatID, msgDone)
	default:
		return h.reply(ctx, sc.ChatID, msgAskTitle)
	}
}

func (h *handler) handleList(ctx context.Context, sc model.Scope) error {
	tasks, err := h.uc.List(ctx, sc, task.ListInput{})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: uc.List: %v", err)
		return h.reply(ctx, sc.ChatID, errorMessage(err))
	}
	return h.reply(ctx, sc.ChatID, h.presentList(tasks))
}

func (h *handler) handleDone(ctx context.Context, sc model.Scope, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return h.reply(ctx, sc.ChatID, msgDoneUsage)
	}
	t, err := h.uc.Complete(ctx, sc, task.CompleteInput{Position: n})
	if err != nil {
		h.l.Debugf(ctx, "telegram handler: uc.Complete: %v", err)
		return h.reply(ctx, sc.ChatID, errorMessage(err))
	}
	return h.reply(ctx, sc.ChatID, "✅ Выполнено: "+t.Title)
}

func (h *handler) reply(ctx context.Context, chatID int64, text string) error {
	return h.bot.SendMessage(ctx, chatID, text)
}

// splitCommand separates "/add@my_bot купить хлеб" into "/add" and "купить хлеб".
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, arg, _ := strings.Cut(text, " ")
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
