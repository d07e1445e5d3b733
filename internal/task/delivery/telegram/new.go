package telegram

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"task-reminder-bot/internal/task"
	"task-reminder-bot/pkg/datemath"
	pkgLog "task-reminder-bot/pkg/log"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

const maxConversations = 10000

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config holds the webhook settings.
type Config struct {
	SecretToken     string        // Expected X-Telegram-Bot-Api-Secret-Token, empty disables the check
	RateLimitPerMin int           // Max messages per chat per minute, 0 disables limiting
	ConversationTTL time.Duration // How long an unfinished /add dialog survives
}

type handler struct {
	l        pkgLog.Logger
	uc       task.UseCase
	bot      pkgTelegram.Sender
	dateMath *datemath.Parser
	security *securityValidator
	convs    *expirable.LRU[int64, conversation]
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc task.UseCase,
	bot pkgTelegram.Sender,
	dateMath *datemath.Parser,
	cfg Config,
) Handler {
	ttl := cfg.ConversationTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &handler{
		l:        l,
		uc:       uc,
		bot:      bot,
		dateMath: dateMath,
		security: newSecurityValidator(cfg.SecretToken, cfg.RateLimitPerMin),
		convs:    expirable.NewLRU[int64, conversation](maxConversations, nil, ttl),
	}
}
