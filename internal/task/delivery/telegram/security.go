package telegram

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// securityValidator validates webhook requests.
type securityValidator struct {
	secret      string
	rateLimiter *rateLimiter
}

func newSecurityValidator(secret string, requestsPerMin int) *securityValidator {
	v := &securityValidator{secret: secret}
	if requestsPerMin > 0 {
		v.rateLimiter = newRateLimiter(requestsPerMin)
	}
	return v
}

// validateSecret compares the header Telegram sends with the secret registered via setWebhook.
func (v *securityValidator) validateSecret(token string) error {
	if v.secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.secret)) != 1 {
		return fmt.Errorf("invalid secret token")
	}
	return nil
}

// checkRateLimit enforces the per-chat message budget.
func (v *securityValidator) checkRateLimit(chatID int64) error {
	if v.rateLimiter == nil {
		return nil
	}
	return v.rateLimiter.Allow(chatID)
}

// rateLimiter keeps one token bucket per chat; idle chats fall out of the cache.
type rateLimiter struct {
	limiters *expirable.LRU[int64, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[int64, *rate.Limiter](
			1000,          // Max 1000 active chats
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(chatID int64) error {
	limiter, ok := rl.limiters.Get(chatID)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(chatID, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for chat %d", chatID)
	}
	return nil
}
