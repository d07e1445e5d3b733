package model

import "fmt"

// Scope identifies who is acting on the service.
type Scope struct {
	ChatID   int64
	UserID   string
	Username string
}

// NewTelegramScope builds the scope for a Telegram chat.
func NewTelegramScope(chatID, userID int64, username string) Scope {
	return Scope{
		ChatID:   chatID,
		UserID:   fmt.Sprintf("telegram_%d", userID),
		Username: username,
	}
}
