// internal/models/chat.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage belongs to the thread keyed by the customer's id regardless of
// who sent it; conversations are derived by grouping, not stored.
type ChatMessage struct {
	BaseModel
	UserID uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Sender ChatSender `json:"sender" gorm:"type:varchar(10);not null"`
	Text   string     `json:"text" gorm:"type:text;not null"`
	Read   bool       `json:"read" gorm:"default:false"`
	ReadAt *time.Time `json:"read_at,omitempty"`
}

// Conversation is the derived per-customer summary the admin inbox shows.
type Conversation struct {
	UserID      uuid.UUID   `json:"user_id"`
	UserName    string      `json:"user_name,omitempty"`
	LastMessage ChatMessage `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}
