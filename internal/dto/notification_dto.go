package dto

import (
	"time"

	"github.com/google/uuid"
)

// RenderReadyNotification is pushed to connected clients when a render
// finishes and its access URL has been resolved.
type RenderReadyNotification struct {
	ImageId   uuid.UUID  `json:"image_id"`
	MessageId uuid.UUID  `json:"message_id"`
	ChatId    uuid.UUID  `json:"chat_id"`
	ChatTitle string     `json:"chat_title,omitempty"`
	Url       string     `json:"url,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
