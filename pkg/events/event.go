package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.message_appended").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes.
const (
	TypeChatCreated     = "chat.created"
	TypeChatArchived    = "chat.archived"
	TypeMessageAppended = "chat.message_appended"
	TypeImageAttached   = "image.attached"

	// Published by the generation pipeline, consumed here.
	TypeGenerationCompleted = "generation.completed"
)

func NewChatCreated(chatId, userId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeChatCreated,
		Data: map[string]interface{}{
			"chat_id": chatId.String(),
			"user_id": userId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewChatArchived(chatId, userId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeChatArchived,
		Data: map[string]interface{}{
			"chat_id": chatId.String(),
			"user_id": userId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageAppended(chatId, messageId, userId uuid.UUID, role string) Event {
	return BaseEvent{
		Type: TypeMessageAppended,
		Data: map[string]interface{}{
			"chat_id":    chatId.String(),
			"message_id": messageId.String(),
			"user_id":    userId.String(),
			"role":       role,
		},
		OccurredAt: time.Now(),
	}
}

func NewImageAttached(imageId, messageId uuid.UUID, imageType string) Event {
	return BaseEvent{
		Type: TypeImageAttached,
		Data: map[string]interface{}{
			"image_id":   imageId.String(),
			"message_id": messageId.String(),
			"image_type": imageType,
		},
		OccurredAt: time.Now(),
	}
}
