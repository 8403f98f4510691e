package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title     *string `json:"title"`
	SpaceType *string `json:"space_type" validate:"omitempty,oneof=interior exterior"`
}

type CreateChatResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      *string   `json:"title"`
	SpaceType  *string   `json:"space_type"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      *string   `json:"title"`
	SpaceType  *string   `json:"space_type"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AppendMessageRequest struct {
	Role     string                 `json:"role" validate:"required,oneof=user assistant system"`
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

type MessageResponse struct {
	Id        uuid.UUID              `json:"id"`
	ChatId    uuid.UUID              `json:"chat_id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Images    []*ImageResponse       `json:"images,omitempty"`
}

// ListMessagesRequest pages through a chat in ledger order. Cursor is the seq
// of the last message seen; zero starts from the beginning.
type ListMessagesRequest struct {
	Cursor int64 `json:"cursor" validate:"gte=0"`
	Limit  int   `json:"limit" validate:"gte=0,lte=200"`
}

type ListMessagesResponse struct {
	Messages   []*MessageResponse `json:"messages"`
	NextCursor int64              `json:"next_cursor"`
	HasMore    bool               `json:"has_more"`
}
