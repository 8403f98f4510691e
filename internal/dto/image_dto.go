package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachImageRequest struct {
	MessageId          uuid.UUID              `json:"message_id" validate:"required"`
	S3Bucket           string                 `json:"s3_bucket" validate:"required"`
	S3Key              string                 `json:"s3_key" validate:"required"`
	ImageType          string                 `json:"image_type" validate:"required"`
	Width              *int                   `json:"width"`
	Height             *int                   `json:"height"`
	FileSize           *int64                 `json:"file_size"`
	MimeType           *string                `json:"mime_type"`
	GenerationMetadata map[string]interface{} `json:"generation_metadata"`
}

type ImageResponse struct {
	Id        uuid.UUID `json:"id"`
	MessageId uuid.UUID `json:"message_id"`
	ImageType string    `json:"image_type"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	FileSize  *int64    `json:"file_size,omitempty"`
	MimeType  *string   `json:"mime_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AccessURLResponse struct {
	Id        uuid.UUID `json:"id"`
	Url       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RenderCompletedMessage is the payload the generation pipeline publishes on
// the event bus when a render finishes uploading.
type RenderCompletedMessage struct {
	MessageId          uuid.UUID              `json:"message_id"`
	S3Bucket           string                 `json:"s3_bucket"`
	S3Key              string                 `json:"s3_key"`
	ImageType          string                 `json:"image_type"`
	Width              *int                   `json:"width,omitempty"`
	Height             *int                   `json:"height,omitempty"`
	FileSize           *int64                 `json:"file_size,omitempty"`
	MimeType           *string                `json:"mime_type,omitempty"`
	GenerationMetadata map[string]interface{} `json:"generation_metadata,omitempty"`
}
