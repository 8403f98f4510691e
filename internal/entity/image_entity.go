package entity

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	Id                 uuid.UUID
	MessageId          uuid.UUID
	S3Bucket           string
	S3Key              string
	PresignedUrl       *string
	UrlExpiresAt       *time.Time
	ImageType          string
	Width              *int
	Height             *int
	FileSize           *int64
	MimeType           *string
	GenerationMetadata map[string]interface{}
	CreatedAt          time.Time
}

// URLValid reports whether the cached presigned URL can still be handed out
// at the given instant.
func (i *Image) URLValid(now time.Time) bool {
	return i.PresignedUrl != nil && i.UrlExpiresAt != nil && now.Before(*i.UrlExpiresAt)
}
