package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Image references a render produced by the generation pipeline. The binary
// lives in object storage; only bucket+key plus a short-lived presigned URL
// are kept here. S3Bucket and S3Key are immutable; PresignedUrl/UrlExpiresAt
// are the only fields updated after creation.
type Image struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	S3Bucket           string         `gorm:"type:varchar(255);not null"`
	S3Key              string         `gorm:"type:text;not null"`
	PresignedUrl       *string        `gorm:"type:text"`
	UrlExpiresAt       *time.Time
	ImageType          string         `gorm:"type:varchar(50);not null"`
	Width              *int
	Height             *int
	FileSize           *int64
	MimeType           *string        `gorm:"type:varchar(100)"`
	GenerationMetadata datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`

	Message Message `gorm:"foreignKey:MessageId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Image) TableName() string {
	return "images"
}
