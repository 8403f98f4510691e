package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DesignPreferences holds per-user style/color affinities consumed by the
// generation pipeline. At most one row per user (unique index on user_id).
// Both blobs are opaque JSON objects to this service.
type DesignPreferences struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	PreferredStyles  datatypes.JSON `gorm:"type:jsonb"`
	ColorPreferences datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (DesignPreferences) TableName() string {
	return "design_preferences"
}
