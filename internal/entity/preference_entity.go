package entity

import (
	"time"

	"github.com/google/uuid"
)

type DesignPreferences struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	PreferredStyles  map[string]interface{}
	ColorPreferences map[string]interface{}
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
