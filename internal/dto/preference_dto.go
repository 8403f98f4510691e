package dto

import (
	"time"

	"github.com/google/uuid"
)

// PreferencePatch is shallow-merged into the stored blobs. Keys present here
// overwrite the stored keys; everything else is preserved. Content is opaque
// beyond being well-formed JSON objects.
type PreferencePatch struct {
	PreferredStyles  map[string]interface{} `json:"preferred_styles"`
	ColorPreferences map[string]interface{} `json:"color_preferences"`
}

type PreferencesResponse struct {
	Id               uuid.UUID              `json:"id"`
	PreferredStyles  map[string]interface{} `json:"preferred_styles"`
	ColorPreferences map[string]interface{} `json:"color_preferences"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}
