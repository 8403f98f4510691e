package contract

import (
	"context"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/repository/specification"
)

type PreferenceRepository interface {
	// CreateIfAbsent inserts unless a row for the user already exists
	// (ON CONFLICT (user_id) DO NOTHING). Returns false when the insert
	// was skipped because of the unique constraint.
	CreateIfAbsent(ctx context.Context, prefs *entity.DesignPreferences) (bool, error)

	Update(ctx context.Context, prefs *entity.DesignPreferences) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DesignPreferences, error)
}
