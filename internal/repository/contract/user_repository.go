package contract

import (
	"context"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/repository/specification"
)

// UserRepository is read-only: accounts are owned by the identity provider.
type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
