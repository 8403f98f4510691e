package contract

import (
	"context"
	"time"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Image, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Image, error)

	// UpdateAccessURL persists a refreshed presigned URL and expiry. These
	// are the only mutable image fields; last writer wins under races.
	UpdateAccessURL(ctx context.Context, id uuid.UUID, url string, expiresAt time.Time) error
}
