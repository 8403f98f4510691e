package contract

import (
	"context"
	"time"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Touch advances updated_at in a single UPDATE statement.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error

	// Archive sets is_archived. Idempotent; returns the number of rows
	// matched so callers can distinguish a missing chat.
	Archive(ctx context.Context, id uuid.UUID) (int64, error)
}
