package contract

import (
	"context"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/repository/specification"
)

// MessageRepository is append-only: the ledger exposes no update or delete.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
