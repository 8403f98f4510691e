package contract

import (
	"context"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	FindAllPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	FindPlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)

	CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error)
}
