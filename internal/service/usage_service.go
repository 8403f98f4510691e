package service

import (
	"context"
	"fmt"
	"time"

	"ai-redesign-be/internal/pkg/apperr"
	"ai-redesign-be/internal/repository/specification"
	"ai-redesign-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type IUsageService interface {
	// ConsumeRenderCredit burns one unit of the user's daily render
	// allowance. Fails with a conflict once the cap is reached.
	ConsumeRenderCredit(ctx context.Context, userId uuid.UUID) error

	RemainingRenderCredits(ctx context.Context, userId uuid.UUID) (int, error)
}

type usageService struct {
	rdb        *redis.Client
	uowFactory unitofwork.RepositoryFactory
	freeCap    int
}

func NewUsageService(rdb *redis.Client, uowFactory unitofwork.RepositoryFactory, freeCap int) IUsageService {
	return &usageService{
		rdb:        rdb,
		uowFactory: uowFactory,
		freeCap:    freeCap,
	}
}

func usageKey(userId uuid.UUID, day time.Time) string {
	return fmt.Sprintf("usage:render:%s:%s", day.UTC().Format("2006-01-02"), userId)
}

func (s *usageService) dailyCap(ctx context.Context, userId uuid.UUID) int {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("status", "active"),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil || sub == nil || !sub.ActiveAt(time.Now()) {
		return s.freeCap
	}

	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil || plan == nil {
		return s.freeCap
	}
	return plan.DailyRenderCap
}

func (s *usageService) ConsumeRenderCredit(ctx context.Context, userId uuid.UUID) error {
	if s.rdb == nil {
		// Quota enforcement is best effort when Redis is down.
		return nil
	}

	cap := s.dailyCap(ctx, userId)
	key := usageKey(userId, time.Now())

	used, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return nil
	}
	if used == 1 {
		// First render of the day; the counter resets at midnight UTC.
		s.rdb.ExpireAt(ctx, key, time.Now().UTC().Truncate(24*time.Hour).Add(24*time.Hour))
	}

	if used > int64(cap) {
		return apperr.Conflict("daily render limit of %d reached", cap)
	}
	return nil
}

func (s *usageService) RemainingRenderCredits(ctx context.Context, userId uuid.UUID) (int, error) {
	cap := s.dailyCap(ctx, userId)
	if s.rdb == nil {
		return cap, nil
	}

	used, err := s.rdb.Get(ctx, usageKey(userId, time.Now())).Int()
	if err != nil && err != redis.Nil {
		return 0, err
	}

	remaining := cap - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
