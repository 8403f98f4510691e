package mapper

import (
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:             p.Id,
		Name:           p.Name,
		Price:          p.Price,
		BillingPeriod:  p.BillingPeriod,
		DailyRenderCap: p.DailyRenderCap,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                s.Status,
		PaymentStatus:         s.PaymentStatus,
		MidtransOrderId:       s.MidtransOrderId,
		MidtransTransactionId: s.MidtransTransactionId,
		ExpiresAt:             s.ExpiresAt,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                s.Status,
		PaymentStatus:         s.PaymentStatus,
		MidtransOrderId:       s.MidtransOrderId,
		MidtransTransactionId: s.MidtransTransactionId,
		ExpiresAt:             s.ExpiresAt,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}
