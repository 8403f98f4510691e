package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id             uuid.UUID
	Name           string
	Price          int64
	BillingPeriod  string
	DailyRenderCap int
	IsActive       bool
	CreatedAt      time.Time
}

type UserSubscription struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                uuid.UUID
	Status                string
	PaymentStatus         string
	MidtransOrderId       string
	MidtransTransactionId *string
	ExpiresAt             *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Subscription status values.
const (
	SubscriptionPending  = "pending"
	SubscriptionActive   = "active"
	SubscriptionExpired  = "expired"
	SubscriptionCanceled = "canceled"
)

// Payment status values reported by the payment gateway.
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

func (s *UserSubscription) ActiveAt(now time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}
