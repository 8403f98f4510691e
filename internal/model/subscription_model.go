package model

import (
	"time"

	"github.com/google/uuid"
)

// Billing period values a plan can carry.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

type SubscriptionPlan struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Price           int64     `gorm:"not null"` // smallest currency unit
	BillingPeriod   string    `gorm:"type:varchar(20);not null;default:'monthly'"`
	DailyRenderCap  int       `gorm:"not null;default:10"`
	IsActive        bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type UserSubscription struct {
	Id                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId                uuid.UUID  `gorm:"type:uuid;not null"`
	Status                string     `gorm:"type:varchar(50);not null;default:'pending'"`
	PaymentStatus         string     `gorm:"type:varchar(50);not null;default:'pending'"`
	MidtransOrderId       string     `gorm:"type:varchar(100);uniqueIndex"`
	MidtransTransactionId *string    `gorm:"type:varchar(100)"`
	ExpiresAt             *time.Time
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
