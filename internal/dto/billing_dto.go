package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Price          int64     `json:"price"`
	BillingPeriod  string    `json:"billing_period"`
	DailyRenderCap int       `json:"daily_render_cap"`
}

type CheckoutRequest struct {
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectUrl string `json:"redirect_url"`
}

type SubscriptionStatusResponse struct {
	Active         bool       `json:"active"`
	PlanName       string     `json:"plan_name,omitempty"`
	DailyRenderCap int        `json:"daily_render_cap"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// MidtransWebhookRequest mirrors the notification payload the gateway posts.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
}
