package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/model"
	"ai-redesign-be/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-test"

func newPaymentFixture(t *testing.T) (*memStore, IPaymentService, uuid.UUID) {
	t.Helper()
	store := newMemStore()
	userId := uuid.New()
	store.addUser(&entity.User{Id: userId, Email: "payer@example.com", FullName: "Payer"})
	store.plans = append(store.plans, &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           "Pro Monthly",
		Price:          99000,
		BillingPeriod:  model.BillingMonthly,
		DailyRenderCap: 50,
		IsActive:       true,
	})
	svc := NewPaymentService(newMemFactory(store), testServerKey, false, "http://localhost:5173", 5, nopLogger{})
	return store, svc, userId
}

func webhookSignature(orderId, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + testServerKey))
	return fmt.Sprintf("%x", sum)
}

func TestGetPlans(t *testing.T) {
	_, svc, _ := newPaymentFixture(t)

	plans, err := svc.GetPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Pro Monthly", plans[0].Name)
	assert.Equal(t, 50, plans[0].DailyRenderCap)
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	store, svc, userId := newPaymentFixture(t)

	sub := &entity.UserSubscription{
		Id:              uuid.New(),
		UserId:          userId,
		PlanId:          store.plans[0].Id,
		Status:          entity.SubscriptionPending,
		PaymentStatus:   entity.PaymentPending,
		MidtransOrderId: uuid.NewString(),
	}
	store.subs = append(store.subs, sub)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           sub.MidtransOrderId,
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		SignatureKey:      "forged",
		TransactionStatus: "settlement",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, entity.SubscriptionPending, store.subs[0].Status)
}

func TestHandleNotificationSettlementActivates(t *testing.T) {
	store, svc, userId := newPaymentFixture(t)

	sub := &entity.UserSubscription{
		Id:              uuid.New(),
		UserId:          userId,
		PlanId:          store.plans[0].Id,
		Status:          entity.SubscriptionPending,
		PaymentStatus:   entity.PaymentPending,
		MidtransOrderId: uuid.NewString(),
		CreatedAt:       time.Now(),
	}
	store.subs = append(store.subs, sub)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           sub.MidtransOrderId,
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		SignatureKey:      webhookSignature(sub.MidtransOrderId, "200", "99000.00"),
		TransactionStatus: "settlement",
		TransactionId:     "trx-123",
	})
	require.NoError(t, err)

	updated := store.subs[0]
	assert.Equal(t, entity.SubscriptionActive, updated.Status)
	assert.Equal(t, entity.PaymentSuccess, updated.PaymentStatus)
	require.NotNil(t, updated.ExpiresAt)
	assert.True(t, updated.ExpiresAt.After(time.Now()))
	require.NotNil(t, updated.MidtransTransactionId)
	assert.Equal(t, "trx-123", *updated.MidtransTransactionId)
}

func TestHandleNotificationYearlyPlanExpiry(t *testing.T) {
	store, svc, userId := newPaymentFixture(t)

	yearly := &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           "Pro Yearly",
		Price:          990000,
		BillingPeriod:  model.BillingYearly,
		DailyRenderCap: 50,
		IsActive:       true,
	}
	store.plans = append(store.plans, yearly)

	sub := &entity.UserSubscription{
		Id:              uuid.New(),
		UserId:          userId,
		PlanId:          yearly.Id,
		Status:          entity.SubscriptionPending,
		PaymentStatus:   entity.PaymentPending,
		MidtransOrderId: uuid.NewString(),
		CreatedAt:       time.Now(),
	}
	store.subs = append(store.subs, sub)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           sub.MidtransOrderId,
		StatusCode:        "200",
		GrossAmount:       "990000.00",
		SignatureKey:      webhookSignature(sub.MidtransOrderId, "200", "990000.00"),
		TransactionStatus: "settlement",
		TransactionId:     "trx-456",
	})
	require.NoError(t, err)

	updated := store.subs[0]
	require.NotNil(t, updated.ExpiresAt)
	assert.True(t, updated.ExpiresAt.After(time.Now().AddDate(0, 11, 0)),
		"a yearly plan must extend the subscription by a full year")
}

func TestHandleNotificationFailureCancels(t *testing.T) {
	store, svc, userId := newPaymentFixture(t)

	sub := &entity.UserSubscription{
		Id:              uuid.New(),
		UserId:          userId,
		PlanId:          store.plans[0].Id,
		Status:          entity.SubscriptionPending,
		PaymentStatus:   entity.PaymentPending,
		MidtransOrderId: uuid.NewString(),
	}
	store.subs = append(store.subs, sub)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           sub.MidtransOrderId,
		StatusCode:        "202",
		GrossAmount:       "99000.00",
		SignatureKey:      webhookSignature(sub.MidtransOrderId, "202", "99000.00"),
		TransactionStatus: "expire",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionCanceled, store.subs[0].Status)
	assert.Equal(t, entity.PaymentFailed, store.subs[0].PaymentStatus)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	_, svc, _ := newPaymentFixture(t)

	orderId := uuid.NewString()
	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		SignatureKey:      webhookSignature(orderId, "200", "99000.00"),
		TransactionStatus: "settlement",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetSubscriptionStatus(t *testing.T) {
	store, svc, userId := newPaymentFixture(t)
	ctx := context.Background()

	// Without a subscription the free cap applies.
	status, err := svc.GetSubscriptionStatus(ctx, userId)
	require.NoError(t, err)
	assert.False(t, status.Active)
	assert.Equal(t, 5, status.DailyRenderCap)

	expires := time.Now().Add(30 * 24 * time.Hour)
	store.subs = append(store.subs, &entity.UserSubscription{
		Id:        uuid.New(),
		UserId:    userId,
		PlanId:    store.plans[0].Id,
		Status:    entity.SubscriptionActive,
		ExpiresAt: &expires,
		CreatedAt: time.Now(),
	})

	status, err = svc.GetSubscriptionStatus(ctx, userId)
	require.NoError(t, err)
	assert.True(t, status.Active)
	assert.Equal(t, "Pro Monthly", status.PlanName)
	assert.Equal(t, 50, status.DailyRenderCap)
}

func TestGetSubscriptionStatusExpired(t *testing.T) {
	store, svc, userId := newPaymentFixture(t)

	expired := time.Now().Add(-time.Hour)
	store.subs = append(store.subs, &entity.UserSubscription{
		Id:        uuid.New(),
		UserId:    userId,
		PlanId:    store.plans[0].Id,
		Status:    entity.SubscriptionActive,
		ExpiresAt: &expired,
		CreatedAt: time.Now(),
	})

	status, err := svc.GetSubscriptionStatus(context.Background(), userId)
	require.NoError(t, err)
	assert.False(t, status.Active)
	assert.Equal(t, 5, status.DailyRenderCap)
}
