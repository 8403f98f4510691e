package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/model"
	"ai-redesign-be/internal/pkg/apperr"
	"ai-redesign-be/internal/pkg/logger"
	"ai-redesign-be/internal/repository/specification"
	"ai-redesign-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	serverKey  string
	production bool
	clientURL  string
	freeCap    int
	log        logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, serverKey string, production bool, clientURL string, freeCap int, log logger.ILogger) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		serverKey:  serverKey,
		production: production,
		clientURL:  clientURL,
		freeCap:    freeCap,
		log:        log,
	}
}

func (s *paymentService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, &dto.PlanResponse{
			Id:             p.Id,
			Name:           p.Name,
			Price:          p.Price,
			BillingPeriod:  p.BillingPeriod,
			DailyRenderCap: p.DailyRenderCap,
		})
	}
	return res, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("plan %s not found", req.PlanId)
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Validation("user %s does not exist", userId)
	}

	now := time.Now()
	sub := &entity.UserSubscription{
		Id:              uuid.New(),
		UserId:          userId,
		PlanId:          plan.Id,
		Status:          entity.SubscriptionPending,
		PaymentStatus:   entity.PaymentPending,
		MidtransOrderId: uuid.NewString(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// External gateway call happens after commit so a gateway failure never
	// leaves a dangling transaction.
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.production {
		env = midtrans.Production
	}
	sClient.New(s.serverKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  sub.MidtransOrderId,
			GrossAmt: plan.Price,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/app?payment=success", s.clientURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: plan.Price,
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		OrderId:     sub.MidtransOrderId,
		SnapToken:   snapResp.Token,
		RedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if s.serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("PaymentService", "webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return apperr.Validation("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.Filter("midtrans_order_id", req.OrderId),
	)
	if err != nil {
		return err
	}
	if sub == nil {
		return apperr.NotFound("subscription for order %s not found", req.OrderId)
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if sub.Status == entity.SubscriptionActive {
			// Gateway retries the notification, activation is idempotent.
			return nil
		}
		sub.Status = entity.SubscriptionActive
		sub.PaymentStatus = entity.PaymentSuccess
		expires := periodEnd(time.Now(), s.planBillingPeriod(ctx, uow, sub.PlanId))
		sub.ExpiresAt = &expires
	case "deny", "cancel", "expire", "failure":
		sub.Status = entity.SubscriptionCanceled
		sub.PaymentStatus = entity.PaymentFailed
	case "pending":
		sub.PaymentStatus = entity.PaymentPending
	default:
		s.log.Warn("PaymentService", "unhandled transaction status", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}

	if req.TransactionId != "" {
		sub.MidtransTransactionId = &req.TransactionId
	}
	sub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.log.Info("PaymentService", "webhook processed", map[string]interface{}{
		"order_id": req.OrderId,
		"status":   sub.Status,
	})
	return nil
}

func (s *paymentService) GetSubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("status", entity.SubscriptionActive),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil || !sub.ActiveAt(time.Now()) {
		return &dto.SubscriptionStatusResponse{
			Active:         false,
			DailyRenderCap: s.freeCap,
		}, nil
	}

	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}

	res := &dto.SubscriptionStatusResponse{
		Active:    true,
		ExpiresAt: sub.ExpiresAt,
	}
	if plan != nil {
		res.PlanName = plan.Name
		res.DailyRenderCap = plan.DailyRenderCap
	}
	return res, nil
}

func (s *paymentService) planBillingPeriod(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) string {
	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.ByID{ID: planId})
	if err != nil || plan == nil {
		return model.BillingMonthly
	}
	return plan.BillingPeriod
}

func periodEnd(from time.Time, billingPeriod string) time.Time {
	if billingPeriod == model.BillingYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}
