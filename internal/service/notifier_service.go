package service

import (
	"context"
	"encoding/json"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/pkg/logger"
	"ai-redesign-be/internal/pkg/mailer"
	"ai-redesign-be/internal/repository/specification"
	"ai-redesign-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// RenderDelivery pushes real-time updates to a user's live connections.
// Implemented by the websocket hub.
type RenderDelivery interface {
	SendToUser(userID uuid.UUID, notification dto.RenderReadyNotification)
}

type INotifierService interface {
	Consume(ctx context.Context) error
}

// notifierService turns attached renders into user-facing notifications: a
// websocket push plus a best-effort email, both carrying a fresh access URL.
type notifierService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	imageService IImageService
	delivery     RenderDelivery
	mail         mailer.IEmailService
	log          logger.ILogger
}

func NewNotifierService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	imageService IImageService,
	delivery RenderDelivery,
	mail mailer.IEmailService,
	log logger.ILogger,
) INotifierService {
	return &notifierService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		imageService: imageService,
		delivery:     delivery,
		mail:         mail,
		log:          log,
	}
}

func (ns *notifierService) Consume(ctx context.Context) error {
	messages, err := ns.pubSub.Subscribe(ctx, ns.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ns.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ns *notifierService) processMessage(ctx context.Context, msg *message.Message) {
	var payload RenderNotifyPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ns.log.Error("NotifierService", "failed to unmarshal notify payload", map[string]interface{}{"error": err.Error()})
		// Malformed payloads are acked to stop infinite redelivery.
		msg.Ack()
		return
	}

	uow := ns.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: payload.MessageId})
	if err != nil {
		ns.log.Error("NotifierService", "failed to load message", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if message == nil {
		msg.Ack()
		return
	}

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: message.ChatId})
	if err != nil {
		ns.log.Error("NotifierService", "failed to load chat", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if chat == nil {
		msg.Ack()
		return
	}

	notif := dto.RenderReadyNotification{
		ImageId:   payload.ImageId,
		MessageId: payload.MessageId,
		ChatId:    chat.Id,
		CreatedAt: message.CreatedAt,
	}
	if chat.Title != nil {
		notif.ChatTitle = *chat.Title
	}

	// Resolving through the read path warms the URL cache as a side effect.
	access, err := ns.imageService.ResolveAccessURL(ctx, chat.UserId, payload.ImageId)
	if err != nil {
		ns.log.Warn("NotifierService", "could not resolve access url for notification", map[string]interface{}{
			"image_id": payload.ImageId,
			"error":    err.Error(),
		})
	} else {
		notif.Url = access.Url
		notif.ExpiresAt = &access.ExpiresAt
	}

	if ns.delivery != nil {
		ns.delivery.SendToUser(chat.UserId, notif)
	}

	if ns.mail != nil && notif.Url != "" {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: chat.UserId})
		if err == nil && user != nil {
			if err := ns.mail.SendRenderReady(user.Email, notif.ChatTitle, notif.Url); err != nil {
				ns.log.Warn("NotifierService", "render ready email failed", map[string]interface{}{
					"user_id": chat.UserId,
					"error":   err.Error(),
				})
			}
		}
	}

	msg.Ack()
}
