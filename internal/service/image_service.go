package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/pkg/apperr"
	"ai-redesign-be/internal/pkg/logger"
	"ai-redesign-be/internal/repository/specification"
	"ai-redesign-be/internal/repository/unitofwork"
	"ai-redesign-be/pkg/events"
	pktNats "ai-redesign-be/pkg/nats"
	"ai-redesign-be/pkg/objectstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IImageService interface {
	Attach(ctx context.Context, req *dto.AttachImageRequest) (*dto.ImageResponse, error)
	ResolveAccessURL(ctx context.Context, userId, imageId uuid.UUID) (*dto.AccessURLResponse, error)
}

// RenderNotifyPayload travels over the in-process bus from attach to the
// notification fanout.
type RenderNotifyPayload struct {
	ImageId   uuid.UUID `json:"image_id"`
	MessageId uuid.UUID `json:"message_id"`
}

type imageService struct {
	uowFactory     unitofwork.RepositoryFactory
	signer         objectstore.Signer
	signedURLTTL   time.Duration
	urlCache       *cache.Cache
	pubSub         *gochannel.GoChannel
	notifyTopic    string
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
	now            func() time.Time
}

func NewImageService(
	uowFactory unitofwork.RepositoryFactory,
	signer objectstore.Signer,
	signedURLTTL time.Duration,
	pubSub *gochannel.GoChannel,
	notifyTopic string,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IImageService {
	return &imageService{
		uowFactory:     uowFactory,
		signer:         signer,
		signedURLTTL:   signedURLTTL,
		urlCache:       cache.New(signedURLTTL, 10*time.Minute),
		pubSub:         pubSub,
		notifyTopic:    notifyTopic,
		eventPublisher: eventPublisher,
		log:            log,
		now:            time.Now,
	}
}

func (s *imageService) Attach(ctx context.Context, req *dto.AttachImageRequest) (*dto.ImageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: req.MessageId})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperr.NotFound("message %s not found", req.MessageId)
	}

	img := entity.Image{
		Id:                 uuid.New(),
		MessageId:          req.MessageId,
		S3Bucket:           req.S3Bucket,
		S3Key:              req.S3Key,
		ImageType:          req.ImageType,
		Width:              req.Width,
		Height:             req.Height,
		FileSize:           req.FileSize,
		MimeType:           req.MimeType,
		GenerationMetadata: req.GenerationMetadata,
		CreatedAt:          s.now(),
	}

	if err := uow.ImageRepository().Create(ctx, &img); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewImageAttached(img.Id, img.MessageId, img.ImageType)); err != nil {
			s.log.Warn("ImageService", "failed to publish image.attached", map[string]interface{}{"error": err.Error()})
		}
	}
	s.notify(img.Id, img.MessageId)

	return imageToResponse(&img), nil
}

func (s *imageService) ResolveAccessURL(ctx context.Context, userId, imageId uuid.UUID) (*dto.AccessURLResponse, error) {
	// Hot path: a process-local cache in front of the row. Entries are keyed
	// per caller so a warm cache never leaks a URL across users. Both levels
	// honor the expiry; a stale entry is never handed out.
	if cached, found := s.urlCache.Get(urlCacheKey(userId, imageId)); found {
		res := cached.(*dto.AccessURLResponse)
		if s.now().Before(res.ExpiresAt) {
			return res, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	img, err := s.findOwnedImage(ctx, uow, userId, imageId)
	if err != nil {
		return nil, err
	}

	if img.URLValid(s.now()) {
		res := &dto.AccessURLResponse{Id: img.Id, Url: *img.PresignedUrl, ExpiresAt: *img.UrlExpiresAt}
		s.cacheURL(userId, res)
		return res, nil
	}

	// Cache fill: this read path writes the refreshed URL back to the row.
	// Concurrent refreshes race benignly; any validly signed URL works.
	signed, err := s.signer.SignURL(ctx, img.S3Bucket, img.S3Key, s.signedURLTTL)
	if err != nil {
		return nil, apperr.ArtifactUnavailable("render object cannot be accessed", err)
	}

	if err := uow.ImageRepository().UpdateAccessURL(ctx, img.Id, signed.URL, signed.ExpiresAt); err != nil {
		return nil, err
	}

	res := &dto.AccessURLResponse{Id: img.Id, Url: signed.URL, ExpiresAt: signed.ExpiresAt}
	s.cacheURL(userId, res)
	return res, nil
}

func (s *imageService) findOwnedImage(ctx context.Context, uow unitofwork.UnitOfWork, userId, imageId uuid.UUID) (*entity.Image, error) {
	img, err := uow.ImageRepository().FindOne(ctx, specification.ByID{ID: imageId})
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, apperr.NotFound("image %s not found", imageId)
	}

	msg, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: img.MessageId})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperr.NotFound("image %s not found", imageId)
	}

	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: msg.ChatId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.NotFound("image %s not found", imageId)
	}
	return img, nil
}

func (s *imageService) cacheURL(userId uuid.UUID, res *dto.AccessURLResponse) {
	ttl := res.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	s.urlCache.Set(urlCacheKey(userId, res.Id), res, ttl)
}

func urlCacheKey(userId, imageId uuid.UUID) string {
	return userId.String() + ":" + imageId.String()
}

func (s *imageService) notify(imageId, messageId uuid.UUID) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(RenderNotifyPayload{ImageId: imageId, MessageId: messageId})
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(s.notifyTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.log.Warn("ImageService", "failed to publish render notification", map[string]interface{}{"error": err.Error()})
	}
}

func imageToResponse(img *entity.Image) *dto.ImageResponse {
	return &dto.ImageResponse{
		Id:        img.Id,
		MessageId: img.MessageId,
		ImageType: img.ImageType,
		Width:     img.Width,
		Height:    img.Height,
		FileSize:  img.FileSize,
		MimeType:  img.MimeType,
		CreatedAt: img.CreatedAt,
	}
}
