package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/pkg/apperr"
	"ai-redesign-be/internal/pkg/logger"
	"ai-redesign-be/pkg/events"
	pktNats "ai-redesign-be/pkg/nats"
)

// RenderConsumerService ingests finished renders from the generation
// pipeline. The pipeline uploads the artifact to object storage and then
// publishes a completion event carrying the bucket and key; this consumer
// attaches the artifact to the assistant message it belongs to.
type RenderConsumerService struct {
	imageService IImageService
	subscriber   *pktNats.Subscriber
	log          logger.ILogger
}

func NewRenderConsumerService(imageService IImageService, sub *pktNats.Subscriber, log logger.ILogger) *RenderConsumerService {
	return &RenderConsumerService{
		imageService: imageService,
		subscriber:   sub,
		log:          log,
	}
}

// Start begins listening for completion events with a durable consumer so
// renders finished while the API was down are still attached on restart.
func (s *RenderConsumerService) Start() error {
	subject := "events." + events.TypeGenerationCompleted
	if err := s.subscriber.Subscribe(subject, "render-intake-worker", s.handleEvent); err != nil {
		return fmt.Errorf("failed to start render consumer: %w", err)
	}
	s.log.Info("RenderConsumerService", "listening for completed renders", map[string]interface{}{"subject": subject})
	return nil
}

func (s *RenderConsumerService) handleEvent(ctx context.Context, event events.Event) error {
	raw, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}
	var payload dto.RenderCompletedMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.log.Error("RenderConsumerService", "malformed completion payload", map[string]interface{}{"error": err.Error()})
		// Malformed payloads never become valid, drop instead of retrying.
		return nil
	}

	_, err = s.imageService.Attach(ctx, &dto.AttachImageRequest{
		MessageId:          payload.MessageId,
		S3Bucket:           payload.S3Bucket,
		S3Key:              payload.S3Key,
		ImageType:          payload.ImageType,
		Width:              payload.Width,
		Height:             payload.Height,
		FileSize:           payload.FileSize,
		MimeType:           payload.MimeType,
		GenerationMetadata: payload.GenerationMetadata,
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			s.log.Warn("RenderConsumerService", "render targets a missing message", map[string]interface{}{
				"message_id": payload.MessageId,
			})
			return nil
		}
		return err
	}

	s.log.Info("RenderConsumerService", "render attached", map[string]interface{}{
		"message_id": payload.MessageId,
		"s3_key":     payload.S3Key,
	})
	return nil
}
