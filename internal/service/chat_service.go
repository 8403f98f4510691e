package service

import (
	"context"
	"time"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/model"
	"ai-redesign-be/internal/pkg/apperr"
	"ai-redesign-be/internal/pkg/logger"
	"ai-redesign-be/internal/repository/specification"
	"ai-redesign-be/internal/repository/unitofwork"
	"ai-redesign-be/pkg/events"
	pktNats "ai-redesign-be/pkg/nats"

	"github.com/google/uuid"
)

const defaultMessagePageSize = 50

type IChatService interface {
	CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error)
	AppendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.AppendMessageRequest) (*dto.MessageResponse, error)
	ArchiveChat(ctx context.Context, userId, chatId uuid.UUID) error
	ListChats(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error)
	ListMessages(ctx context.Context, userId, chatId uuid.UUID, req *dto.ListMessagesRequest) (*dto.ListMessagesResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	usageService   IUsageService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	usageService IUsageService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		usageService:   usageService,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *chatService) CreateChat(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The identity provider owns accounts; an unknown id means the caller
	// handed us a reference that was never valid here.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Validation("user %s does not exist", userId)
	}

	chat := entity.Chat{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		SpaceType: req.SpaceType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.ChatRepository().Create(ctx, &chat); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewChatCreated(chat.Id, userId))

	return &dto.CreateChatResponse{
		Id:         chat.Id,
		Title:      chat.Title,
		SpaceType:  chat.SpaceType,
		IsArchived: chat.IsArchived,
		CreatedAt:  chat.CreatedAt,
	}, nil
}

func (s *chatService) AppendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.AppendMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Archived chats reject appends; no transition reactivates them.
	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.UserOwnedBy{UserID: userId},
		specification.NotArchived{},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.NotFound("chat %s not found", chatId)
	}

	// User turns request a render downstream, so they consume quota.
	if req.Role == model.RoleUser {
		if err := s.usageService.ConsumeRenderCredit(ctx, userId); err != nil {
			return nil, err
		}
	}

	message := entity.Message{
		Id:        uuid.New(),
		ChatId:    chatId,
		Role:      req.Role,
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}

	// One insert plus one parent-timestamp update, atomically.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.ChatRepository().Touch(ctx, chatId, message.CreatedAt); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewMessageAppended(chatId, message.Id, userId, message.Role))

	return messageToResponse(&message, nil), nil
}

func (s *chatService) ArchiveChat(ctx context.Context, userId, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if chat == nil {
		return apperr.NotFound("chat %s not found", chatId)
	}
	if chat.IsArchived {
		// Already archived; archiving again is a no-op.
		return nil
	}

	if _, err := uow.ChatRepository().Archive(ctx, chatId); err != nil {
		return err
	}

	s.publish(ctx, events.NewChatArchived(chatId, userId))
	return nil
}

func (s *chatService) ListChats(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatResponse, len(chats))
	for i, c := range chats {
		res[i] = &dto.ChatResponse{
			Id:         c.Id,
			Title:      c.Title,
			SpaceType:  c.SpaceType,
			IsArchived: c.IsArchived,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
	}
	return res, nil
}

func (s *chatService) ListMessages(ctx context.Context, userId, chatId uuid.UUID, req *dto.ListMessagesRequest) (*dto.ListMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	// Archived chats stay readable; only appends are rejected.
	if chat == nil {
		return nil, apperr.NotFound("chat %s not found", chatId)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagePageSize
	}

	// Fetch one extra row to detect whether another page exists.
	msgs, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.AfterSeq{Seq: req.Cursor},
		specification.LedgerOrder{},
		specification.Limit{N: limit + 1},
	)
	if err != nil {
		return nil, err
	}

	hasMore := len(msgs) > limit
	if hasMore {
		msgs = msgs[:limit]
	}

	imagesByMessage, err := s.loadImages(ctx, uow, msgs)
	if err != nil {
		return nil, err
	}

	res := &dto.ListMessagesResponse{
		Messages: make([]*dto.MessageResponse, len(msgs)),
		HasMore:  hasMore,
	}
	for i, m := range msgs {
		res.Messages[i] = messageToResponse(m, imagesByMessage[m.Id])
		res.NextCursor = m.Seq
	}
	if len(msgs) == 0 {
		res.NextCursor = req.Cursor
	}
	return res, nil
}

func (s *chatService) loadImages(ctx context.Context, uow unitofwork.UnitOfWork, msgs []*entity.Message) (map[uuid.UUID][]*dto.ImageResponse, error) {
	if len(msgs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(msgs))
	for i, m := range msgs {
		ids[i] = m.Id
	}

	images, err := uow.ImageRepository().FindAll(ctx,
		specification.ByMessageIDs{MessageIDs: ids},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]*dto.ImageResponse)
	for _, img := range images {
		grouped[img.MessageId] = append(grouped[img.MessageId], imageToResponse(img))
	}
	return grouped, nil
}

func (s *chatService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("ChatService", "failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func messageToResponse(m *entity.Message, images []*dto.ImageResponse) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		ChatId:    m.ChatId,
		Role:      m.Role,
		Content:   m.Content,
		Metadata:  m.Metadata,
		CreatedAt: m.CreatedAt,
		Images:    images,
	}
}
