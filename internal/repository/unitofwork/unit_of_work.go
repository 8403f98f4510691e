package unitofwork

import (
	"context"

	"ai-redesign-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
	ImageRepository() contract.ImageRepository
	PreferenceRepository() contract.PreferenceRepository
	SubscriptionRepository() contract.SubscriptionRepository
}
