package service

import (
	"context"
	"time"

	"ai-redesign-be/internal/dto"
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/pkg/apperr"
	"ai-redesign-be/internal/repository/specification"
	"ai-redesign-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPreferenceService interface {
	GetOrCreate(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error)
	Update(ctx context.Context, userId uuid.UUID, patch *dto.PreferencePatch) (*dto.PreferencesResponse, error)
}

type preferenceService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPreferenceService(uowFactory unitofwork.RepositoryFactory) IPreferenceService {
	return &preferenceService{
		uowFactory: uowFactory,
	}
}

func (s *preferenceService) GetOrCreate(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Validation("user %s does not exist", userId)
	}

	prefs := entity.DesignPreferences{
		Id:        uuid.New(),
		UserId:    userId,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Upsert: the unique constraint on user_id enforces one record per
	// user even under concurrent first access.
	created, err := uow.PreferenceRepository().CreateIfAbsent(ctx, &prefs)
	if err != nil {
		return nil, err
	}
	if !created {
		existing, err := uow.PreferenceRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperr.Conflict("preferences for user %s are in a conflicting state", userId)
		}
		prefs = *existing
	}

	return preferencesToResponse(&prefs), nil
}

func (s *preferenceService) Update(ctx context.Context, userId uuid.UUID, patch *dto.PreferencePatch) (*dto.PreferencesResponse, error) {
	current, err := s.GetOrCreate(ctx, userId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs := &entity.DesignPreferences{
		Id:               current.Id,
		UserId:           userId,
		PreferredStyles:  mergePatch(current.PreferredStyles, patch.PreferredStyles),
		ColorPreferences: mergePatch(current.ColorPreferences, patch.ColorPreferences),
		CreatedAt:        current.CreatedAt,
		UpdatedAt:        time.Now(),
	}

	if err := uow.PreferenceRepository().Update(ctx, prefs); err != nil {
		return nil, err
	}

	return preferencesToResponse(prefs), nil
}

// mergePatch shallow-merges patch keys over base. The blob content stays
// opaque; only the top-level keys are inspected.
func mergePatch(base, patch map[string]interface{}) map[string]interface{} {
	if patch == nil {
		return base
	}
	merged := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

func preferencesToResponse(p *entity.DesignPreferences) *dto.PreferencesResponse {
	return &dto.PreferencesResponse{
		Id:               p.Id,
		PreferredStyles:  p.PreferredStyles,
		ColorPreferences: p.ColorPreferences,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
