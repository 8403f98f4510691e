package implementation

import (
	"context"
	"errors"
	"time"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/mapper"
	"ai-redesign-be/internal/model"
	"ai-redesign-be/internal/repository/contract"
	"ai-redesign-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ImageMapper
}

func NewImageRepository(db *gorm.DB) contract.ImageRepository {
	return &ImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewImageMapper(),
	}
}

func (r *ImageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *entity.Image) error {
	m := r.mapper.ToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.ToEntity(m)
	return nil
}

func (r *ImageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Image, error) {
	var m model.Image
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ImageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Image, error) {
	var models []*model.Image
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Image, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ImageRepositoryImpl) UpdateAccessURL(ctx context.Context, id uuid.UUID, url string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Image{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"presigned_url":  url,
			"url_expires_at": expiresAt,
		}).Error
}
