package implementation

import (
	"context"
	"errors"

	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/mapper"
	"ai-redesign-be/internal/model"
	"ai-redesign-be/internal/repository/contract"
	"ai-redesign-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PreferenceRepositoryImpl) CreateIfAbsent(ctx context.Context, prefs *entity.DesignPreferences) (bool, error) {
	m := r.mapper.ToModel(prefs)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race or the row already existed; the unique constraint
		// on user_id guarantees a single record per user.
		return false, nil
	}
	*prefs = *r.mapper.ToEntity(m)
	return true, nil
}

func (r *PreferenceRepositoryImpl) Update(ctx context.Context, prefs *entity.DesignPreferences) error {
	m := r.mapper.ToModel(prefs)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*prefs = *r.mapper.ToEntity(m)
	return nil
}

func (r *PreferenceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DesignPreferences, error) {
	var m model.DesignPreferences
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
