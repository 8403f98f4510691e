package mapper

import (
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.DesignPreferences) *entity.DesignPreferences {
	if p == nil {
		return nil
	}
	return &entity.DesignPreferences{
		Id:               p.Id,
		UserId:           p.UserId,
		PreferredStyles:  jsonToMap(p.PreferredStyles),
		ColorPreferences: jsonToMap(p.ColorPreferences),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.DesignPreferences) *model.DesignPreferences {
	if p == nil {
		return nil
	}
	return &model.DesignPreferences{
		Id:               p.Id,
		UserId:           p.UserId,
		PreferredStyles:  mapToJSON(p.PreferredStyles),
		ColorPreferences: mapToJSON(p.ColorPreferences),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
