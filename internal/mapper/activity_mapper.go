package mapper

import (
	"gradaid-be/internal/entity"
	"gradaid-be/internal/model"

	"gorm.io/datatypes"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(e *model.ActivityEntry) *entity.ActivityEntry {
	if e == nil {
		return nil
	}
	return &entity.ActivityEntry{
		Id:          e.Id,
		UserId:      e.UserId,
		Type:        entity.ActivityType(e.Type),
		Description: e.Description,
		Metadata:    map[string]interface{}(e.Metadata),
		Timestamp:   e.Timestamp,
	}
}

func (m *ActivityMapper) ToModel(e *entity.ActivityEntry) *model.ActivityEntry {
	if e == nil {
		return nil
	}
	return &model.ActivityEntry{
		Id:          e.Id,
		UserId:      e.UserId,
		Type:        string(e.Type),
		Description: e.Description,
		Metadata:    datatypes.JSONMap(e.Metadata),
		Timestamp:   e.Timestamp,
	}
}

func (m *ActivityMapper) ToEntities(entries []*model.ActivityEntry) []*entity.ActivityEntry {
	res := make([]*entity.ActivityEntry, len(entries))
	for i, e := range entries {
		res[i] = m.ToEntity(e)
	}
	return res
}
