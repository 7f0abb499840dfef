package mapper

import (
	"gradaid-be/internal/entity"
	"gradaid-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:            d.Id,
		UserId:        d.UserId,
		ApplicationId: d.ApplicationId,
		Type:          entity.DocumentType(d.Type),
		Title:         d.Title,
		Content:       d.Content,
		Status:        entity.DocumentStatus(d.Status),
		Version:       d.Version,
		AiGenerated:   d.AiGenerated,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:            d.Id,
		UserId:        d.UserId,
		ApplicationId: d.ApplicationId,
		Type:          string(d.Type),
		Title:         d.Title,
		Content:       d.Content,
		Status:        string(d.Status),
		Version:       d.Version,
		AiGenerated:   d.AiGenerated,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	res := make([]*entity.Document, len(docs))
	for i, d := range docs {
		res[i] = m.ToEntity(d)
	}
	return res
}
