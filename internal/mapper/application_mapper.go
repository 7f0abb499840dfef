package mapper

import (
	"gradaid-be/internal/entity"
	"gradaid-be/internal/model"
)

type ApplicationMapper struct{}

func NewApplicationMapper() *ApplicationMapper {
	return &ApplicationMapper{}
}

func (m *ApplicationMapper) ToEntity(a *model.Application) *entity.Application {
	if a == nil {
		return nil
	}
	return &entity.Application{
		Id:          a.Id,
		UserId:      a.UserId,
		ProgramId:   a.ProgramId,
		Status:      entity.ApplicationStatus(a.Status),
		Priority:    a.Priority,
		Deadline:    a.Deadline,
		Notes:       a.Notes,
		SubmittedAt: a.SubmittedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *ApplicationMapper) ToModel(a *entity.Application) *model.Application {
	if a == nil {
		return nil
	}
	return &model.Application{
		Id:          a.Id,
		UserId:      a.UserId,
		ProgramId:   a.ProgramId,
		Status:      string(a.Status),
		Priority:    a.Priority,
		Deadline:    a.Deadline,
		Notes:       a.Notes,
		SubmittedAt: a.SubmittedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *ApplicationMapper) ToEntities(apps []*model.Application) []*entity.Application {
	res := make([]*entity.Application, len(apps))
	for i, a := range apps {
		res[i] = m.ToEntity(a)
	}
	return res
}
