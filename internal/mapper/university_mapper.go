package mapper

import (
	"gradaid-be/internal/entity"
	"gradaid-be/internal/model"
)

type UniversityMapper struct{}

func NewUniversityMapper() *UniversityMapper {
	return &UniversityMapper{}
}

func (m *UniversityMapper) ToEntity(u *model.University) *entity.University {
	if u == nil {
		return nil
	}
	return &entity.University{
		Id:        u.Id,
		Name:      u.Name,
		Country:   u.Country,
		City:      u.City,
		Ranking:   u.Ranking,
		Website:   u.Website,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UniversityMapper) ToModel(u *entity.University) *model.University {
	if u == nil {
		return nil
	}
	return &model.University{
		Id:        u.Id,
		Name:      u.Name,
		Country:   u.Country,
		City:      u.City,
		Ranking:   u.Ranking,
		Website:   u.Website,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UniversityMapper) ToEntities(unis []*model.University) []*entity.University {
	res := make([]*entity.University, len(unis))
	for i, u := range unis {
		res[i] = m.ToEntity(u)
	}
	return res
}

func (m *UniversityMapper) ProgramToEntity(p *model.Program) *entity.Program {
	if p == nil {
		return nil
	}
	return &entity.Program{
		Id:           p.Id,
		UniversityId: p.UniversityId,
		Name:         p.Name,
		Degree:       p.Degree,
		Department:   p.Department,
		Deadline:     p.Deadline,
		Requirements: p.Requirements,
		TuitionNote:  p.TuitionNote,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *UniversityMapper) ProgramToModel(p *entity.Program) *model.Program {
	if p == nil {
		return nil
	}
	return &model.Program{
		Id:           p.Id,
		UniversityId: p.UniversityId,
		Name:         p.Name,
		Degree:       p.Degree,
		Department:   p.Department,
		Deadline:     p.Deadline,
		Requirements: p.Requirements,
		TuitionNote:  p.TuitionNote,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *UniversityMapper) ProgramToEntities(programs []*model.Program) []*entity.Program {
	res := make([]*entity.Program, len(programs))
	for i, p := range programs {
		res[i] = m.ProgramToEntity(p)
	}
	return res
}
