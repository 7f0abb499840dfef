package implementation

import (
	"context"
	"errors"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/mapper"
	"gradaid-be/internal/model"
	"gradaid-be/internal/repository/contract"
	"gradaid-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UniversityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UniversityMapper
}

func NewUniversityRepository(db *gorm.DB) contract.UniversityRepository {
	return &UniversityRepositoryImpl{
		db:     db,
		mapper: mapper.NewUniversityMapper(),
	}
}

func (r *UniversityRepositoryImpl) Create(ctx context.Context, university *entity.University) error {
	modelUni := r.mapper.ToModel(university)
	if err := r.db.WithContext(ctx).Create(modelUni).Error; err != nil {
		return err
	}
	*university = *r.mapper.ToEntity(modelUni)
	return nil
}

func (r *UniversityRepositoryImpl) Update(ctx context.Context, university *entity.University) error {
	modelUni := r.mapper.ToModel(university)
	if err := r.db.WithContext(ctx).Save(modelUni).Error; err != nil {
		return err
	}
	*university = *r.mapper.ToEntity(modelUni)
	return nil
}

func (r *UniversityRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.University{}).Error
}

func (r *UniversityRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.University, error) {
	var modelUni model.University
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUni).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelUni), nil
}

func (r *UniversityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.University, error) {
	var modelUnis []*model.University
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelUnis).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelUnis), nil
}

func (r *UniversityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.University{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type ProgramRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UniversityMapper
}

func NewProgramRepository(db *gorm.DB) contract.ProgramRepository {
	return &ProgramRepositoryImpl{
		db:     db,
		mapper: mapper.NewUniversityMapper(),
	}
}

func (r *ProgramRepositoryImpl) Create(ctx context.Context, program *entity.Program) error {
	modelProgram := r.mapper.ProgramToModel(program)
	if err := r.db.WithContext(ctx).Create(modelProgram).Error; err != nil {
		return err
	}
	*program = *r.mapper.ProgramToEntity(modelProgram)
	return nil
}

func (r *ProgramRepositoryImpl) Update(ctx context.Context, program *entity.Program) error {
	modelProgram := r.mapper.ProgramToModel(program)
	if err := r.db.WithContext(ctx).Save(modelProgram).Error; err != nil {
		return err
	}
	*program = *r.mapper.ProgramToEntity(modelProgram)
	return nil
}

func (r *ProgramRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Program{}).Error
}

func (r *ProgramRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Program, error) {
	var modelProgram model.Program
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelProgram).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ProgramToEntity(&modelProgram), nil
}

func (r *ProgramRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Program, error) {
	var modelPrograms []*model.Program
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelPrograms).Error; err != nil {
		return nil, err
	}

	return r.mapper.ProgramToEntities(modelPrograms), nil
}

func (r *ProgramRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Program{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
