package implementation

import (
	"context"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/mapper"
	"gradaid-be/internal/model"
	"gradaid-be/internal/repository/contract"
	"gradaid-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityMapper
}

func NewActivityRepository(db *gorm.DB) contract.ActivityRepository {
	return &ActivityRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityMapper(),
	}
}

func (r *ActivityRepositoryImpl) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	modelEntry := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(modelEntry).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(modelEntry)
	return nil
}

func (r *ActivityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityEntry, error) {
	var modelEntries []*model.ActivityEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelEntries).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelEntries), nil
}

func (r *ActivityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ActivityEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
