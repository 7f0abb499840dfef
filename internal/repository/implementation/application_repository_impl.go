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

type ApplicationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApplicationMapper
}

func NewApplicationRepository(db *gorm.DB) contract.ApplicationRepository {
	return &ApplicationRepositoryImpl{
		db:     db,
		mapper: mapper.NewApplicationMapper(),
	}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, application *entity.Application) error {
	modelApp := r.mapper.ToModel(application)
	if err := r.db.WithContext(ctx).Create(modelApp).Error; err != nil {
		return err
	}
	*application = *r.mapper.ToEntity(modelApp)
	return nil
}

func (r *ApplicationRepositoryImpl) Update(ctx context.Context, application *entity.Application) error {
	modelApp := r.mapper.ToModel(application)
	if err := r.db.WithContext(ctx).Save(modelApp).Error; err != nil {
		return err
	}
	*application = *r.mapper.ToEntity(modelApp)
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Application{}).Error
}

func (r *ApplicationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error) {
	var modelApp model.Application
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelApp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelApp), nil
}

func (r *ApplicationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error) {
	var modelApps []*model.Application
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelApps).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelApps), nil
}

func (r *ApplicationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Application{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ApplicationRepositoryImpl) CountByStatus(ctx context.Context, userId uuid.UUID) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row

	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Select("status, count(*) as total").
		Where("user_id = ?", userId).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]int64, len(rows))
	for _, rw := range rows {
		res[rw.Status] = rw.Total
	}
	return res, nil
}
