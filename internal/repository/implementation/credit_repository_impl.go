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

type CreditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditMapper
}

func NewCreditRepository(db *gorm.DB) contract.CreditRepository {
	return &CreditRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditMapper(),
	}
}

func (r *CreditRepositoryImpl) CreateAccount(ctx context.Context, account *entity.CreditAccount) error {
	modelAccount := r.mapper.AccountToModel(account)
	if err := r.db.WithContext(ctx).Create(modelAccount).Error; err != nil {
		return err
	}
	*account = *r.mapper.AccountToEntity(modelAccount)
	return nil
}

func (r *CreditRepositoryImpl) FindAccount(ctx context.Context, specs ...specification.Specification) (*entity.CreditAccount, error) {
	var modelAccount model.CreditAccount
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelAccount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.AccountToEntity(&modelAccount), nil
}

// FindAccountForUpdate locks the account row until the surrounding transaction
// ends. Outside a transaction the lock degrades to a plain read, so callers
// must go through the unit of work's Begin first.
func (r *CreditRepositoryImpl) FindAccountForUpdate(ctx context.Context, userId uuid.UUID) (*entity.CreditAccount, error) {
	return r.FindAccount(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ForUpdate{},
	)
}

func (r *CreditRepositoryImpl) UpdateAccount(ctx context.Context, account *entity.CreditAccount) error {
	modelAccount := r.mapper.AccountToModel(account)
	if err := r.db.WithContext(ctx).Save(modelAccount).Error; err != nil {
		return err
	}
	*account = *r.mapper.AccountToEntity(modelAccount)
	return nil
}

func (r *CreditRepositoryImpl) AddAllotment(ctx context.Context, userId uuid.UUID, amount int) error {
	res := r.db.WithContext(ctx).Model(&model.CreditAccount{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"total_credits": gorm.Expr("total_credits + ?", amount),
			"last_updated":  gorm.Expr("now()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CreditRepositoryImpl) CreateUsageRecord(ctx context.Context, record *entity.CreditUsageRecord) error {
	modelRecord := r.mapper.UsageToModel(record)
	if err := r.db.WithContext(ctx).Create(modelRecord).Error; err != nil {
		return err
	}
	*record = *r.mapper.UsageToEntity(modelRecord)
	return nil
}

func (r *CreditRepositoryImpl) FindUsageRecords(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditUsageRecord, error) {
	var modelRecords []*model.CreditUsageRecord
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelRecords).Error; err != nil {
		return nil, err
	}

	return r.mapper.UsageToEntities(modelRecords), nil
}

func (r *CreditRepositoryImpl) CountUsageRecords(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.CreditUsageRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
