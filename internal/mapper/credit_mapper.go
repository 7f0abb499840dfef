package mapper

import (
	"gradaid-be/internal/entity"
	"gradaid-be/internal/model"
)

type CreditMapper struct{}

func NewCreditMapper() *CreditMapper {
	return &CreditMapper{}
}

func (m *CreditMapper) AccountToEntity(a *model.CreditAccount) *entity.CreditAccount {
	if a == nil {
		return nil
	}
	return &entity.CreditAccount{
		Id:           a.Id,
		UserId:       a.UserId,
		TotalCredits: a.TotalCredits,
		UsedCredits:  a.UsedCredits,
		LastUpdated:  a.LastUpdated,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *CreditMapper) AccountToModel(a *entity.CreditAccount) *model.CreditAccount {
	if a == nil {
		return nil
	}
	return &model.CreditAccount{
		Id:           a.Id,
		UserId:       a.UserId,
		TotalCredits: a.TotalCredits,
		UsedCredits:  a.UsedCredits,
		LastUpdated:  a.LastUpdated,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *CreditMapper) UsageToEntity(r *model.CreditUsageRecord) *entity.CreditUsageRecord {
	if r == nil {
		return nil
	}
	return &entity.CreditUsageRecord{
		Id:          r.Id,
		UserId:      r.UserId,
		Type:        entity.ParseUsageCategory(r.Type),
		Credits:     r.Credits,
		Description: r.Description,
		Timestamp:   r.Timestamp,
	}
}

func (m *CreditMapper) UsageToModel(r *entity.CreditUsageRecord) *model.CreditUsageRecord {
	if r == nil {
		return nil
	}
	return &model.CreditUsageRecord{
		Id:          r.Id,
		UserId:      r.UserId,
		Type:        string(r.Type),
		Credits:     r.Credits,
		Description: r.Description,
		Timestamp:   r.Timestamp,
	}
}

func (m *CreditMapper) UsageToEntities(records []*model.CreditUsageRecord) []*entity.CreditUsageRecord {
	res := make([]*entity.CreditUsageRecord, len(records))
	for i, r := range records {
		res[i] = m.UsageToEntity(r)
	}
	return res
}
