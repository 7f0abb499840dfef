package model

import (
	"time"

	"github.com/google/uuid"
)

// CreditAccount is the per-user AI credit ledger row. UserId carries a unique
// index so at most one account exists per user.
type CreditAccount struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TotalCredits int       `gorm:"not null;default:0"`
	UsedCredits  int       `gorm:"not null;default:0"`
	LastUpdated  time.Time `gorm:"default:now();not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (CreditAccount) TableName() string {
	return "credit_accounts"
}

// CreditUsageRecord is append-only: one row per committed debit.
type CreditUsageRecord struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(50);not null;index"`
	Credits     int       `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Timestamp   time.Time `gorm:"default:now();not null;index"`
}

func (CreditUsageRecord) TableName() string {
	return "credit_usage_records"
}
