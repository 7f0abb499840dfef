package contract

import (
	"context"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CreditRepository interface {
	CreateAccount(ctx context.Context, account *entity.CreditAccount) error
	// FindAccount returns nil, nil when no account matches.
	FindAccount(ctx context.Context, specs ...specification.Specification) (*entity.CreditAccount, error)
	// FindAccountForUpdate loads the account row under a FOR UPDATE lock.
	// Must be called inside a transaction; the lock holds until commit/rollback.
	FindAccountForUpdate(ctx context.Context, userId uuid.UUID) (*entity.CreditAccount, error)
	UpdateAccount(ctx context.Context, account *entity.CreditAccount) error
	// AddAllotment raises total_credits in place (external top-up events).
	AddAllotment(ctx context.Context, userId uuid.UUID, amount int) error

	CreateUsageRecord(ctx context.Context, record *entity.CreditUsageRecord) error
	FindUsageRecords(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditUsageRecord, error)
	CountUsageRecords(ctx context.Context, specs ...specification.Specification) (int64, error)
}
