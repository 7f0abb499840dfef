package integration

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"
	"gradaid-be/internal/service"
	"gradaid-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

func setupLedger(t *testing.T) (service.ICreditService, unitofwork.RepositoryFactory, uuid.UUID) {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	svc := service.NewCreditService(uowFactory, clock.System(), nopLogger{}, nil)

	// Seed a fresh user + account per run
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)
	user := &entity.User{
		Email:    "ledger-test-" + uuid.New().String() + "@example.com",
		FullName: "Ledger Test",
		Role:     entity.UserRoleUser,
		Status:   entity.UserStatusActive,
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	require.NoError(t, svc.CreateAccount(ctx, user.Id, 100))

	t.Cleanup(func() {
		gormDB.Exec("DELETE FROM activity_entries WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM credit_usage_records WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM credit_accounts WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM users WHERE id = ?", user.Id)
	})

	return svc, uowFactory, user.Id
}

func TestLedgerDebitRoundTrip(t *testing.T) {
	svc, uowFactory, userId := setupLedger(t)
	ctx := context.Background()

	res, err := svc.Debit(ctx, userId, &dto.DebitRequest{
		CreditsUsed: 30,
		Description: "Generated SOP draft",
		Type:        "sop-generation",
	})
	require.NoError(t, err)
	assert.Equal(t, 70, res.RemainingCredits)

	balance, err := svc.GetBalance(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 30, balance.UsedCredits)
	assert.Equal(t, 70, balance.RemainingCredits)

	uow := uowFactory.NewUnitOfWork(ctx)
	usageCount, err := uow.CreditRepository().CountUsageRecords(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Equal(t, int64(1), usageCount)

	activityCount, err := uow.ActivityRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Equal(t, int64(1), activityCount)
}

func TestLedgerRejectedDebitLeavesNoTrace(t *testing.T) {
	svc, uowFactory, userId := setupLedger(t)
	ctx := context.Background()

	_, err := svc.Debit(ctx, userId, &dto.DebitRequest{
		CreditsUsed: 101,
		Description: "Too big",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInsufficientCredits, apperror.KindOf(err))

	balance, err := svc.GetBalance(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.UsedCredits)

	uow := uowFactory.NewUnitOfWork(ctx)
	usageCount, err := uow.CreditRepository().CountUsageRecords(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Equal(t, int64(0), usageCount)
}

// TestLedgerConcurrentDebits hammers one account from many goroutines. The row
// lock must serialize them: the account can never overshoot its allotment and
// the usage records must add up to exactly what was spent.
func TestLedgerConcurrentDebits(t *testing.T) {
	svc, uowFactory, userId := setupLedger(t)
	ctx := context.Background()

	const (
		workers   = 20
		perDebit  = 10
		allotment = 100
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Debit(ctx, userId, &dto.DebitRequest{
				CreditsUsed: perDebit,
				Description: "Concurrent debit",
				Type:        "refinement",
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.Equal(t, apperror.KindInsufficientCredits, apperror.KindOf(err))
			}
		}()
	}
	wg.Wait()

	// Exactly allotment/perDebit debits can fit.
	assert.Equal(t, allotment/perDebit, succeeded)

	balance, err := svc.GetBalance(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, allotment, balance.UsedCredits)
	assert.Equal(t, 0, balance.RemainingCredits)

	uow := uowFactory.NewUnitOfWork(ctx)
	usageCount, err := uow.CreditRepository().CountUsageRecords(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Equal(t, int64(succeeded), usageCount)
}
