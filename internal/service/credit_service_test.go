package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/repository/contract"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- test doubles ----

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type captureFeed struct {
	entries []*entity.ActivityEntry
}

func (f *captureFeed) PublishActivity(entry *entity.ActivityEntry) {
	f.entries = append(f.entries, entry)
}

// ledgerState is the committed store shared by fake repositories.
type ledgerState struct {
	accounts     map[uuid.UUID]*entity.CreditAccount // keyed by user id
	usage        []*entity.CreditUsageRecord
	activity     []*entity.ActivityEntry
	users        map[uuid.UUID]*entity.User
	universities map[uuid.UUID]*entity.University
	programs     map[uuid.UUID]*entity.Program
	applications map[uuid.UUID]*entity.Application
	documents    map[uuid.UUID]*entity.Document

	failCreateUsage bool
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		accounts:     make(map[uuid.UUID]*entity.CreditAccount),
		users:        make(map[uuid.UUID]*entity.User),
		universities: make(map[uuid.UUID]*entity.University),
		programs:     make(map[uuid.UUID]*entity.Program),
		applications: make(map[uuid.UUID]*entity.Application),
		documents:    make(map[uuid.UUID]*entity.Document),
	}
}

func (s *ledgerState) clone() *ledgerState {
	cp := newLedgerState()
	cp.failCreateUsage = s.failCreateUsage
	for k, v := range s.accounts {
		acc := *v
		cp.accounts[k] = &acc
	}
	for k, v := range s.users {
		u := *v
		cp.users[k] = &u
	}
	for k, v := range s.universities {
		u := *v
		cp.universities[k] = &u
	}
	for k, v := range s.programs {
		p := *v
		cp.programs[k] = &p
	}
	for k, v := range s.applications {
		a := *v
		cp.applications[k] = &a
	}
	for k, v := range s.documents {
		d := *v
		cp.documents[k] = &d
	}
	cp.usage = append(cp.usage, s.usage...)
	cp.activity = append(cp.activity, s.activity...)
	return cp
}

// fakeUow simulates transaction semantics: writes inside Begin/Commit go to a
// staged copy that only replaces the committed state on Commit.
type fakeUow struct {
	committed *ledgerState
	staged    *ledgerState
}

func (u *fakeUow) current() *ledgerState {
	if u.staged != nil {
		return u.staged
	}
	return u.committed
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.staged = u.committed.clone()
	return nil
}

func (u *fakeUow) Commit() error {
	if u.staged == nil {
		return errors.New("commit without begin")
	}
	*u.committed = *u.staged
	u.staged = nil
	return nil
}

func (u *fakeUow) Rollback() error {
	u.staged = nil
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository               { return &fakeUserRepo{u} }
func (u *fakeUow) CreditRepository() contract.CreditRepository           { return &fakeCreditRepo{u} }
func (u *fakeUow) ActivityRepository() contract.ActivityRepository       { return &fakeActivityRepo{u} }
func (u *fakeUow) UniversityRepository() contract.UniversityRepository   { return &fakeUniversityRepo{u} }
func (u *fakeUow) ProgramRepository() contract.ProgramRepository         { return &fakeProgramRepo{u} }
func (u *fakeUow) ApplicationRepository() contract.ApplicationRepository { return &fakeApplicationRepo{u} }
func (u *fakeUow) DocumentRepository() contract.DocumentRepository       { return &fakeDocumentRepo{u} }

type fakeFactory struct {
	state *ledgerState
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{committed: f.state}
}

type fakeCreditRepo struct{ uow *fakeUow }

func (r *fakeCreditRepo) CreateAccount(ctx context.Context, account *entity.CreditAccount) error {
	account.Id = uuid.New()
	acc := *account
	r.uow.current().accounts[account.UserId] = &acc
	return nil
}

func (r *fakeCreditRepo) FindAccount(ctx context.Context, specs ...specification.Specification) (*entity.CreditAccount, error) {
	for _, spec := range specs {
		if owned, ok := spec.(specification.UserOwnedBy); ok {
			if acc, found := r.uow.current().accounts[owned.UserID]; found {
				cp := *acc
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeCreditRepo) FindAccountForUpdate(ctx context.Context, userId uuid.UUID) (*entity.CreditAccount, error) {
	if acc, ok := r.uow.current().accounts[userId]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCreditRepo) UpdateAccount(ctx context.Context, account *entity.CreditAccount) error {
	cp := *account
	r.uow.current().accounts[account.UserId] = &cp
	return nil
}

func (r *fakeCreditRepo) AddAllotment(ctx context.Context, userId uuid.UUID, amount int) error {
	acc, ok := r.uow.current().accounts[userId]
	if !ok {
		return errors.New("record not found")
	}
	acc.TotalCredits += amount
	return nil
}

func (r *fakeCreditRepo) CreateUsageRecord(ctx context.Context, record *entity.CreditUsageRecord) error {
	if r.uow.current().failCreateUsage {
		return errors.New("usage insert failed")
	}
	record.Id = uuid.New()
	cp := *record
	r.uow.current().usage = append(r.uow.current().usage, &cp)
	return nil
}

func (r *fakeCreditRepo) FindUsageRecords(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditUsageRecord, error) {
	var out []*entity.CreditUsageRecord
	for _, spec := range specs {
		if owned, ok := spec.(specification.UserOwnedBy); ok {
			for _, rec := range r.uow.current().usage {
				if rec.UserId == owned.UserID {
					out = append(out, rec)
				}
			}
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) CountUsageRecords(ctx context.Context, specs ...specification.Specification) (int64, error) {
	records, _ := r.FindUsageRecords(ctx, specs...)
	return int64(len(records)), nil
}

type fakeActivityRepo struct{ uow *fakeUow }

func (r *fakeActivityRepo) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	entry.Id = uuid.New()
	cp := *entry
	r.uow.current().activity = append(r.uow.current().activity, &cp)
	return nil
}

func (r *fakeActivityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityEntry, error) {
	var out []*entity.ActivityEntry
	for _, spec := range specs {
		if owned, ok := spec.(specification.UserOwnedBy); ok {
			for _, e := range r.uow.current().activity {
				if e.UserId == owned.UserID {
					out = append(out, e)
				}
			}
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	entries, _ := r.FindAll(ctx, specs...)
	return int64(len(entries)), nil
}

// ---- helpers ----

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestCreditService(state *ledgerState) (ICreditService, *captureFeed) {
	feed := &captureFeed{}
	svc := NewCreditService(&fakeFactory{state: state}, fixedClock{now: testNow}, noopLogger{}, feed)
	return svc, feed
}

func seedAccount(state *ledgerState, total, used int) uuid.UUID {
	userId := uuid.New()
	state.accounts[userId] = &entity.CreditAccount{
		Id:           uuid.New(),
		UserId:       userId,
		TotalCredits: total,
		UsedCredits:  used,
		LastUpdated:  testNow.Add(-time.Hour),
	}
	return userId
}

// ---- tests ----

func TestDebitSuccess(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 30)
	svc, feed := newTestCreditService(state)

	res, err := svc.Debit(context.Background(), userId, &dto.DebitRequest{
		CreditsUsed: 30,
		Description: "Generated SOP draft",
		Type:        "sop-generation",
	})
	require.NoError(t, err)
	assert.Equal(t, 40, res.RemainingCredits)

	acc := state.accounts[userId]
	assert.Equal(t, 60, acc.UsedCredits)
	assert.Equal(t, 100, acc.TotalCredits)
	assert.Equal(t, testNow, acc.LastUpdated)

	require.Len(t, state.usage, 1)
	usage := state.usage[0]
	assert.Equal(t, userId, usage.UserId)
	assert.Equal(t, entity.UsageCategorySopGeneration, usage.Type)
	assert.Equal(t, 30, usage.Credits)
	assert.Equal(t, "Generated SOP draft", usage.Description)

	require.Len(t, state.activity, 1)
	entry := state.activity[0]
	assert.Equal(t, entity.ActivityTypeAiUsage, entry.Type)
	assert.Equal(t, 30, entry.Metadata["creditsUsed"])
	assert.Equal(t, 40, entry.Metadata["remainingCredits"])
	assert.Equal(t, "sop-generation", entry.Metadata["category"])

	// Feed fires only after the commit succeeded.
	require.Len(t, feed.entries, 1)
	assert.Equal(t, entity.ActivityTypeAiUsage, feed.entries[0].Type)
}

func TestDebitExactRemaining(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 50, 40)
	svc, _ := newTestCreditService(state)

	res, err := svc.Debit(context.Background(), userId, &dto.DebitRequest{
		CreditsUsed: 10,
		Description: "Refined essay",
		Type:        "refinement",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.RemainingCredits)
	assert.Equal(t, 50, state.accounts[userId].UsedCredits)
}

func TestDebitInsufficientCredits(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 95)
	svc, feed := newTestCreditService(state)

	_, err := svc.Debit(context.Background(), userId, &dto.DebitRequest{
		CreditsUsed: 10,
		Description: "Generated SOP draft",
		Type:        "sop-generation",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInsufficientCredits, apperror.KindOf(err))

	// A rejected debit leaves no trace anywhere.
	assert.Equal(t, 95, state.accounts[userId].UsedCredits)
	assert.Empty(t, state.usage)
	assert.Empty(t, state.activity)
	assert.Empty(t, feed.entries)
}

func TestDebitAccountNotFound(t *testing.T) {
	state := newLedgerState()
	svc, _ := newTestCreditService(state)

	_, err := svc.Debit(context.Background(), uuid.New(), &dto.DebitRequest{
		CreditsUsed: 5,
		Description: "Generated SOP draft",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindAccountNotFound, apperror.KindOf(err))
}

func TestDebitRejectsNonPositiveAmounts(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 0)
	svc, _ := newTestCreditService(state)

	for _, amount := range []int{0, -1, -100} {
		_, err := svc.Debit(context.Background(), userId, &dto.DebitRequest{
			CreditsUsed: amount,
			Description: "Should be rejected",
		})
		require.Error(t, err, "amount %d", amount)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
	assert.Equal(t, 0, state.accounts[userId].UsedCredits)
	assert.Empty(t, state.usage)
}

func TestDebitIsNotIdempotent(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 0)
	svc, _ := newTestCreditService(state)

	req := &dto.DebitRequest{CreditsUsed: 10, Description: "Generated SOP draft", Type: "sop-generation"}

	res1, err := svc.Debit(context.Background(), userId, req)
	require.NoError(t, err)
	assert.Equal(t, 90, res1.RemainingCredits)

	// The same request again charges again.
	res2, err := svc.Debit(context.Background(), userId, req)
	require.NoError(t, err)
	assert.Equal(t, 80, res2.RemainingCredits)

	assert.Equal(t, 20, state.accounts[userId].UsedCredits)
	assert.Len(t, state.usage, 2)
}

func TestDebitSequenceStopsAtAllotment(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 50, 0)
	svc, _ := newTestCreditService(state)

	req := &dto.DebitRequest{CreditsUsed: 30, Description: "Generated SOP draft", Type: "sop-generation"}

	res, err := svc.Debit(context.Background(), userId, req)
	require.NoError(t, err)
	assert.Equal(t, 20, res.RemainingCredits)

	// The second identical debit would push usage to 60 against an
	// allotment of 50, so it must fail and change nothing.
	_, err = svc.Debit(context.Background(), userId, req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInsufficientCredits, apperror.KindOf(err))

	assert.Equal(t, 30, state.accounts[userId].UsedCredits)
	assert.Len(t, state.usage, 1)
	assert.Len(t, state.activity, 1)
}

func TestDebitUnknownCategoryFallsBackToOther(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 0)
	svc, _ := newTestCreditService(state)

	_, err := svc.Debit(context.Background(), userId, &dto.DebitRequest{
		CreditsUsed: 5,
		Description: "Something exotic",
		Type:        "unknown-category",
	})
	require.NoError(t, err)
	require.Len(t, state.usage, 1)
	assert.Equal(t, entity.UsageCategoryOther, state.usage[0].Type)
}

func TestDebitRollsBackWhenUsageInsertFails(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 10)
	state.failCreateUsage = true
	svc, feed := newTestCreditService(state)

	_, err := svc.Debit(context.Background(), userId, &dto.DebitRequest{
		CreditsUsed: 10,
		Description: "Generated SOP draft",
	})
	require.Error(t, err)

	// The account update staged before the failure never committed.
	assert.Equal(t, 10, state.accounts[userId].UsedCredits)
	assert.Empty(t, state.usage)
	assert.Empty(t, state.activity)
	assert.Empty(t, feed.entries)
}

func TestGetBalance(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 35)
	svc, _ := newTestCreditService(state)

	res, err := svc.GetBalance(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 100, res.TotalCredits)
	assert.Equal(t, 35, res.UsedCredits)
	assert.Equal(t, 65, res.RemainingCredits)
}

func TestGetBalanceAccountNotFound(t *testing.T) {
	state := newLedgerState()
	svc, _ := newTestCreditService(state)

	_, err := svc.GetBalance(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindAccountNotFound, apperror.KindOf(err))
}

func TestTopupRaisesAllotment(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 80)
	svc, feed := newTestCreditService(state)

	err := svc.Topup(context.Background(), userId, 50)
	require.NoError(t, err)

	acc := state.accounts[userId]
	assert.Equal(t, 150, acc.TotalCredits)
	assert.Equal(t, 80, acc.UsedCredits)

	require.Len(t, state.activity, 1)
	assert.Equal(t, entity.ActivityTypeCreditTopup, state.activity[0].Type)
	assert.Len(t, feed.entries, 1)
}

func TestTopupRejectsNonPositive(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 0)
	svc, _ := newTestCreditService(state)

	err := svc.Topup(context.Background(), userId, 0)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateAccountConflict(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 0)
	svc, _ := newTestCreditService(state)

	err := svc.CreateAccount(context.Background(), userId, 100)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCreateAccount(t *testing.T) {
	state := newLedgerState()
	svc, _ := newTestCreditService(state)
	userId := uuid.New()

	require.NoError(t, svc.CreateAccount(context.Background(), userId, 100))

	acc := state.accounts[userId]
	require.NotNil(t, acc)
	assert.Equal(t, 100, acc.TotalCredits)
	assert.Equal(t, 0, acc.UsedCredits)
}

func TestGetUsageHistory(t *testing.T) {
	state := newLedgerState()
	userId := seedAccount(state, 100, 0)
	svc, _ := newTestCreditService(state)

	for i := 0; i < 3; i++ {
		_, err := svc.Debit(context.Background(), userId, &dto.DebitRequest{
			CreditsUsed: 5,
			Description: "Generated SOP draft",
			Type:        "sop-generation",
		})
		require.NoError(t, err)
	}

	records, err := svc.GetUsageHistory(context.Background(), userId, 20, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, "sop-generation", r.Type)
		assert.Equal(t, 5, r.Credits)
	}
}
