package service

import (
	"context"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICreditService interface {
	// Debit validates and applies a debit, producing the usage record and
	// activity entry in the same transaction. A rejected debit leaves no trace.
	Debit(ctx context.Context, userId uuid.UUID, req *dto.DebitRequest) (*dto.DebitResponse, error)
	GetBalance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error)
	GetUsageHistory(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CreditUsageResponse, error)
	// Topup raises the allotment; invoked by the external top-up event consumer.
	Topup(ctx context.Context, userId uuid.UUID, amount int) error
	// CreateAccount provisions the per-user ledger row during onboarding.
	CreateAccount(ctx context.Context, userId uuid.UUID, allotment int) error
}

type creditService struct {
	uowFactory unitofwork.RepositoryFactory
	clk        clock.Clock
	log        logger.ILogger
	feed       IFeedPublisher
}

func NewCreditService(uowFactory unitofwork.RepositoryFactory, clk clock.Clock, log logger.ILogger, feed IFeedPublisher) ICreditService {
	return &creditService{
		uowFactory: uowFactory,
		clk:        clk,
		log:        log,
		feed:       feed,
	}
}

func (s *creditService) Debit(ctx context.Context, userId uuid.UUID, req *dto.DebitRequest) (*dto.DebitResponse, error) {
	// Zero and negative amounts are rejected outright: a no-op debit carries
	// no business meaning.
	if req.CreditsUsed <= 0 {
		return nil, apperror.Validation("creditsUsed must be a positive integer")
	}

	category := entity.ParseUsageCategory(req.Type)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The row lock serializes concurrent debits on the same account, so the
	// read-validate-write below cannot overshoot the allotment.
	account, err := uow.CreditRepository().FindAccountForUpdate(ctx, userId)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.AccountNotFound(userId)
	}

	projectedUsed := account.UsedCredits + req.CreditsUsed
	if projectedUsed > account.TotalCredits {
		return nil, apperror.InsufficientCredits(req.CreditsUsed, account.Remaining())
	}

	now := s.clk.Now()
	remaining := account.TotalCredits - projectedUsed

	account.UsedCredits = projectedUsed
	account.LastUpdated = now
	if err := uow.CreditRepository().UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	usage := &entity.CreditUsageRecord{
		UserId:      userId,
		Type:        category,
		Credits:     req.CreditsUsed,
		Description: req.Description,
		Timestamp:   now,
	}
	if err := uow.CreditRepository().CreateUsageRecord(ctx, usage); err != nil {
		return nil, err
	}

	entry := &entity.ActivityEntry{
		UserId:      userId,
		Type:        entity.ActivityTypeAiUsage,
		Description: req.Description,
		Metadata: map[string]interface{}{
			"creditsUsed":      req.CreditsUsed,
			"remainingCredits": remaining,
			"category":         string(category),
		},
		Timestamp: now,
	}
	if err := uow.ActivityRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Feed fan-out happens after commit so subscribers never see an entry
	// that later rolled back.
	if s.feed != nil {
		s.feed.PublishActivity(entry)
	}

	s.log.Info("CREDITS", "Debit applied", map[string]interface{}{
		"user_id":   userId,
		"credits":   req.CreditsUsed,
		"remaining": remaining,
		"category":  string(category),
	})

	return &dto.DebitResponse{RemainingCredits: remaining}, nil
}

func (s *creditService) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.CreditRepository().FindAccount(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.AccountNotFound(userId)
	}

	return &dto.CreditBalanceResponse{
		TotalCredits:     account.TotalCredits,
		UsedCredits:      account.UsedCredits,
		RemainingCredits: account.Remaining(),
		LastUpdated:      account.LastUpdated,
	}, nil
}

func (s *creditService) GetUsageHistory(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CreditUsageResponse, error) {
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.CreditRepository().FindUsageRecords(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CreditUsageResponse, len(records))
	for i, r := range records {
		res[i] = &dto.CreditUsageResponse{
			Id:          r.Id,
			Type:        string(r.Type),
			Credits:     r.Credits,
			Description: r.Description,
			Timestamp:   r.Timestamp,
		}
	}
	return res, nil
}

func (s *creditService) Topup(ctx context.Context, userId uuid.UUID, amount int) error {
	if amount <= 0 {
		return apperror.Validation("topup amount must be a positive integer")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CreditRepository().AddAllotment(ctx, userId, amount); err != nil {
		return err
	}

	entry := &entity.ActivityEntry{
		UserId:      userId,
		Type:        entity.ActivityTypeCreditTopup,
		Description: "AI credits added to account",
		Metadata: map[string]interface{}{
			"creditsAdded": amount,
		},
		Timestamp: s.clk.Now(),
	}
	if err := uow.ActivityRepository().Create(ctx, entry); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if s.feed != nil {
		s.feed.PublishActivity(entry)
	}
	return nil
}

func (s *creditService) CreateAccount(ctx context.Context, userId uuid.UUID, allotment int) error {
	if allotment < 0 {
		return apperror.Validation("allotment cannot be negative")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.CreditRepository().FindAccount(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.Conflict("credit account already exists for user")
	}

	account := &entity.CreditAccount{
		UserId:       userId,
		TotalCredits: allotment,
		UsedCredits:  0,
		LastUpdated:  s.clk.Now(),
	}
	return uow.CreditRepository().CreateAccount(ctx, account)
}
