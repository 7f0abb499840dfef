package service

import (
	"context"
	"time"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/config"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"
	"gradaid-be/pkg/events"
	pkgNats "gradaid-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	cfg            *config.Config
	clk            clock.Clock
	log            logger.ILogger
	eventPublisher *pkgNats.Publisher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, clk clock.Clock, log logger.ILogger, eventPublisher *pkgNats.Publisher) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		cfg:            cfg,
		clk:            clk,
		log:            log,
		eventPublisher: eventPublisher,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusActive,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	// Onboarding provisions the credit ledger in the same transaction, so a
	// registered user always has an account to debit against.
	account := &entity.CreditAccount{
		UserId:       user.Id,
		TotalCredits: s.cfg.Credits.StarterAllotment,
		UsedCredits:  0,
		LastUpdated:  s.clk.Now(),
	}
	if err := uow.CreditRepository().CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "USER_REGISTERED",
			Data: map[string]interface{}{
				"user_id":   user.Id,
				"email":     user.Email,
				"full_name": user.FullName,
			},
			OccurredAt: s.clk.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("AUTH", "Failed to publish USER_REGISTERED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if user.Status == entity.UserStatusBlocked {
		return nil, apperror.Unauthorized("account is blocked")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	expiresAt := s.clk.Now().Add(24 * time.Hour)

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.App.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User: dto.UserProfileResponse{
			Id:           user.Id,
			Email:        user.Email,
			FullName:     user.FullName,
			Role:         string(user.Role),
			TargetDegree: user.TargetDegree,
			TargetTerm:   user.TargetTerm,
			CreatedAt:    user.CreatedAt,
		},
	}, nil
}
