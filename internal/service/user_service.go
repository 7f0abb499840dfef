package service

import (
	"context"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	clk        clock.Clock
	feed       IFeedPublisher
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, clk clock.Clock, feed IFeedPublisher) IUserService {
	return &userService{
		uowFactory: uowFactory,
		clk:        clk,
		feed:       feed,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return toProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	user.FullName = req.FullName
	user.TargetDegree = req.TargetDegree
	user.TargetTerm = req.TargetTerm
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	entry := &entity.ActivityEntry{
		UserId:      userId,
		Type:        entity.ActivityTypeAccountUpdate,
		Description: "Profile updated",
		Metadata: map[string]interface{}{
			"full_name": user.FullName,
		},
		Timestamp: s.clk.Now(),
	}
	if err := uow.ActivityRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.PublishActivity(entry)
	}
	return toProfileResponse(user), nil
}

func toProfileResponse(user *entity.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		Id:           user.Id,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         string(user.Role),
		TargetDegree: user.TargetDegree,
		TargetTerm:   user.TargetTerm,
		CreatedAt:    user.CreatedAt,
	}
}
