package service

import (
	"context"

	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IActivityService interface {
	Record(ctx context.Context, userId uuid.UUID, activityType entity.ActivityType, description string, metadata map[string]interface{}) error
	GetRecent(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ActivityResponse, error)
}

type activityService struct {
	uowFactory unitofwork.RepositoryFactory
	clk        clock.Clock
	feed       IFeedPublisher
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory, clk clock.Clock, feed IFeedPublisher) IActivityService {
	return &activityService{
		uowFactory: uowFactory,
		clk:        clk,
		feed:       feed,
	}
}

func (s *activityService) Record(ctx context.Context, userId uuid.UUID, activityType entity.ActivityType, description string, metadata map[string]interface{}) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry := &entity.ActivityEntry{
		UserId:      userId,
		Type:        activityType,
		Description: description,
		Metadata:    metadata,
		Timestamp:   s.clk.Now(),
	}
	if err := uow.ActivityRepository().Create(ctx, entry); err != nil {
		return err
	}

	if s.feed != nil {
		s.feed.PublishActivity(entry)
	}
	return nil
}

func (s *activityService) GetRecent(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ActivityResponse, error) {
	if limit < 1 {
		limit = entity.DefaultActivityFeedLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.ActivityRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ActivityResponse, len(entries))
	for i, e := range entries {
		res[i] = &dto.ActivityResponse{
			Id:          e.Id,
			Type:        string(e.Type),
			Description: e.Description,
			Metadata:    e.Metadata,
			Timestamp:   e.Timestamp,
		}
	}
	return res, nil
}
