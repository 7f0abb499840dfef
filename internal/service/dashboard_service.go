package service

import (
	"context"
	"sort"
	"time"

	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// upcomingDeadlineWindow bounds how far ahead the dashboard looks for
// deadlines worth surfacing.
const upcomingDeadlineWindow = 60 * 24 * time.Hour

type IDashboardService interface {
	GetDashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	uowFactory      unitofwork.RepositoryFactory
	creditService   ICreditService
	activityService IActivityService
	clk             clock.Clock
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory, creditService ICreditService, activityService IActivityService, clk clock.Clock) IDashboardService {
	return &dashboardService{
		uowFactory:      uowFactory,
		creditService:   creditService,
		activityService: activityService,
		clk:             clk,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	byStatus, err := uow.ApplicationRepository().CountByStatus(ctx, userId)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}

	credits, err := s.creditService.GetBalance(ctx, userId)
	if err != nil {
		return nil, err
	}

	deadlines, err := s.upcomingDeadlines(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	recent, err := s.activityService.GetRecent(ctx, userId, entity.DefaultActivityFeedLimit)
	if err != nil {
		return nil, err
	}
	activity := make([]dto.ActivityResponse, len(recent))
	for i, a := range recent {
		activity[i] = *a
	}

	return &dto.DashboardResponse{
		Applications: dto.ApplicationSummary{Total: total, ByStatus: byStatus},
		Credits:      *credits,
		Deadlines:    deadlines,
		Activity:     activity,
	}, nil
}

func (s *dashboardService) upcomingDeadlines(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]dto.UpcomingDeadline, error) {
	now := s.clk.Now()
	horizon := now.Add(upcomingDeadlineWindow)

	applications, err := uow.ApplicationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.DeadlineBefore{Value: horizon},
		specification.OrderBy{Field: "deadline", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	deadlines := make([]dto.UpcomingDeadline, 0, len(applications))
	for _, a := range applications {
		if a.Deadline == nil || a.Deadline.Before(now) {
			continue
		}
		if a.Status == entity.ApplicationStatusSubmitted ||
			a.Status == entity.ApplicationStatusAccepted ||
			a.Status == entity.ApplicationStatusRejected {
			continue
		}

		item := dto.UpcomingDeadline{
			ApplicationId: a.Id.String(),
			Deadline:      *a.Deadline,
			DaysLeft:      int(a.Deadline.Sub(now).Hours() / 24),
		}

		program, err := uow.ProgramRepository().FindOne(ctx, specification.ByID{ID: a.ProgramId})
		if err != nil {
			return nil, err
		}
		if program != nil {
			item.ProgramName = program.Name
			university, err := uow.UniversityRepository().FindOne(ctx, specification.ByID{ID: program.UniversityId})
			if err != nil {
				return nil, err
			}
			if university != nil {
				item.University = university.Name
			}
		}
		deadlines = append(deadlines, item)
	}

	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].Deadline.Before(deadlines[j].Deadline)
	})
	return deadlines, nil
}
