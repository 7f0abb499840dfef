package service

import (
	"context"
	"fmt"

	"gradaid-be/internal/apperror"
	"gradaid-be/internal/dto"
	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IApplicationService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ApplicationResponse, error)
	Get(ctx context.Context, userId, id uuid.UUID) (*dto.ApplicationResponse, error)
	Update(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error)
	// UpdateStatus walks the status state machine; illegal moves are rejected.
	UpdateStatus(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.ApplicationResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type applicationService struct {
	uowFactory unitofwork.RepositoryFactory
	clk        clock.Clock
	log        logger.ILogger
	feed       IFeedPublisher
}

func NewApplicationService(uowFactory unitofwork.RepositoryFactory, clk clock.Clock, log logger.ILogger, feed IFeedPublisher) IApplicationService {
	return &applicationService{
		uowFactory: uowFactory,
		clk:        clk,
		log:        log,
		feed:       feed,
	}
}

func (s *applicationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	program, err := uow.ProgramRepository().FindOne(ctx, specification.ByID{ID: req.ProgramId})
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperror.NotFound("program not found")
	}

	existing, err := uow.ApplicationRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("program_id", req.ProgramId),
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("an application for this program already exists")
	}

	deadline := req.Deadline
	if deadline == nil {
		// Default to the program's own deadline so reminders work out of the box.
		deadline = program.Deadline
	}

	application := &entity.Application{
		UserId:    userId,
		ProgramId: req.ProgramId,
		Status:    entity.ApplicationStatusDraft,
		Priority:  req.Priority,
		Deadline:  deadline,
		Notes:     req.Notes,
	}
	if err := uow.ApplicationRepository().Create(ctx, application); err != nil {
		return nil, err
	}

	return toApplicationResponse(application), nil
}

func (s *applicationService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	applications, err := uow.ApplicationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "priority", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ApplicationResponse, len(applications))
	for i, a := range applications {
		res[i] = toApplicationResponse(a)
	}
	return res, nil
}

func (s *applicationService) Get(ctx context.Context, userId, id uuid.UUID) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	application, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toApplicationResponse(application), nil
}

func (s *applicationService) Update(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	application, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if req.Priority != nil {
		application.Priority = *req.Priority
	}
	if req.Deadline != nil {
		application.Deadline = req.Deadline
	}
	if req.Notes != nil {
		application.Notes = req.Notes
	}
	if err := uow.ApplicationRepository().Update(ctx, application); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toApplicationResponse(application), nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userId, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.ApplicationResponse, error) {
	next := entity.ApplicationStatus(req.Status)
	if !next.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown application status %q", req.Status))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	application, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	previous := application.Status
	if previous == next {
		return toApplicationResponse(application), nil
	}
	if !previous.CanTransitionTo(next) {
		return nil, apperror.Validation(fmt.Sprintf("cannot move application from %s to %s", previous, next))
	}

	now := s.clk.Now()
	application.Status = next
	if next == entity.ApplicationStatusSubmitted {
		application.SubmittedAt = &now
	}
	if err := uow.ApplicationRepository().Update(ctx, application); err != nil {
		return nil, err
	}

	entry := &entity.ActivityEntry{
		UserId:      userId,
		Type:        entity.ActivityTypeApplicationUpdate,
		Description: fmt.Sprintf("Application status changed to %s", next),
		Metadata: map[string]interface{}{
			"application_id": application.Id.String(),
			"from":           string(previous),
			"to":             string(next),
		},
		Timestamp: now,
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

	s.log.Info("APPLICATIONS", "Status transition applied", map[string]interface{}{
		"application_id": application.Id,
		"from":           string(previous),
		"to":             string(next),
	})
	return toApplicationResponse(application), nil
}

func (s *applicationService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, userId, id); err != nil {
		return err
	}
	return uow.ApplicationRepository().Delete(ctx, id)
}

// findOwned loads an application and enforces ownership in the query itself,
// so another user's ID behaves exactly like a missing row.
func (s *applicationService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Application, error) {
	application, err := uow.ApplicationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, apperror.NotFound("application not found")
	}
	return application, nil
}

func toApplicationResponse(a *entity.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		Id:          a.Id,
		ProgramId:   a.ProgramId,
		Status:      string(a.Status),
		Priority:    a.Priority,
		Deadline:    a.Deadline,
		Notes:       a.Notes,
		SubmittedAt: a.SubmittedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
