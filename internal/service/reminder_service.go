package service

import (
	"context"
	"time"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/pkg/mailer"
	"gradaid-be/internal/repository/specification"
	"gradaid-be/internal/repository/unitofwork"
)

// reminderLeadTime is how far before a deadline the reminder email goes out.
const reminderLeadTime = 7 * 24 * time.Hour

type IReminderService interface {
	// SweepDeadlines emails every user whose unsubmitted application is due
	// within the lead time. Returns the number of reminders sent.
	SweepDeadlines(ctx context.Context) (int, error)
	// Start runs the sweep on the given interval until ctx is cancelled.
	Start(ctx context.Context, interval time.Duration)
}

type reminderService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	clk          clock.Clock
	log          logger.ILogger
}

func NewReminderService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, clk clock.Clock, log logger.ILogger) IReminderService {
	return &reminderService{
		uowFactory:   uowFactory,
		emailService: emailService,
		clk:          clk,
		log:          log,
	}
}

func (s *reminderService) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if sent, err := s.SweepDeadlines(ctx); err != nil {
					s.log.Error("REMINDERS", "Deadline sweep failed", map[string]interface{}{"error": err.Error()})
				} else if sent > 0 {
					s.log.Info("REMINDERS", "Deadline sweep finished", map[string]interface{}{"sent": sent})
				}
			}
		}
	}()
}

func (s *reminderService) SweepDeadlines(ctx context.Context) (int, error) {
	now := s.clk.Now()
	horizon := now.Add(reminderLeadTime)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	applications, err := uow.ApplicationRepository().FindAll(ctx,
		specification.DeadlineBefore{Value: horizon},
		specification.OrderBy{Field: "deadline", Desc: false},
	)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range applications {
		if a.Deadline == nil || a.Deadline.Before(now) {
			continue
		}
		switch a.Status {
		case entity.ApplicationStatusSubmitted, entity.ApplicationStatusAccepted, entity.ApplicationStatusRejected:
			continue
		}

		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: a.UserId})
		if err != nil {
			return sent, err
		}
		if user == nil {
			continue
		}

		programName := "your program"
		universityName := ""
		program, err := uow.ProgramRepository().FindOne(ctx, specification.ByID{ID: a.ProgramId})
		if err != nil {
			return sent, err
		}
		if program != nil {
			programName = program.Name
			university, err := uow.UniversityRepository().FindOne(ctx, specification.ByID{ID: program.UniversityId})
			if err != nil {
				return sent, err
			}
			if university != nil {
				universityName = university.Name
			}
		}

		if err := s.emailService.SendDeadlineReminder(user.Email, programName, universityName, *a.Deadline); err != nil {
			// A dead mailbox must not stall the rest of the sweep.
			s.log.Warn("REMINDERS", "Failed to send deadline reminder", map[string]interface{}{
				"user_id": user.Id,
				"error":   err.Error(),
			})
			continue
		}
		sent++
	}
	return sent, nil
}
