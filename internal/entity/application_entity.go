package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusDraft      ApplicationStatus = "draft"
	ApplicationStatusInProgress ApplicationStatus = "in_progress"
	ApplicationStatusSubmitted  ApplicationStatus = "submitted"
	ApplicationStatusInterview  ApplicationStatus = "interview"
	ApplicationStatusAccepted   ApplicationStatus = "accepted"
	ApplicationStatusRejected   ApplicationStatus = "rejected"
	ApplicationStatusWaitlisted ApplicationStatus = "waitlisted"
)

// validTransitions encodes the application status state machine. Terminal
// states (accepted/rejected) have no outgoing edges.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusDraft:      {ApplicationStatusInProgress},
	ApplicationStatusInProgress: {ApplicationStatusSubmitted, ApplicationStatusDraft},
	ApplicationStatusSubmitted:  {ApplicationStatusInterview, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWaitlisted},
	ApplicationStatusInterview:  {ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWaitlisted},
	ApplicationStatusWaitlisted: {ApplicationStatusAccepted, ApplicationStatusRejected},
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusDraft, ApplicationStatusInProgress, ApplicationStatusSubmitted,
		ApplicationStatusInterview, ApplicationStatusAccepted, ApplicationStatusRejected,
		ApplicationStatusWaitlisted:
		return true
	}
	return false
}

type Application struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	ProgramId   uuid.UUID
	Status      ApplicationStatus
	Priority    int
	Deadline    *time.Time
	Notes       *string
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
