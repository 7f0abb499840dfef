package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	ProgramId uuid.UUID  `json:"program_id" validate:"required"`
	Priority  int        `json:"priority" validate:"omitempty,min=0,max=10"`
	Deadline  *time.Time `json:"deadline"`
	Notes     *string    `json:"notes"`
}

type UpdateApplicationRequest struct {
	Priority *int       `json:"priority" validate:"omitempty,min=0,max=10"`
	Deadline *time.Time `json:"deadline"`
	Notes    *string    `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type ApplicationResponse struct {
	Id          uuid.UUID  `json:"id"`
	ProgramId   uuid.UUID  `json:"program_id"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
