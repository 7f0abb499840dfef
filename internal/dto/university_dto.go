package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUniversityRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Country string  `json:"country" validate:"required,max=100"`
	City    string  `json:"city" validate:"omitempty,max=100"`
	Ranking *int    `json:"ranking" validate:"omitempty,gt=0"`
	Website *string `json:"website" validate:"omitempty,url"`
}

type UniversityResponse struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
	City    string    `json:"city,omitempty"`
	Ranking *int      `json:"ranking,omitempty"`
	Website *string   `json:"website,omitempty"`
}

type CreateProgramRequest struct {
	Name         string     `json:"name" validate:"required,max=255"`
	Degree       string     `json:"degree" validate:"required,max=100"`
	Department   string     `json:"department" validate:"omitempty,max=255"`
	Deadline     *time.Time `json:"deadline"`
	Requirements *string    `json:"requirements"`
	TuitionNote  *string    `json:"tuition_note"`
}

type ProgramResponse struct {
	Id           uuid.UUID  `json:"id"`
	UniversityId uuid.UUID  `json:"university_id"`
	Name         string     `json:"name"`
	Degree       string     `json:"degree"`
	Department   string     `json:"department,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Requirements *string    `json:"requirements,omitempty"`
	TuitionNote  *string    `json:"tuition_note,omitempty"`
}
