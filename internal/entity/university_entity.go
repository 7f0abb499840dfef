package entity

import (
	"time"

	"github.com/google/uuid"
)

type University struct {
	Id        uuid.UUID
	Name      string
	Country   string
	City      string
	Ranking   *int
	Website   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Program struct {
	Id           uuid.UUID
	UniversityId uuid.UUID
	Name         string
	Degree       string
	Department   string
	Deadline     *time.Time
	Requirements *string
	TuitionNote  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
