package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string
type DocumentStatus string

const (
	DocumentTypeSop DocumentType = "sop"
	DocumentTypeLor DocumentType = "lor"

	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusInReview DocumentStatus = "in_review"
	DocumentStatusFinal    DocumentStatus = "final"
)

func (t DocumentType) IsValid() bool {
	return t == DocumentTypeSop || t == DocumentTypeLor
}

type Document struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ApplicationId uuid.UUID
	Type          DocumentType
	Title         string
	Content       string
	Status        DocumentStatus
	Version       int
	AiGenerated   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
