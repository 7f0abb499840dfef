package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	ApplicationId uuid.UUID `json:"application_id" validate:"required"`
	Type          string    `json:"type" validate:"required,oneof=sop lor"`
	Title         string    `json:"title" validate:"required,max=255"`
	Content       string    `json:"content"`
}

type UpdateDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
	Status  string `json:"status" validate:"omitempty,oneof=draft in_review final"`
}

// GenerateDocumentRequest triggers a metered AI draft for an application.
type GenerateDocumentRequest struct {
	ApplicationId uuid.UUID `json:"application_id" validate:"required"`
	Type          string    `json:"type" validate:"required,oneof=sop lor"`
	Instructions  string    `json:"instructions" validate:"omitempty,max=2000"`
}

// RefineDocumentRequest asks the model to rework an existing draft.
type RefineDocumentRequest struct {
	Instructions string `json:"instructions" validate:"required,max=2000"`
}

type DocumentResponse struct {
	Id            uuid.UUID `json:"id"`
	ApplicationId uuid.UUID `json:"application_id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Status        string    `json:"status"`
	Version       int       `json:"version"`
	AiGenerated   bool      `json:"ai_generated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type GenerateDocumentResponse struct {
	Document         DocumentResponse `json:"document"`
	CreditsUsed      int              `json:"credits_used"`
	RemainingCredits int              `json:"remaining_credits"`
}
