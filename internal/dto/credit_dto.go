package dto

import (
	"time"

	"github.com/google/uuid"
)

// DebitRequest is the wire shape of the credit debit procedure.
type DebitRequest struct {
	CreditsUsed int    `json:"creditsUsed" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,max=500"`
	Type        string `json:"type" validate:"omitempty,max=50"`
}

type DebitResponse struct {
	RemainingCredits int `json:"remainingCredits"`
}

type CreditBalanceResponse struct {
	TotalCredits     int       `json:"total_credits"`
	UsedCredits      int       `json:"used_credits"`
	RemainingCredits int       `json:"remaining_credits"`
	LastUpdated      time.Time `json:"last_updated"`
}

type CreditUsageResponse struct {
	Id          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Credits     int       `json:"credits"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
