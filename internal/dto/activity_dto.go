package dto

import (
	"time"

	"github.com/google/uuid"
)

type ActivityResponse struct {
	Id          uuid.UUID              `json:"id"`
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
}
