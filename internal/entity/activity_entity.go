package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityTypeAiUsage           ActivityType = "ai_usage"
	ActivityTypeApplicationUpdate ActivityType = "application_update"
	ActivityTypeDocumentEdit      ActivityType = "document_edit"
	ActivityTypeCreditTopup       ActivityType = "credit_topup"
	ActivityTypeAccountUpdate     ActivityType = "account_update"
)

// DefaultActivityFeedLimit bounds the dashboard feed when the caller does not
// supply a limit.
const DefaultActivityFeedLimit = 12

// ActivityEntry is one append-only row in the user-visible activity log.
type ActivityEntry struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Type        ActivityType
	Description string
	Metadata    map[string]interface{}
	Timestamp   time.Time
}
