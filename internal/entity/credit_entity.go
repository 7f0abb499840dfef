package entity

import (
	"time"

	"github.com/google/uuid"
)

// UsageCategory is the closed set of debit categories. Unknown strings from
// callers collapse to UsageCategoryOther so downstream aggregation stays
// reliable.
type UsageCategory string

const (
	UsageCategorySopGeneration UsageCategory = "sop-generation"
	UsageCategoryLorGeneration UsageCategory = "lor-generation"
	UsageCategoryRefinement    UsageCategory = "refinement"
	UsageCategoryOther         UsageCategory = "Other"
)

// ParseUsageCategory maps a caller-supplied tag to a known category.
// The empty string and anything unrecognised fall back to Other.
func ParseUsageCategory(s string) UsageCategory {
	switch UsageCategory(s) {
	case UsageCategorySopGeneration, UsageCategoryLorGeneration, UsageCategoryRefinement:
		return UsageCategory(s)
	default:
		return UsageCategoryOther
	}
}

// CreditAccount holds a user's allotment and cumulative usage. The invariant
// 0 <= UsedCredits <= TotalCredits holds after every committed debit.
type CreditAccount struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	TotalCredits int
	UsedCredits  int
	LastUpdated  time.Time
	CreatedAt    time.Time
}

// Remaining returns the credits still available to spend.
func (a *CreditAccount) Remaining() int {
	return a.TotalCredits - a.UsedCredits
}

// CreditUsageRecord is one committed debit. Immutable once written.
type CreditUsageRecord struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Type        UsageCategory
	Credits     int
	Description string
	Timestamp   time.Time
}
