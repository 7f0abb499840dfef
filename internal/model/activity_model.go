package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityEntry stores the user-visible action history. Rows are immutable and
// read back newest-first by the dashboard feed.
type ActivityEntry struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_user_created,priority:1"`
	Type        string         `gorm:"type:varchar(50);not null;index"`
	Description string         `gorm:"type:text;not null"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	Timestamp   time.Time      `gorm:"default:now();not null;index:idx_activity_user_created,priority:2"`
}

func (ActivityEntry) TableName() string {
	return "activity_entries"
}
