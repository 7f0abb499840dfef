package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	ApplicationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"type:varchar(50);not null"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Content       string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(50);not null;default:'draft'"`
	Version       int       `gorm:"not null;default:1"`
	AiGenerated   bool      `gorm:"default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
