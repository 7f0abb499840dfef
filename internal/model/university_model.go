package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type University struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	Country   string    `gorm:"type:varchar(100);not null;index"`
	City      string    `gorm:"type:varchar(100)"`
	Ranking   *int
	Website   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (University) TableName() string {
	return "universities"
}

type Program struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UniversityId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Degree       string    `gorm:"type:varchar(100);not null"`
	Department   string    `gorm:"type:varchar(255)"`
	Deadline     *time.Time
	Requirements *string   `gorm:"type:text"`
	TuitionNote  *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Program) TableName() string {
	return "programs"
}
