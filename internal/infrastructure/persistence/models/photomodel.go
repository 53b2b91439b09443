package models

import (
	"time"

	"github.com/myphoto-inc/myphoto/internal/shared/constants"
)

type PhotoModel struct {
	ID           uint    `gorm:"primarykey"`
	SID          string  `gorm:"uniqueIndex;not null;size:50;column:sid"`
	UserID       uint    `gorm:"not null;index"`
	CategoryID   uint    `gorm:"not null;index"`
	Title        string  `gorm:"not null;size:255"`
	Description  *string `gorm:"type:text"`
	Filename     string  `gorm:"uniqueIndex;not null;size:100"`
	OriginalName string  `gorm:"not null;size:255"`
	MimeType     string  `gorm:"not null;size:50"`
	Size         int64   `gorm:"not null"`
	Width        int     `gorm:"not null"`
	Height       int     `gorm:"not null"`
	PasswordHash *string `gorm:"size:255"`
	Latitude     *float64
	Longitude    *float64
	DateTaken    *time.Time
	Camera       *string `gorm:"size:255"`
	Lens         *string `gorm:"size:255"`
	FocalLength  *string `gorm:"size:50"`
	Aperture     *string `gorm:"size:50"`
	ShutterSpeed *string `gorm:"size:50"`
	ISO          *string `gorm:"size:50;column:iso"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PhotoModel) TableName() string {
	return constants.TablePhotos
}
