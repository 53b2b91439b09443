package models

import (
	"time"

	"github.com/myphoto-inc/myphoto/internal/shared/constants"
)

// CategoryModel is unique on (user_id, slug).
type CategoryModel struct {
	ID           uint    `gorm:"primarykey"`
	SID          string  `gorm:"uniqueIndex;not null;size:50;column:sid"`
	UserID       uint    `gorm:"not null;uniqueIndex:idx_categories_user_slug,priority:1"`
	Name         string  `gorm:"not null;size:100"`
	Slug         string  `gorm:"not null;size:100;uniqueIndex:idx_categories_user_slug,priority:2"`
	Description  *string `gorm:"type:text"`
	PasswordHash *string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CategoryModel) TableName() string {
	return constants.TableCategories
}
