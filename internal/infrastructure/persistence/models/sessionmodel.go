package models

import (
	"time"

	"github.com/myphoto-inc/myphoto/internal/shared/constants"
)

// SessionModel stores the SHA-256 hex digest of a session token, never the token.
type SessionModel struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;index"`
	TokenHash string    `gorm:"uniqueIndex;not null;size:64"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (SessionModel) TableName() string {
	return constants.TableSessions
}
