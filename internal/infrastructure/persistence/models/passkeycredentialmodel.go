package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/myphoto-inc/myphoto/internal/shared/constants"
)

// PasskeyCredentialModel represents the database persistence model for passkey credentials.
// CredentialID and PublicKey hold standard base64 so the unique index works on every driver.
type PasskeyCredentialModel struct {
	ID              uint   `gorm:"primarykey"`
	SID             string `gorm:"uniqueIndex;not null;size:50;column:sid"`
	UserID          uint   `gorm:"not null;index"`
	CredentialID    string `gorm:"uniqueIndex;not null;size:512"`
	PublicKey       string `gorm:"type:text;not null"`
	AttestationType string `gorm:"size:50;default:none"`
	AAGUID          []byte `gorm:"column:aaguid"`
	SignCount       uint32 `gorm:"not null;default:0"`
	BackupEligible  bool   `gorm:"not null;default:false"`
	BackupState     bool   `gorm:"not null;default:false"`
	Transports      datatypes.JSON
	DeviceName      string `gorm:"size:100;default:''"`
	LastUsedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PasskeyCredentialModel) TableName() string {
	return constants.TablePasskeyCredentials
}
