// Package dto holds the request and response shapes of the account endpoints.
package dto

import (
	"time"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/mapper"
)

// SignupRequest creates the first account.
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PasskeyAuthOptionsRequest struct {
	Username string `json:"username"`
}

type CheckUsersResponse struct {
	HasUsers bool `json:"has_users"`
}

type AuthResponse struct {
	User user.Projection `json:"user"`
}

// PasskeyResponse never exposes key material or internal IDs.
type PasskeyResponse struct {
	ID             string     `json:"id"`
	DeviceName     string     `json:"device_name"`
	BackupEligible bool       `json:"backup_eligible"`
	BackupState    bool       `json:"backup_state"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToPasskeyResponse(p *user.PasskeyCredential) PasskeyResponse {
	return PasskeyResponse{
		ID:             p.SID(),
		DeviceName:     p.DeviceName(),
		BackupEligible: p.BackupEligible(),
		BackupState:    p.BackupState(),
		LastUsedAt:     p.LastUsedAt(),
		CreatedAt:      p.CreatedAt(),
	}
}

func ToPasskeyResponses(passkeys []*user.PasskeyCredential) []PasskeyResponse {
	return mapper.MapSlice(passkeys, ToPasskeyResponse)
}
