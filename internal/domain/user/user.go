// Package user holds the account aggregate and the credentials attached to it:
// sessions and passkeys.
package user

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxUsernameLength = 64
	MaxNameLength     = 255
	MinPasswordLength = 8
)

// User is the account aggregate. The password hash never leaves the domain
// except through the persistence mapper.
type User struct {
	id           uint
	username     string
	name         string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser validates identity fields and builds a user that has not been persisted.
func NewUser(username, name, passwordHash string, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	return &User{
		username:     username,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence
func ReconstructUser(id uint, username, name, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:           id,
		username:     username,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if strings.ContainsFunc(username, func(r rune) bool { return r == ' ' || r < 0x20 }) {
		return fmt.Errorf("username must not contain spaces or control characters")
	}
	return nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Name() string         { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// SetID sets the internal ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(passwordHash string, now time.Time) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = now
	return nil
}

// Projection is the public view of a user.
type Projection struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Projection returns the user without credential material.
func (u *User) Projection() Projection {
	return Projection{
		ID:        u.id,
		Username:  u.username,
		Name:      u.name,
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	}
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
