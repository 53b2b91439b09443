package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/myphoto-inc/myphoto/internal/shared/errors"
)

// maxPasswordBytes is bcrypt's input limit; longer input would be silently truncated.
const maxPasswordBytes = 72

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password with a fresh salt.
func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.NewValidationError("Password is required")
	}
	if len(password) > maxPasswordBytes {
		return "", errors.NewValidationError(fmt.Sprintf("Password must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a mismatch.
func (h *BcryptPasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
