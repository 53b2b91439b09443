package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

const errMsgInvalidCredentials = "Invalid username or password"

type LoginWithPasswordCommand struct {
	Username string
	Password string
}

// LoginWithPasswordUseCase checks a username and password. The caller
// creates the session.
type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		logger:         logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*user.User, error) {
	existingUser, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(cmd.Username))
	if err != nil {
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Return the same error whether or not the username exists.
	if existingUser == nil || !uc.passwordHasher.Verify(cmd.Password, existingUser.PasswordHash()) {
		uc.logger.Infow("password login rejected", "username", cmd.Username)
		return nil, errors.NewUnauthorizedError(errMsgInvalidCredentials)
	}

	uc.logger.Infow("password login succeeded", "user_id", existingUser.ID())
	return existingUser, nil
}
