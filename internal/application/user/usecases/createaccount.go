package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type CreateAccountCommand struct {
	Username string
	Name     string
	Password string
}

// CreateAccountUseCase validates, hashes and persists a new account. It does
// not check whether other accounts exist; operators use it from the CLI.
type CreateAccountUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewCreateAccountUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		logger:         logger,
	}
}

func (uc *CreateAccountUseCase) Execute(ctx context.Context, cmd CreateAccountCommand) (*user.User, error) {
	if err := user.ValidatePassword(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	hash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	newUser, err := user.NewUser(cmd.Username, cmd.Name, hash, time.Now().UTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create user", "username", newUser.Username(), "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Infow("account created", "user_id", newUser.ID(), "username", newUser.Username())
	return newUser, nil
}
