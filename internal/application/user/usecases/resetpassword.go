package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type ResetPasswordCommand struct {
	Username    string
	NewPassword string
}

// ResetPasswordUseCase replaces a password and signs the account out
// everywhere, atomically.
type ResetPasswordUseCase struct {
	userRepo       user.Repository
	sessions       SessionRevoker
	passwordHasher user.PasswordHasher
	txManager      TransactionRunner
	logger         logger.Interface
}

func NewResetPasswordUseCase(
	userRepo user.Repository,
	sessions SessionRevoker,
	hasher user.PasswordHasher,
	txManager TransactionRunner,
	logger logger.Interface,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:       userRepo,
		sessions:       sessions,
		passwordHasher: hasher,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	if err := user.ValidatePassword(cmd.NewPassword); err != nil {
		return errors.NewValidationError(err.Error())
	}

	hash, err := uc.passwordHasher.Hash(cmd.NewPassword)
	if err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existingUser, err := uc.userRepo.GetByUsername(txCtx, strings.TrimSpace(cmd.Username))
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if existingUser == nil {
			return errors.NewNotFoundError("User not found")
		}

		if err := existingUser.ChangePassword(hash, time.Now().UTC()); err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.userRepo.Update(txCtx, existingUser); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return uc.sessions.RevokeAllForUser(txCtx, existingUser.ID())
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("password reset failed", "username", cmd.Username, "error", err)
		}
		return err
	}

	uc.logger.Infow("password reset", "username", cmd.Username)
	return nil
}
