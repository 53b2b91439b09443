package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// SignupUseCase registers the portfolio owner. Only the first account can be
// created this way; afterwards signup is closed.
type SignupUseCase struct {
	userRepo      user.Repository
	createAccount *CreateAccountUseCase
	txManager     TransactionRunner
	logger        logger.Interface
}

func NewSignupUseCase(
	userRepo user.Repository,
	createAccount *CreateAccountUseCase,
	txManager TransactionRunner,
	logger logger.Interface,
) *SignupUseCase {
	return &SignupUseCase{
		userRepo:      userRepo,
		createAccount: createAccount,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *SignupUseCase) Execute(ctx context.Context, cmd CreateAccountCommand) (*user.User, error) {
	var created *user.User
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		count, err := uc.userRepo.Count(txCtx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if count > 0 {
			return errors.NewForbiddenError("Signup is closed")
		}

		created, err = uc.createAccount.Execute(txCtx, cmd)
		return err
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("signup failed", "error", err)
		}
		return nil, err
	}

	return created, nil
}
