package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type DeletePasskeyCommand struct {
	UserID     uint
	PasskeySID string // pk_xxx format
}

type DeletePasskeyUseCase struct {
	passkeyRepo user.PasskeyCredentialRepository
	logger      logger.Interface
}

func NewDeletePasskeyUseCase(
	passkeyRepo user.PasskeyCredentialRepository,
	logger logger.Interface,
) *DeletePasskeyUseCase {
	return &DeletePasskeyUseCase{
		passkeyRepo: passkeyRepo,
		logger:      logger,
	}
}

// Execute deletes a passkey owned by the caller. Passkeys of other users
// are reported as not found.
func (uc *DeletePasskeyUseCase) Execute(ctx context.Context, cmd DeletePasskeyCommand) error {
	credential, err := uc.passkeyRepo.GetBySID(ctx, cmd.PasskeySID)
	if err != nil {
		uc.logger.Errorw("failed to get passkey", "passkey_sid", cmd.PasskeySID, "error", err)
		return fmt.Errorf("failed to get passkey: %w", err)
	}
	if credential == nil || credential.UserID() != cmd.UserID {
		return errors.NewNotFoundError("Passkey not found")
	}

	if err := uc.passkeyRepo.Delete(ctx, credential.ID()); err != nil {
		uc.logger.Errorw("failed to delete passkey", "passkey_sid", cmd.PasskeySID, "error", err)
		return fmt.Errorf("failed to delete passkey: %w", err)
	}

	uc.logger.Infow("passkey deleted", "user_id", cmd.UserID, "passkey_sid", cmd.PasskeySID)
	return nil
}
