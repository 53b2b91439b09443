package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/application/user/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type ListUserPasskeysCommand struct {
	UserID uint
}

type ListUserPasskeysResult struct {
	Passkeys []dto.PasskeyResponse
}

type ListUserPasskeysUseCase struct {
	passkeyRepo user.PasskeyCredentialRepository
	logger      logger.Interface
}

func NewListUserPasskeysUseCase(
	passkeyRepo user.PasskeyCredentialRepository,
	logger logger.Interface,
) *ListUserPasskeysUseCase {
	return &ListUserPasskeysUseCase{
		passkeyRepo: passkeyRepo,
		logger:      logger,
	}
}

func (uc *ListUserPasskeysUseCase) Execute(ctx context.Context, cmd ListUserPasskeysCommand) (*ListUserPasskeysResult, error) {
	credentials, err := uc.passkeyRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user passkeys", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to get passkeys: %w", err)
	}

	uc.logger.Debugw("listed user passkeys", "user_id", cmd.UserID, "count", len(credentials))

	return &ListUserPasskeysResult{
		Passkeys: dto.ToPasskeyResponses(credentials),
	}, nil
}
