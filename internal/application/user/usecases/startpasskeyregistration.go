package usecases

import (
	"context"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/myphoto-inc/myphoto/internal/application/user/helpers"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/cache"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type StartPasskeyRegistrationCommand struct {
	UserID uint
}

type StartPasskeyRegistrationResult struct {
	Options *protocol.CredentialCreation
}

// StartPasskeyRegistrationUseCase issues creation options for a signed-in user
// and remembers the challenge server-side.
type StartPasskeyRegistrationUseCase struct {
	userRepo       user.Repository
	passkeyRepo    user.PasskeyCredentialRepository
	webAuthn       WebAuthnProvider
	challengeStore cache.ChallengeStore
	logger         logger.Interface
}

func NewStartPasskeyRegistrationUseCase(
	userRepo user.Repository,
	passkeyRepo user.PasskeyCredentialRepository,
	webAuthn WebAuthnProvider,
	challengeStore cache.ChallengeStore,
	logger logger.Interface,
) *StartPasskeyRegistrationUseCase {
	return &StartPasskeyRegistrationUseCase{
		userRepo:       userRepo,
		passkeyRepo:    passkeyRepo,
		webAuthn:       webAuthn,
		challengeStore: challengeStore,
		logger:         logger,
	}
}

func (uc *StartPasskeyRegistrationUseCase) Execute(ctx context.Context, cmd StartPasskeyRegistrationCommand) (*StartPasskeyRegistrationResult, error) {
	existingUser, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existingUser == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	existingCredentials, err := uc.passkeyRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get existing passkeys", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to get existing passkeys: %w", err)
	}

	webAuthnUser := helpers.NewWebAuthnUser(existingUser, existingCredentials)

	options, sessionData, err := uc.webAuthn.BeginRegistration(
		webAuthnUser,
		webauthn.WithExclusions(webAuthnUser.ExclusionList()),
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			AuthenticatorAttachment: protocol.Platform,
			ResidentKey:             protocol.ResidentKeyRequirementPreferred,
			UserVerification:        protocol.VerificationPreferred,
		}),
	)
	if err != nil {
		uc.logger.Errorw("failed to begin passkey registration", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to begin passkey registration: %w", err)
	}

	if err := uc.challengeStore.Save(ctx, &cache.PendingCeremony{
		Kind:    cache.CeremonyRegistration,
		UserID:  existingUser.ID(),
		Session: *sessionData,
	}); err != nil {
		uc.logger.Errorw("failed to store passkey challenge", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to store passkey challenge: %w", err)
	}

	uc.logger.Infow("passkey registration started", "user_id", cmd.UserID)

	return &StartPasskeyRegistrationResult{Options: options}, nil
}
