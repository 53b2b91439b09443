package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/myphoto-inc/myphoto/internal/application/user/helpers"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/cache"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type FinishPasskeyAuthenticationCommand struct {
	// Challenge defaults to the one echoed in the signed client data.
	Challenge string
	Response  *protocol.ParsedCredentialAssertionData
}

type FinishPasskeyAuthenticationResult struct {
	User    *user.User
	Passkey *user.PasskeyCredential
}

// FinishPasskeyAuthenticationUseCase verifies an assertion and applies clone
// detection. Creating the session is left to the caller.
type FinishPasskeyAuthenticationUseCase struct {
	userRepo       user.Repository
	passkeyRepo    user.PasskeyCredentialRepository
	webAuthn       WebAuthnProvider
	challengeStore cache.ChallengeStore
	logger         logger.Interface
}

func NewFinishPasskeyAuthenticationUseCase(
	userRepo user.Repository,
	passkeyRepo user.PasskeyCredentialRepository,
	webAuthn WebAuthnProvider,
	challengeStore cache.ChallengeStore,
	logger logger.Interface,
) *FinishPasskeyAuthenticationUseCase {
	return &FinishPasskeyAuthenticationUseCase{
		userRepo:       userRepo,
		passkeyRepo:    passkeyRepo,
		webAuthn:       webAuthn,
		challengeStore: challengeStore,
		logger:         logger,
	}
}

func (uc *FinishPasskeyAuthenticationUseCase) Execute(ctx context.Context, cmd FinishPasskeyAuthenticationCommand) (*FinishPasskeyAuthenticationResult, error) {
	if cmd.Response == nil {
		return nil, errors.NewValidationError("Credential response is required")
	}

	challenge := cmd.Challenge
	if challenge == "" {
		challenge = cmd.Response.Response.CollectedClientData.Challenge
	}

	ceremony, err := uc.challengeStore.Consume(ctx, challenge)
	if err != nil {
		uc.logger.Errorw("failed to load passkey challenge", "error", err)
		return nil, fmt.Errorf("failed to load passkey challenge: %w", err)
	}
	if ceremony == nil || ceremony.Kind != cache.CeremonyAuthentication {
		uc.logger.Warnw("rejected passkey authentication challenge")
		return nil, errors.NewVerificationError()
	}

	passkey, err := uc.passkeyRepo.GetByCredentialID(ctx, cmd.Response.RawID)
	if err != nil {
		uc.logger.Errorw("failed to get passkey", "error", err)
		return nil, fmt.Errorf("failed to get passkey: %w", err)
	}
	if passkey == nil {
		return nil, errors.NewNotFoundError("Passkey not found")
	}

	owner, err := uc.userRepo.GetByID(ctx, passkey.UserID())
	if err != nil {
		uc.logger.Errorw("failed to get passkey owner", "passkey_sid", passkey.SID(), "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("Passkey not found")
	}

	if ceremony.UserID != 0 && ceremony.UserID != owner.ID() {
		uc.logger.Warnw("passkey does not belong to the bound user",
			"bound_user_id", ceremony.UserID,
			"passkey_sid", passkey.SID())
		return nil, errors.NewVerificationError()
	}

	credentials, err := uc.passkeyRepo.GetByUserID(ctx, owner.ID())
	if err != nil {
		uc.logger.Errorw("failed to get passkeys", "user_id", owner.ID(), "error", err)
		return nil, fmt.Errorf("failed to get passkeys: %w", err)
	}
	webAuthnUser := helpers.NewWebAuthnUser(owner, credentials)

	var credential *webauthn.Credential
	if ceremony.UserID != 0 {
		credential, err = uc.webAuthn.FinishLogin(webAuthnUser, ceremony.Session, cmd.Response)
	} else {
		credential, err = uc.webAuthn.FinishDiscoverableLogin(
			func(_, userHandle []byte) (webauthn.User, error) {
				if helpers.ParseUserHandle(userHandle) != owner.ID() {
					return nil, fmt.Errorf("user handle does not match credential owner")
				}
				return webAuthnUser, nil
			},
			ceremony.Session,
			cmd.Response,
		)
	}
	if err != nil {
		uc.logger.Warnw("passkey assertion rejected", "passkey_sid", passkey.SID(), "error", err)
		return nil, errors.NewVerificationError()
	}

	if credential.Authenticator.CloneWarning {
		uc.logger.Warnw("possible credential cloning detected", "passkey_sid", passkey.SID())
		return nil, errors.NewVerificationError()
	}
	if err := passkey.RecordAssertion(credential.Authenticator.SignCount, time.Now().UTC()); err != nil {
		uc.logger.Warnw("possible credential cloning detected", "passkey_sid", passkey.SID(), "error", err)
		return nil, errors.NewVerificationError()
	}

	if err := uc.passkeyRepo.Update(ctx, passkey); err != nil {
		uc.logger.Errorw("failed to update passkey sign count", "passkey_sid", passkey.SID(), "error", err)
		return nil, fmt.Errorf("failed to update passkey: %w", err)
	}

	uc.logger.Infow("passkey authentication completed", "user_id", owner.ID(), "passkey_sid", passkey.SID())

	return &FinishPasskeyAuthenticationResult{User: owner, Passkey: passkey}, nil
}
