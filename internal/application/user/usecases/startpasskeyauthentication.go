package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/myphoto-inc/myphoto/internal/application/user/helpers"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/cache"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type StartPasskeyAuthenticationCommand struct {
	// Username is optional. Unknown names and names without passkeys fall
	// back to a discoverable ceremony so existence is not revealed.
	Username string
}

type StartPasskeyAuthenticationResult struct {
	Options *protocol.CredentialAssertion
}

type StartPasskeyAuthenticationUseCase struct {
	userRepo       user.Repository
	passkeyRepo    user.PasskeyCredentialRepository
	webAuthn       WebAuthnProvider
	challengeStore cache.ChallengeStore
	logger         logger.Interface
}

func NewStartPasskeyAuthenticationUseCase(
	userRepo user.Repository,
	passkeyRepo user.PasskeyCredentialRepository,
	webAuthn WebAuthnProvider,
	challengeStore cache.ChallengeStore,
	logger logger.Interface,
) *StartPasskeyAuthenticationUseCase {
	return &StartPasskeyAuthenticationUseCase{
		userRepo:       userRepo,
		passkeyRepo:    passkeyRepo,
		webAuthn:       webAuthn,
		challengeStore: challengeStore,
		logger:         logger,
	}
}

func (uc *StartPasskeyAuthenticationUseCase) Execute(ctx context.Context, cmd StartPasskeyAuthenticationCommand) (*StartPasskeyAuthenticationResult, error) {
	webAuthnUser, err := uc.lookupUser(ctx, strings.TrimSpace(cmd.Username))
	if err != nil {
		return nil, err
	}

	var (
		options     *protocol.CredentialAssertion
		sessionData *webauthn.SessionData
		boundUserID uint
	)
	verification := webauthn.WithUserVerification(protocol.VerificationPreferred)

	if webAuthnUser != nil {
		boundUserID = webAuthnUser.User().ID()
		options, sessionData, err = uc.webAuthn.BeginLogin(webAuthnUser, verification)
	} else {
		options, sessionData, err = uc.webAuthn.BeginDiscoverableLogin(verification)
	}
	if err != nil {
		uc.logger.Errorw("failed to begin passkey authentication", "error", err)
		return nil, fmt.Errorf("failed to begin passkey authentication: %w", err)
	}

	if err := uc.challengeStore.Save(ctx, &cache.PendingCeremony{
		Kind:    cache.CeremonyAuthentication,
		UserID:  boundUserID,
		Session: *sessionData,
	}); err != nil {
		uc.logger.Errorw("failed to store passkey challenge", "error", err)
		return nil, fmt.Errorf("failed to store passkey challenge: %w", err)
	}

	uc.logger.Infow("passkey authentication started", "discoverable", boundUserID == 0)

	return &StartPasskeyAuthenticationResult{Options: options}, nil
}

// lookupUser returns nil when the ceremony should be discoverable.
func (uc *StartPasskeyAuthenticationUseCase) lookupUser(ctx context.Context, username string) (*helpers.WebAuthnUser, error) {
	if username == "" {
		return nil, nil
	}

	existingUser, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existingUser == nil {
		return nil, nil
	}

	credentials, err := uc.passkeyRepo.GetByUserID(ctx, existingUser.ID())
	if err != nil {
		uc.logger.Errorw("failed to get passkeys", "user_id", existingUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to get passkeys: %w", err)
	}
	if len(credentials) == 0 {
		return nil, nil
	}

	return helpers.NewWebAuthnUser(existingUser, credentials), nil
}
