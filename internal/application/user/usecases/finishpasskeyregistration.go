package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-webauthn/webauthn/protocol"

	"github.com/myphoto-inc/myphoto/internal/application/user/helpers"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/cache"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/id"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

const (
	maxPasskeysPerUser = 10
	defaultDeviceName  = "Passkey"
	maxDeviceNameRunes = 100
)

type FinishPasskeyRegistrationCommand struct {
	UserID uint
	// Challenge defaults to the one echoed in the signed client data.
	Challenge  string
	Response   *protocol.ParsedCredentialCreationData
	DeviceName string
}

type FinishPasskeyRegistrationResult struct {
	Credential *user.PasskeyCredential
}

// FinishPasskeyRegistrationUseCase verifies an attestation against the stored
// challenge and persists the new credential.
type FinishPasskeyRegistrationUseCase struct {
	userRepo       user.Repository
	passkeyRepo    user.PasskeyCredentialRepository
	webAuthn       WebAuthnProvider
	challengeStore cache.ChallengeStore
	logger         logger.Interface
}

func NewFinishPasskeyRegistrationUseCase(
	userRepo user.Repository,
	passkeyRepo user.PasskeyCredentialRepository,
	webAuthn WebAuthnProvider,
	challengeStore cache.ChallengeStore,
	logger logger.Interface,
) *FinishPasskeyRegistrationUseCase {
	return &FinishPasskeyRegistrationUseCase{
		userRepo:       userRepo,
		passkeyRepo:    passkeyRepo,
		webAuthn:       webAuthn,
		challengeStore: challengeStore,
		logger:         logger,
	}
}

func (uc *FinishPasskeyRegistrationUseCase) Execute(ctx context.Context, cmd FinishPasskeyRegistrationCommand) (*FinishPasskeyRegistrationResult, error) {
	if cmd.Response == nil {
		return nil, errors.NewValidationError("Credential response is required")
	}

	challenge := cmd.Challenge
	if challenge == "" {
		challenge = cmd.Response.Response.CollectedClientData.Challenge
	}

	// Consume first so a failed attempt cannot be retried with the same challenge.
	ceremony, err := uc.challengeStore.Consume(ctx, challenge)
	if err != nil {
		uc.logger.Errorw("failed to load passkey challenge", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to load passkey challenge: %w", err)
	}
	if ceremony == nil || ceremony.Kind != cache.CeremonyRegistration || ceremony.UserID != cmd.UserID {
		uc.logger.Warnw("rejected passkey registration challenge", "user_id", cmd.UserID)
		return nil, errors.NewVerificationError()
	}

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
	if len(existingCredentials) >= maxPasskeysPerUser {
		uc.logger.Warnw("user reached maximum passkey limit", "user_id", cmd.UserID, "count", len(existingCredentials))
		return nil, errors.NewValidationError(fmt.Sprintf("Maximum number of passkeys reached (limit: %d)", maxPasskeysPerUser))
	}

	webAuthnUser := helpers.NewWebAuthnUser(existingUser, existingCredentials)

	credential, err := uc.webAuthn.FinishRegistration(webAuthnUser, ceremony.Session, cmd.Response)
	if err != nil {
		uc.logger.Warnw("passkey attestation rejected", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewVerificationError()
	}

	sid, err := id.NewSID(id.PrefixPasskey)
	if err != nil {
		return nil, fmt.Errorf("failed to generate passkey id: %w", err)
	}

	passkey, err := user.NewPasskeyCredentialFromWebAuthn(
		cmd.UserID,
		credential,
		normalizeDeviceName(cmd.DeviceName),
		sid,
		time.Now().UTC(),
	)
	if err != nil {
		uc.logger.Errorw("failed to create passkey credential entity", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewVerificationError()
	}

	// The unique index on credential_id reports duplicates as ConflictError.
	if err := uc.passkeyRepo.Create(ctx, passkey); err != nil {
		return nil, err
	}

	uc.logger.Infow("passkey registration completed", "user_id", cmd.UserID, "passkey_sid", passkey.SID())

	return &FinishPasskeyRegistrationResult{Credential: passkey}, nil
}

func normalizeDeviceName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultDeviceName
	}
	if r := []rune(name); len(r) > maxDeviceNameRunes {
		name = string(r[:maxDeviceNameRunes])
	}
	return name
}
