package auth

import (
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/myphoto-inc/myphoto/internal/shared/config"
)

const defaultCeremonyTimeout = 60 * time.Second

// WebAuthnService is the relying party. It is a thin layer over go-webauthn so
// use cases can be tested against a fake.
type WebAuthnService struct {
	webAuthn *webauthn.WebAuthn
}

func NewWebAuthnService(cfg config.WebAuthnConfig) (*WebAuthnService, error) {
	if cfg.RPID == "" || len(cfg.RPOrigins) == 0 {
		return nil, fmt.Errorf("WebAuthn is not configured: rp_id and rp_origins are required")
	}

	rpName := cfg.RPName
	if rpName == "" {
		rpName = "MyPhoto"
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultCeremonyTimeout
	}

	w, err := webauthn.New(&webauthn.Config{
		RPDisplayName:         rpName,
		RPID:                  cfg.RPID,
		RPOrigins:             cfg.RPOrigins,
		AttestationPreference: protocol.PreferNoAttestation,
		Timeouts: webauthn.TimeoutsConfig{
			Login: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    timeout,
				TimeoutUVD: timeout,
			},
			Registration: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    timeout,
				TimeoutUVD: timeout,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create WebAuthn instance: %w", err)
	}

	return &WebAuthnService{webAuthn: w}, nil
}

func (s *WebAuthnService) BeginRegistration(user webauthn.User, opts ...webauthn.RegistrationOption) (*protocol.CredentialCreation, *webauthn.SessionData, error) {
	return s.webAuthn.BeginRegistration(user, opts...)
}

func (s *WebAuthnService) FinishRegistration(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialCreationData) (*webauthn.Credential, error) {
	return s.webAuthn.CreateCredential(user, session, response)
}

// BeginLogin starts a ceremony restricted to the user's credentials.
func (s *WebAuthnService) BeginLogin(user webauthn.User, opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error) {
	return s.webAuthn.BeginLogin(user, opts...)
}

// BeginDiscoverableLogin starts a ceremony with an empty allow-list.
func (s *WebAuthnService) BeginDiscoverableLogin(opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error) {
	return s.webAuthn.BeginDiscoverableLogin(opts...)
}

func (s *WebAuthnService) FinishLogin(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error) {
	return s.webAuthn.ValidateLogin(user, session, response)
}

func (s *WebAuthnService) FinishDiscoverableLogin(handler webauthn.DiscoverableUserHandler, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error) {
	return s.webAuthn.ValidateDiscoverableLogin(handler, session, response)
}
