package user

import (
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/myphoto-inc/myphoto/internal/shared/mapper"
)

// ErrCounterNotIncreasing signals a possibly cloned authenticator.
var ErrCounterNotIncreasing = fmt.Errorf("signature counter did not increase")

// PasskeyCredential is a WebAuthn public-key credential bound to one user.
type PasskeyCredential struct {
	id              uint
	sid             string
	userID          uint
	credentialID    []byte
	publicKey       []byte
	attestationType string
	aaguid          []byte
	signCount       uint32
	backupEligible  bool
	backupState     bool
	transports      []string
	deviceName      string
	lastUsedAt      *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewPasskeyCredentialFromWebAuthn builds a passkey from a verified
// registration result.
func NewPasskeyCredentialFromWebAuthn(userID uint, cred *webauthn.Credential, deviceName, sid string, now time.Time) (*PasskeyCredential, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if cred == nil || len(cred.ID) == 0 {
		return nil, fmt.Errorf("credential ID is required")
	}
	if len(cred.PublicKey) == 0 {
		return nil, fmt.Errorf("public key is required")
	}
	if sid == "" {
		return nil, fmt.Errorf("passkey SID is required")
	}

	return &PasskeyCredential{
		sid:             sid,
		userID:          userID,
		credentialID:    cred.ID,
		publicKey:       cred.PublicKey,
		attestationType: cred.AttestationType,
		aaguid:          cred.Authenticator.AAGUID,
		signCount:       cred.Authenticator.SignCount,
		backupEligible:  cred.Flags.BackupEligible,
		backupState:     cred.Flags.BackupState,
		transports:      mapper.MapSlice(cred.Transport, transportName),
		deviceName:      deviceName,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// PasskeyState is the persisted form of a passkey.
type PasskeyState struct {
	ID              uint
	SID             string
	UserID          uint
	CredentialID    []byte
	PublicKey       []byte
	AttestationType string
	AAGUID          []byte
	SignCount       uint32
	BackupEligible  bool
	BackupState     bool
	Transports      []string
	DeviceName      string
	LastUsedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestorePasskeyCredential rebuilds a stored passkey.
func RestorePasskeyCredential(st PasskeyState) (*PasskeyCredential, error) {
	if st.ID == 0 || st.SID == "" {
		return nil, fmt.Errorf("passkey credential requires an ID and SID")
	}
	if len(st.CredentialID) == 0 || len(st.PublicKey) == 0 {
		return nil, fmt.Errorf("passkey credential %s has no key material", st.SID)
	}

	return &PasskeyCredential{
		id:              st.ID,
		sid:             st.SID,
		userID:          st.UserID,
		credentialID:    st.CredentialID,
		publicKey:       st.PublicKey,
		attestationType: st.AttestationType,
		aaguid:          st.AAGUID,
		signCount:       st.SignCount,
		backupEligible:  st.BackupEligible,
		backupState:     st.BackupState,
		transports:      st.Transports,
		deviceName:      st.DeviceName,
		lastUsedAt:      st.LastUsedAt,
		createdAt:       st.CreatedAt,
		updatedAt:       st.UpdatedAt,
	}, nil
}

func (p *PasskeyCredential) ID() uint                { return p.id }
func (p *PasskeyCredential) SID() string             { return p.sid }
func (p *PasskeyCredential) UserID() uint            { return p.userID }
func (p *PasskeyCredential) CredentialID() []byte    { return p.credentialID }
func (p *PasskeyCredential) PublicKey() []byte       { return p.publicKey }
func (p *PasskeyCredential) AttestationType() string { return p.attestationType }
func (p *PasskeyCredential) AAGUID() []byte          { return p.aaguid }
func (p *PasskeyCredential) SignCount() uint32       { return p.signCount }
func (p *PasskeyCredential) BackupEligible() bool    { return p.backupEligible }
func (p *PasskeyCredential) BackupState() bool       { return p.backupState }
func (p *PasskeyCredential) Transports() []string    { return p.transports }
func (p *PasskeyCredential) DeviceName() string      { return p.deviceName }
func (p *PasskeyCredential) LastUsedAt() *time.Time  { return p.lastUsedAt }
func (p *PasskeyCredential) CreatedAt() time.Time    { return p.createdAt }
func (p *PasskeyCredential) UpdatedAt() time.Time    { return p.updatedAt }

// SetID is called once by the repository after insert.
func (p *PasskeyCredential) SetID(id uint) error {
	if p.id != 0 || id == 0 {
		return fmt.Errorf("cannot assign passkey id %d (current %d)", id, p.id)
	}
	p.id = id
	return nil
}

// RecordAssertion applies the counter reported by a verified assertion and
// stamps last use. A counter that does not strictly increase is rejected,
// except when the authenticator reports zero and has never reported otherwise.
func (p *PasskeyCredential) RecordAssertion(newCount uint32, now time.Time) error {
	if p.signCount > 0 && newCount <= p.signCount {
		return fmt.Errorf("%w: got %d, stored %d", ErrCounterNotIncreasing, newCount, p.signCount)
	}
	p.signCount = newCount
	p.lastUsedAt = &now
	p.updatedAt = now
	return nil
}

// ToWebAuthnCredential is the library view used to verify assertions.
func (p *PasskeyCredential) ToWebAuthnCredential() webauthn.Credential {
	return webauthn.Credential{
		ID:              p.credentialID,
		PublicKey:       p.publicKey,
		AttestationType: p.attestationType,
		Transport:       mapper.MapSlice(p.transports, parseTransport),
		Flags: webauthn.CredentialFlags{
			BackupEligible: p.backupEligible,
			BackupState:    p.backupState,
		},
		Authenticator: webauthn.Authenticator{
			AAGUID:    p.aaguid,
			SignCount: p.signCount,
		},
	}
}

func transportName(t protocol.AuthenticatorTransport) string { return string(t) }

func parseTransport(name string) protocol.AuthenticatorTransport {
	return protocol.AuthenticatorTransport(name)
}
