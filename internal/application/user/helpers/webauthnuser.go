// Package helpers adapts domain accounts to the go-webauthn user interface.
package helpers

import (
	"encoding/binary"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
)

// userHandleLength is the size of the WebAuthn user handle: the account ID
// as a big-endian uint64.
const userHandleLength = 8

// WebAuthnUser adapts the domain User to the webauthn.User interface
type WebAuthnUser struct {
	user        *user.User
	credentials []*user.PasskeyCredential
}

func NewWebAuthnUser(u *user.User, credentials []*user.PasskeyCredential) *WebAuthnUser {
	return &WebAuthnUser{
		user:        u,
		credentials: credentials,
	}
}

func (w *WebAuthnUser) WebAuthnID() []byte {
	return UserHandle(w.user.ID())
}

func (w *WebAuthnUser) WebAuthnName() string {
	return w.user.Username()
}

func (w *WebAuthnUser) WebAuthnDisplayName() string {
	return w.user.Name()
}

func (w *WebAuthnUser) WebAuthnCredentials() []webauthn.Credential {
	creds := make([]webauthn.Credential, len(w.credentials))
	for i, c := range w.credentials {
		creds[i] = c.ToWebAuthnCredential()
	}
	return creds
}

// ExclusionList describes the user's existing credentials so an
// authenticator does not register twice.
func (w *WebAuthnUser) ExclusionList() []protocol.CredentialDescriptor {
	descriptors := make([]protocol.CredentialDescriptor, 0, len(w.credentials))
	for _, c := range w.credentials {
		descriptors = append(descriptors, c.ToWebAuthnCredential().Descriptor())
	}
	return descriptors
}

func (w *WebAuthnUser) User() *user.User {
	return w.user
}

// UserHandle encodes an account ID as a WebAuthn user handle.
func UserHandle(id uint) []byte {
	b := make([]byte, userHandleLength)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// ParseUserHandle decodes a user handle; malformed handles yield 0.
func ParseUserHandle(b []byte) uint {
	if len(b) != userHandleLength {
		return 0
	}
	return uint(binary.BigEndian.Uint64(b))
}
