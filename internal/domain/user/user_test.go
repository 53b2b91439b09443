package user

import (
	"strings"
	"testing"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNewUser(t *testing.T) {
	t.Run("trims and keeps fields", func(t *testing.T) {
		u, err := NewUser(" alice ", "Alice Liddell", "$2a$10$hash", testNow)
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username())
		assert.Equal(t, "Alice Liddell", u.Name())
		assert.Equal(t, testNow, u.CreatedAt())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewUser("", "Alice", "h", testNow)
		assert.Error(t, err)
		_, err = NewUser("al ice", "Alice", "h", testNow)
		assert.Error(t, err)
		_, err = NewUser(strings.Repeat("a", MaxUsernameLength+1), "Alice", "h", testNow)
		assert.Error(t, err)
		_, err = NewUser("alice", " ", "h", testNow)
		assert.Error(t, err)
		_, err = NewUser("alice", "Alice", "", testNow)
		assert.Error(t, err)
	})
}

func TestUserProjectionHasNoHash(t *testing.T) {
	u, err := ReconstructUser(7, "alice", "Alice", "$2a$10$secret", testNow, testNow)
	require.NoError(t, err)

	p := u.Projection()
	assert.Equal(t, uint(7), p.ID)
	assert.Equal(t, "alice", p.Username)
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("pw12345678"))
}

func TestSessionExpiry(t *testing.T) {
	s, err := NewSession(1, "abc", testNow, 7*24*time.Hour)
	require.NoError(t, err)

	assert.False(t, s.IsExpired(testNow.Add(7*24*time.Hour-time.Second)))
	assert.True(t, s.IsExpired(testNow.Add(7*24*time.Hour)))

	_, err = NewSession(0, "abc", testNow, time.Hour)
	assert.Error(t, err)
}

func TestPasskeyRecordAssertion(t *testing.T) {
	newPasskey := func(t *testing.T, count uint32) *PasskeyCredential {
		cred := &webauthn.Credential{
			ID:            []byte{1, 2, 3},
			PublicKey:     []byte{4, 5, 6},
			Authenticator: webauthn.Authenticator{SignCount: count},
		}
		p, err := NewPasskeyCredentialFromWebAuthn(1, cred, "MacBook", "pk_test", testNow)
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name    string
		stored  uint32
		got     uint32
		wantErr bool
	}{
		{"both zero", 0, 0, false},
		{"starts counting", 0, 3, false},
		{"increments", 5, 6, false},
		{"replayed", 5, 5, true},
		{"decreased", 5, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPasskey(t, tt.stored)
			later := testNow.Add(time.Minute)

			err := p.RecordAssertion(tt.got, later)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCounterNotIncreasing)
				assert.Equal(t, tt.stored, p.SignCount())
				assert.Nil(t, p.LastUsedAt())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.got, p.SignCount())
			require.NotNil(t, p.LastUsedAt())
			assert.Equal(t, later, *p.LastUsedAt())
		})
	}
}

func TestPasskeyToWebAuthnCredential(t *testing.T) {
	p, err := RestorePasskeyCredential(PasskeyState{
		ID: 3, SID: "pk_x", UserID: 1,
		CredentialID: []byte{9}, PublicKey: []byte{8}, AttestationType: "none",
		SignCount: 4, BackupEligible: true, Transports: []string{"internal"},
		CreatedAt: testNow, UpdatedAt: testNow,
	})
	require.NoError(t, err)

	c := p.ToWebAuthnCredential()
	_, err = RestorePasskeyCredential(PasskeyState{ID: 4, SID: "pk_y"})
	assert.Error(t, err)

	assert.Equal(t, []byte{9}, c.ID)
	assert.Equal(t, uint32(4), c.Authenticator.SignCount)
	assert.True(t, c.Flags.BackupEligible)
	assert.Equal(t, "internal", string(c.Transport[0]))
}
