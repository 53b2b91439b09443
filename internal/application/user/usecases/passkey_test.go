package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/myphoto-inc/myphoto/internal/application/user/helpers"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/cache"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/testdb"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/repository"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type discoverableFinish func(webauthn.DiscoverableUserHandler, webauthn.SessionData, *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error)

type mockWebAuthnProvider struct {
	mock.Mock
}

func (m *mockWebAuthnProvider) BeginRegistration(u webauthn.User, _ ...webauthn.RegistrationOption) (*protocol.CredentialCreation, *webauthn.SessionData, error) {
	args := m.Called(u)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*protocol.CredentialCreation), args.Get(1).(*webauthn.SessionData), args.Error(2)
}

func (m *mockWebAuthnProvider) FinishRegistration(u webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialCreationData) (*webauthn.Credential, error) {
	args := m.Called(u, session, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webauthn.Credential), args.Error(1)
}

func (m *mockWebAuthnProvider) BeginLogin(u webauthn.User, _ ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error) {
	args := m.Called(u)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*protocol.CredentialAssertion), args.Get(1).(*webauthn.SessionData), args.Error(2)
}

func (m *mockWebAuthnProvider) BeginDiscoverableLogin(_ ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error) {
	args := m.Called()
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*protocol.CredentialAssertion), args.Get(1).(*webauthn.SessionData), args.Error(2)
}

func (m *mockWebAuthnProvider) FinishLogin(u webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error) {
	args := m.Called(u, session, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webauthn.Credential), args.Error(1)
}

func (m *mockWebAuthnProvider) FinishDiscoverableLogin(handler webauthn.DiscoverableUserHandler, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error) {
	args := m.Called(handler, session, response)
	if fn, ok := args.Get(0).(discoverableFinish); ok {
		return fn(handler, session, response)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webauthn.Credential), args.Error(1)
}

type passkeyFixture struct {
	users    *repository.UserRepository
	passkeys *repository.PasskeyCredentialRepository
	store    *cache.MemoryChallengeStore
	provider *mockWebAuthnProvider
	now      time.Time
	seq      int

	alice *user.User
	bob   *user.User

	startReg   *StartPasskeyRegistrationUseCase
	finishReg  *FinishPasskeyRegistrationUseCase
	startAuth  *StartPasskeyAuthenticationUseCase
	finishAuth *FinishPasskeyAuthenticationUseCase
	list       *ListUserPasskeysUseCase
	del        *DeletePasskeyUseCase
}

func newPasskeyFixture(t *testing.T) *passkeyFixture {
	t.Helper()
	db := testdb.New(t)
	log := logger.NewNopLogger()

	f := &passkeyFixture{
		users:    repository.NewUserRepository(db, log),
		passkeys: repository.NewPasskeyCredentialRepository(db, log),
		provider: new(mockWebAuthnProvider),
		now:      time.Now(),
	}
	f.store = cache.NewMemoryChallengeStore(cache.DefaultChallengeTTL).WithClock(func() time.Time { return f.now })

	f.alice = f.createUser(t, "alice")
	f.bob = f.createUser(t, "bob")

	f.startReg = NewStartPasskeyRegistrationUseCase(f.users, f.passkeys, f.provider, f.store, log)
	f.finishReg = NewFinishPasskeyRegistrationUseCase(f.users, f.passkeys, f.provider, f.store, log)
	f.startAuth = NewStartPasskeyAuthenticationUseCase(f.users, f.passkeys, f.provider, f.store, log)
	f.finishAuth = NewFinishPasskeyAuthenticationUseCase(f.users, f.passkeys, f.provider, f.store, log)
	f.list = NewListUserPasskeysUseCase(f.passkeys, log)
	f.del = NewDeletePasskeyUseCase(f.passkeys, log)
	return f
}

func (f *passkeyFixture) createUser(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := user.NewUser(username, username, "$2a$10$hash", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *passkeyFixture) nextChallenge() string {
	f.seq++
	return fmt.Sprintf("challenge-%d", f.seq)
}

func sessionWith(challenge string) interface{} {
	return mock.MatchedBy(func(s webauthn.SessionData) bool { return s.Challenge == challenge })
}

// beginRegistration starts a registration ceremony for u and returns its challenge.
func (f *passkeyFixture) beginRegistration(t *testing.T, u *user.User) string {
	t.Helper()
	challenge := f.nextChallenge()
	f.provider.On("BeginRegistration", mock.Anything).
		Return(&protocol.CredentialCreation{}, &webauthn.SessionData{Challenge: challenge}, nil).Once()

	_, err := f.startReg.Execute(context.Background(), StartPasskeyRegistrationCommand{UserID: u.ID()})
	require.NoError(t, err)
	return challenge
}

func (f *passkeyFixture) finishRegistration(u *user.User, challenge string, credID []byte, signCount uint32) (*FinishPasskeyRegistrationResult, error) {
	f.provider.On("FinishRegistration", mock.Anything, sessionWith(challenge), mock.Anything).
		Return(&webauthn.Credential{
			ID:            credID,
			PublicKey:     []byte("public-key"),
			Authenticator: webauthn.Authenticator{SignCount: signCount},
		}, nil).Maybe()

	return f.finishReg.Execute(context.Background(), FinishPasskeyRegistrationCommand{
		UserID:    u.ID(),
		Challenge: challenge,
		Response:  &protocol.ParsedCredentialCreationData{},
	})
}

func (f *passkeyFixture) register(t *testing.T, u *user.User, credID []byte, signCount uint32) *user.PasskeyCredential {
	t.Helper()
	result, err := f.finishRegistration(u, f.beginRegistration(t, u), credID, signCount)
	require.NoError(t, err)
	return result.Credential
}

// beginAuthentication starts an authentication ceremony. An empty username
// expects a discoverable ceremony.
func (f *passkeyFixture) beginAuthentication(t *testing.T, username string, discoverable bool) string {
	t.Helper()
	challenge := f.nextChallenge()
	session := &webauthn.SessionData{Challenge: challenge}
	if discoverable {
		f.provider.On("BeginDiscoverableLogin").Return(&protocol.CredentialAssertion{}, session, nil).Once()
	} else {
		f.provider.On("BeginLogin", mock.Anything).Return(&protocol.CredentialAssertion{}, session, nil).Once()
	}

	_, err := f.startAuth.Execute(context.Background(), StartPasskeyAuthenticationCommand{Username: username})
	require.NoError(t, err)
	return challenge
}

func assertion(challenge string, credID []byte) *protocol.ParsedCredentialAssertionData {
	return &protocol.ParsedCredentialAssertionData{
		ParsedPublicKeyCredential: protocol.ParsedPublicKeyCredential{RawID: credID},
		Response: protocol.ParsedAssertionResponse{
			CollectedClientData: protocol.CollectedClientData{Challenge: challenge},
		},
	}
}

func (f *passkeyFixture) finishBound(challenge string, credID []byte, signCount uint32) (*FinishPasskeyAuthenticationResult, error) {
	f.provider.On("FinishLogin", mock.Anything, sessionWith(challenge), mock.Anything).
		Return(&webauthn.Credential{
			ID:            credID,
			Authenticator: webauthn.Authenticator{SignCount: signCount},
		}, nil).Maybe()

	return f.finishAuth.Execute(context.Background(), FinishPasskeyAuthenticationCommand{
		Response: assertion(challenge, credID),
	})
}

func TestPasskeyRegistration_Success(t *testing.T) {
	f := newPasskeyFixture(t)
	ctx := context.Background()

	passkey := f.register(t, f.alice, []byte("cred-alice"), 0)
	assert.Equal(t, defaultDeviceName, passkey.DeviceName())
	assert.Equal(t, f.alice.ID(), passkey.UserID())

	stored, err := f.passkeys.GetByCredentialID(ctx, []byte("cred-alice"))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, passkey.SID(), stored.SID())

	listed, err := f.list.Execute(ctx, ListUserPasskeysCommand{UserID: f.alice.ID()})
	require.NoError(t, err)
	require.Len(t, listed.Passkeys, 1)
	assert.Equal(t, passkey.SID(), listed.Passkeys[0].ID)
}

func TestPasskeyRegistration_RejectsChallenge(t *testing.T) {
	t.Run("never issued", func(t *testing.T) {
		f := newPasskeyFixture(t)
		_, err := f.finishRegistration(f.alice, "forged", []byte("cred"), 0)
		assert.True(t, errors.IsVerificationError(err))
		f.provider.AssertNotCalled(t, "FinishRegistration", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("replayed", func(t *testing.T) {
		f := newPasskeyFixture(t)
		challenge := f.beginRegistration(t, f.alice)
		_, err := f.finishRegistration(f.alice, challenge, []byte("cred-1"), 0)
		require.NoError(t, err)

		_, err = f.finishRegistration(f.alice, challenge, []byte("cred-2"), 0)
		assert.True(t, errors.IsVerificationError(err))
	})

	t.Run("expired", func(t *testing.T) {
		f := newPasskeyFixture(t)
		challenge := f.beginRegistration(t, f.alice)
		f.now = f.now.Add(cache.DefaultChallengeTTL + time.Second)

		_, err := f.finishRegistration(f.alice, challenge, []byte("cred"), 0)
		assert.True(t, errors.IsVerificationError(err))
	})

	t.Run("issued for authentication", func(t *testing.T) {
		f := newPasskeyFixture(t)
		challenge := f.beginAuthentication(t, "", true)

		_, err := f.finishRegistration(f.alice, challenge, []byte("cred"), 0)
		assert.True(t, errors.IsVerificationError(err))
	})

	t.Run("issued to another user", func(t *testing.T) {
		f := newPasskeyFixture(t)
		challenge := f.beginRegistration(t, f.bob)

		_, err := f.finishRegistration(f.alice, challenge, []byte("cred"), 0)
		assert.True(t, errors.IsVerificationError(err))
	})
}

func TestPasskeyRegistration_AttestationRejected(t *testing.T) {
	f := newPasskeyFixture(t)
	challenge := f.beginRegistration(t, f.alice)
	f.provider.On("FinishRegistration", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("bad signature")).Once()

	_, err := f.finishReg.Execute(context.Background(), FinishPasskeyRegistrationCommand{
		UserID:    f.alice.ID(),
		Challenge: challenge,
		Response:  &protocol.ParsedCredentialCreationData{},
	})
	assert.True(t, errors.IsVerificationError(err))
}

func TestPasskeyRegistration_DuplicateCredential(t *testing.T) {
	f := newPasskeyFixture(t)
	f.register(t, f.alice, []byte("shared-cred"), 0)

	_, err := f.finishRegistration(f.bob, f.beginRegistration(t, f.bob), []byte("shared-cred"), 0)
	assert.True(t, errors.IsConflictError(err))
}

func TestPasskeyRegistration_DeviceName(t *testing.T) {
	assert.Equal(t, "Passkey", normalizeDeviceName("   "))
	assert.Equal(t, "MacBook", normalizeDeviceName(" MacBook "))
	assert.Len(t, []rune(normalizeDeviceName(string(make([]rune, 150)))), maxDeviceNameRunes)
}

func TestPasskeyAuthentication_CounterMustIncrease(t *testing.T) {
	f := newPasskeyFixture(t)
	ctx := context.Background()
	credID := []byte("cred-alice")
	f.register(t, f.alice, credID, 5)

	_, err := f.finishBound(f.beginAuthentication(t, "alice", false), credID, 5)
	assert.True(t, errors.IsVerificationError(err))

	_, err = f.finishBound(f.beginAuthentication(t, "alice", false), credID, 3)
	assert.True(t, errors.IsVerificationError(err))

	stored, err := f.passkeys.GetByCredentialID(ctx, credID)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), stored.SignCount())
	assert.Nil(t, stored.LastUsedAt())

	result, err := f.finishBound(f.beginAuthentication(t, "alice", false), credID, 6)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID(), result.User.ID())

	stored, err = f.passkeys.GetByCredentialID(ctx, credID)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), stored.SignCount())
	assert.NotNil(t, stored.LastUsedAt())
}

func TestPasskeyAuthentication_ZeroCounterAuthenticator(t *testing.T) {
	f := newPasskeyFixture(t)
	credID := []byte("cred-alice")
	f.register(t, f.alice, credID, 0)

	for i := 0; i < 2; i++ {
		_, err := f.finishBound(f.beginAuthentication(t, "alice", false), credID, 0)
		require.NoError(t, err)
	}
}

func TestPasskeyAuthentication_CloneWarning(t *testing.T) {
	f := newPasskeyFixture(t)
	credID := []byte("cred-alice")
	f.register(t, f.alice, credID, 0)

	challenge := f.beginAuthentication(t, "alice", false)
	f.provider.On("FinishLogin", mock.Anything, sessionWith(challenge), mock.Anything).
		Return(&webauthn.Credential{
			ID:            credID,
			Authenticator: webauthn.Authenticator{SignCount: 9, CloneWarning: true},
		}, nil).Once()

	_, err := f.finishAuth.Execute(context.Background(), FinishPasskeyAuthenticationCommand{
		Response: assertion(challenge, credID),
	})
	assert.True(t, errors.IsVerificationError(err))
}

func TestPasskeyAuthentication_RejectsChallenge(t *testing.T) {
	t.Run("never issued", func(t *testing.T) {
		f := newPasskeyFixture(t)
		f.register(t, f.alice, []byte("cred"), 0)

		_, err := f.finishBound("forged", []byte("cred"), 1)
		assert.True(t, errors.IsVerificationError(err))
		f.provider.AssertNotCalled(t, "FinishLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("issued for registration", func(t *testing.T) {
		f := newPasskeyFixture(t)
		f.register(t, f.alice, []byte("cred"), 0)
		challenge := f.beginRegistration(t, f.alice)

		_, err := f.finishBound(challenge, []byte("cred"), 1)
		assert.True(t, errors.IsVerificationError(err))
	})

	t.Run("replayed", func(t *testing.T) {
		f := newPasskeyFixture(t)
		f.register(t, f.alice, []byte("cred"), 0)
		challenge := f.beginAuthentication(t, "alice", false)

		_, err := f.finishBound(challenge, []byte("cred"), 1)
		require.NoError(t, err)
		_, err = f.finishBound(challenge, []byte("cred"), 2)
		assert.True(t, errors.IsVerificationError(err))
	})
}

func TestPasskeyAuthentication_BoundUserMismatch(t *testing.T) {
	f := newPasskeyFixture(t)
	f.register(t, f.alice, []byte("cred-alice"), 0)
	f.register(t, f.bob, []byte("cred-bob"), 0)

	challenge := f.beginAuthentication(t, "bob", false)
	_, err := f.finishBound(challenge, []byte("cred-alice"), 1)
	assert.True(t, errors.IsVerificationError(err))
	f.provider.AssertNotCalled(t, "FinishLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestPasskeyAuthentication_UnknownCredential(t *testing.T) {
	f := newPasskeyFixture(t)
	challenge := f.beginAuthentication(t, "", true)

	_, err := f.finishAuth.Execute(context.Background(), FinishPasskeyAuthenticationCommand{
		Response: assertion(challenge, []byte("nobody")),
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPasskeyAuthentication_Discoverable(t *testing.T) {
	finishWithHandle := func(handle []byte, credID []byte) discoverableFinish {
		return func(handler webauthn.DiscoverableUserHandler, _ webauthn.SessionData, _ *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error) {
			if _, err := handler(credID, handle); err != nil {
				return nil, err
			}
			return &webauthn.Credential{ID: credID, Authenticator: webauthn.Authenticator{SignCount: 1}}, nil
		}
	}

	t.Run("unknown username falls back to discoverable", func(t *testing.T) {
		f := newPasskeyFixture(t)
		f.beginAuthentication(t, "nobody", true)
		f.provider.AssertNotCalled(t, "BeginLogin", mock.Anything)
	})

	t.Run("user handle matches owner", func(t *testing.T) {
		f := newPasskeyFixture(t)
		credID := []byte("cred-alice")
		f.register(t, f.alice, credID, 0)
		challenge := f.beginAuthentication(t, "", true)

		f.provider.On("FinishDiscoverableLogin", mock.Anything, sessionWith(challenge), mock.Anything).
			Return(finishWithHandle(helpers.UserHandle(f.alice.ID()), credID), nil).Once()

		result, err := f.finishAuth.Execute(context.Background(), FinishPasskeyAuthenticationCommand{
			Response: assertion(challenge, credID),
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", result.User.Username())
	})

	t.Run("user handle of another user", func(t *testing.T) {
		f := newPasskeyFixture(t)
		credID := []byte("cred-alice")
		f.register(t, f.alice, credID, 0)
		challenge := f.beginAuthentication(t, "", true)

		f.provider.On("FinishDiscoverableLogin", mock.Anything, sessionWith(challenge), mock.Anything).
			Return(finishWithHandle(helpers.UserHandle(f.bob.ID()), credID), nil).Once()

		_, err := f.finishAuth.Execute(context.Background(), FinishPasskeyAuthenticationCommand{
			Response: assertion(challenge, credID),
		})
		assert.True(t, errors.IsVerificationError(err))
	})
}

func TestDeletePasskey(t *testing.T) {
	f := newPasskeyFixture(t)
	ctx := context.Background()
	passkey := f.register(t, f.alice, []byte("cred-alice"), 0)

	err := f.del.Execute(ctx, DeletePasskeyCommand{UserID: f.bob.ID(), PasskeySID: passkey.SID()})
	assert.True(t, errors.IsNotFoundError(err))

	err = f.del.Execute(ctx, DeletePasskeyCommand{UserID: f.alice.ID(), PasskeySID: "pk_missing"})
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, f.del.Execute(ctx, DeletePasskeyCommand{UserID: f.alice.ID(), PasskeySID: passkey.SID()}))

	listed, err := f.list.Execute(ctx, ListUserPasskeysCommand{UserID: f.alice.ID()})
	require.NoError(t, err)
	assert.Empty(t, listed.Passkeys)
}
