package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/testdb"
	apperrors "github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func createUser(t *testing.T, db *gorm.DB, username string, at time.Time) *user.User {
	t.Helper()
	u, err := user.NewUser(username, "Test "+username, "$2a$10$hash", at)
	require.NoError(t, err)
	require.NoError(t, NewUserRepository(db, logger.NewNopLogger()).Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	db := testdb.New(t)
	repo := NewUserRepository(db, logger.NewNopLogger())
	ctx := context.Background()

	alice := createUser(t, db, "alice", testNow)
	createUser(t, db, "bob", testNow.Add(time.Hour))

	t.Run("duplicate username conflicts", func(t *testing.T) {
		dup, err := user.NewUser("alice", "Other", "$2a$10$x", testNow)
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, alice.ID(), got.ID())

		missing, err := repo.GetByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.Nil(t, missing)

		first, err := repo.GetFirst(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", first.Username())

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("update password", func(t *testing.T) {
		require.NoError(t, alice.ChangePassword("$2a$10$new", testNow.Add(time.Minute)))
		require.NoError(t, repo.Update(ctx, alice))

		got, err := repo.GetByID(ctx, alice.ID())
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$new", got.PasswordHash())
	})
}

func TestSessionRepository(t *testing.T) {
	db := testdb.New(t)
	repo := NewSessionRepository(db, logger.NewNopLogger())
	ctx := context.Background()
	alice := createUser(t, db, "alice", testNow)

	s, err := user.NewSession(alice.ID(), "hash-1", testNow, time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, s))
	assert.NotZero(t, s.ID)

	got, err := repo.GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID(), got.UserID)
	assert.True(t, got.ExpiresAt.Equal(testNow.Add(time.Hour)))

	require.NoError(t, repo.DeleteByTokenHash(ctx, "hash-1"))
	require.NoError(t, repo.DeleteByTokenHash(ctx, "hash-1"))
	got, err = repo.GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPasskeyCredentialRepository(t *testing.T) {
	db := testdb.New(t)
	repo := NewPasskeyCredentialRepository(db, logger.NewNopLogger())
	ctx := context.Background()
	alice := createUser(t, db, "alice", testNow)

	cred := &webauthn.Credential{
		ID:            []byte{0xde, 0xad, 0xbe, 0xef},
		PublicKey:     []byte{1, 2, 3, 4},
		Transport:     nil,
		Authenticator: webauthn.Authenticator{SignCount: 1},
	}
	pk, err := user.NewPasskeyCredentialFromWebAuthn(alice.ID(), cred, "Phone", "pk_one", testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, pk))

	t.Run("duplicate credential id conflicts", func(t *testing.T) {
		dup, err := user.NewPasskeyCredentialFromWebAuthn(alice.ID(), cred, "Phone", "pk_two", testNow)
		require.NoError(t, err)
		assert.True(t, apperrors.IsConflictError(repo.Create(ctx, dup)))
	})

	t.Run("lookup by raw credential id", func(t *testing.T) {
		got, err := repo.GetByCredentialID(ctx, []byte{0xde, 0xad, 0xbe, 0xef})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []byte{1, 2, 3, 4}, got.PublicKey())
		assert.Empty(t, got.Transports())
	})

	t.Run("counter update persists", func(t *testing.T) {
		require.NoError(t, pk.RecordAssertion(9, testNow.Add(time.Minute)))
		require.NoError(t, repo.Update(ctx, pk))

		got, err := repo.GetBySID(ctx, "pk_one")
		require.NoError(t, err)
		assert.Equal(t, uint32(9), got.SignCount())
		require.NotNil(t, got.LastUsedAt())
	})
}

func TestPhotoRepository_PublicFilters(t *testing.T) {
	db := testdb.New(t)
	log := logger.NewNopLogger()
	categories := NewCategoryRepository(db, log)
	photos := NewPhotoRepository(db, log)
	ctx := context.Background()
	alice := createUser(t, db, "alice", testNow)

	hash := "$2a$10$pw"
	public, err := gallery.NewCategory(alice.ID(), "cat_pub", "Landscapes", nil, nil, testNow)
	require.NoError(t, err)
	require.NoError(t, categories.Create(ctx, public))
	private, err := gallery.NewCategory(alice.ID(), "cat_priv", "Family", nil, &hash, testNow)
	require.NoError(t, err)
	require.NoError(t, categories.Create(ctx, private))

	t.Run("slug conflict", func(t *testing.T) {
		dup, err := gallery.NewCategory(alice.ID(), "cat_dup", "landscapes", nil, nil, testNow)
		require.NoError(t, err)
		err = categories.Create(ctx, dup)
		assert.True(t, apperrors.IsConflictError(err))
		assert.Equal(t, "Category with this name already exists", apperrors.GetAppError(err).Message)
	})

	add := func(sid string, cat *gallery.Category, pw *string, at time.Time) {
		p, err := gallery.NewPhoto(gallery.PhotoParams{
			SID:          sid,
			UserID:       alice.ID(),
			CategoryID:   cat.ID(),
			Title:        sid,
			Filename:     sid + ".jpg",
			PasswordHash: pw,
			Metadata:     gallery.ImageMetadata{Width: 10, Height: 10, Size: 1, MimeType: "image/jpeg"},
		}, at)
		require.NoError(t, err)
		require.NoError(t, photos.Create(ctx, p))
	}
	add("ph_a", public, nil, testNow)
	add("ph_b", public, &hash, testNow.Add(time.Minute))
	add("ph_c", private, nil, testNow.Add(2*time.Minute))
	add("ph_d", public, nil, testNow.Add(3*time.Minute))

	t.Run("public only", func(t *testing.T) {
		list, err := photos.List(ctx, gallery.PhotoFilter{UserID: alice.ID(), PublicOnly: true})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "ph_d", list[0].SID())
		assert.Equal(t, "ph_a", list[1].SID())
	})

	t.Run("unprotected within protected category", func(t *testing.T) {
		list, err := photos.List(ctx, gallery.PhotoFilter{CategoryID: private.ID(), UnprotectedOnly: true})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "ph_c", list[0].SID())
	})

	t.Run("counts", func(t *testing.T) {
		all, err := photos.CountByCategory(ctx, gallery.PhotoFilter{UserID: alice.ID()})
		require.NoError(t, err)
		assert.Equal(t, int64(3), all[public.ID()])
		assert.Equal(t, int64(1), all[private.ID()])

		pub, err := photos.CountByCategory(ctx, gallery.PhotoFilter{UserID: alice.ID(), PublicOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), pub[public.ID()])
		assert.Zero(t, pub[private.ID()])
	})

	t.Run("category listing", func(t *testing.T) {
		list, err := categories.ListByUserID(ctx, alice.ID(), true)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "landscapes", list[0].Slug())
	})
}
