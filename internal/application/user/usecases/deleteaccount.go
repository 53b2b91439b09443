package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/mapper"
)

type DeleteAccountCommand struct {
	Username string
}

// DeleteAccountUseCase removes an account and everything it owns. Rows go in
// one transaction; image files are removed after it commits.
type DeleteAccountUseCase struct {
	userRepo     user.Repository
	sessionRepo  user.SessionRepository
	passkeyRepo  user.PasskeyCredentialRepository
	categoryRepo gallery.CategoryRepository
	photoRepo    gallery.PhotoRepository
	blobs        gallery.BlobStore
	txManager    TransactionRunner
	logger       logger.Interface
}

func NewDeleteAccountUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	passkeyRepo user.PasskeyCredentialRepository,
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	blobs gallery.BlobStore,
	txManager TransactionRunner,
	logger logger.Interface,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		passkeyRepo:  passkeyRepo,
		categoryRepo: categoryRepo,
		photoRepo:    photoRepo,
		blobs:        blobs,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, cmd DeleteAccountCommand) error {
	var (
		userID    uint
		filenames []string
	)

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existingUser, err := uc.userRepo.GetByUsername(txCtx, strings.TrimSpace(cmd.Username))
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if existingUser == nil {
			return errors.NewNotFoundError("User not found")
		}
		userID = existingUser.ID()

		photos, err := uc.photoRepo.List(txCtx, gallery.PhotoFilter{UserID: userID})
		if err != nil {
			return fmt.Errorf("failed to list photos: %w", err)
		}
		filenames = mapper.MapSlice(photos, (*gallery.Photo).Filename)

		if err := uc.photoRepo.DeleteByUserID(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		if err := uc.categoryRepo.DeleteByUserID(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete categories: %w", err)
		}
		if err := uc.passkeyRepo.DeleteByUserID(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete passkeys: %w", err)
		}
		if err := uc.sessionRepo.DeleteByUserID(txCtx, userID); err != nil {
			return fmt.Errorf("failed to delete sessions: %w", err)
		}
		return uc.userRepo.Delete(txCtx, userID)
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("account deletion failed", "username", cmd.Username, "error", err)
		}
		return err
	}

	for _, name := range filenames {
		if err := uc.blobs.Delete(ctx, name); err != nil {
			uc.logger.Warnw("failed to remove image file", "filename", name, "error", err)
		}
	}

	uc.logger.Infow("account deleted", "user_id", userID, "photos_removed", len(filenames))
	return nil
}
