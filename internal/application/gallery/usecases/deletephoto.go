package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type DeletePhotoCommand struct {
	UserID   uint
	PhotoSID string
}

type DeletePhotoUseCase struct {
	photoRepo gallery.PhotoRepository
	blobs     gallery.BlobStore
	logger    logger.Interface
}

func NewDeletePhotoUseCase(
	photoRepo gallery.PhotoRepository,
	blobs gallery.BlobStore,
	logger logger.Interface,
) *DeletePhotoUseCase {
	return &DeletePhotoUseCase{
		photoRepo: photoRepo,
		blobs:     blobs,
		logger:    logger,
	}
}

// Execute removes the row, then the stored file. A file that cannot be
// removed is logged and left behind.
func (uc *DeletePhotoUseCase) Execute(ctx context.Context, cmd DeletePhotoCommand) error {
	photo, err := uc.photoRepo.GetBySID(ctx, cmd.PhotoSID)
	if err != nil {
		uc.logger.Errorw("failed to get photo", "photo_sid", cmd.PhotoSID, "error", err)
		return fmt.Errorf("failed to get photo: %w", err)
	}
	if photo == nil || !photo.IsOwnedBy(cmd.UserID) {
		return errors.NewNotFoundError("Photo not found")
	}

	if err := uc.photoRepo.Delete(ctx, photo.ID()); err != nil {
		return err
	}

	if err := uc.blobs.Delete(ctx, photo.Filename()); err != nil {
		uc.logger.Warnw("failed to remove image file", "filename", photo.Filename(), "error", err)
	}

	uc.logger.Infow("photo deleted", "user_id", cmd.UserID, "photo_sid", cmd.PhotoSID)
	return nil
}
