package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/mapper"
)

type DeleteCategoryCommand struct {
	UserID      uint
	CategorySID string
}

// DeleteCategoryUseCase removes a category with its photos. Image files are
// removed once the rows are gone.
type DeleteCategoryUseCase struct {
	categoryRepo gallery.CategoryRepository
	photoRepo    gallery.PhotoRepository
	blobs        gallery.BlobStore
	txManager    TransactionRunner
	logger       logger.Interface
}

func NewDeleteCategoryUseCase(
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	blobs gallery.BlobStore,
	txManager TransactionRunner,
	logger logger.Interface,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		photoRepo:    photoRepo,
		blobs:        blobs,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, cmd DeleteCategoryCommand) error {
	var filenames []string

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		category, err := ownedCategory(txCtx, uc.categoryRepo, cmd.UserID, cmd.CategorySID)
		if err != nil {
			return err
		}

		photos, err := uc.photoRepo.List(txCtx, gallery.PhotoFilter{CategoryID: category.ID()})
		if err != nil {
			return fmt.Errorf("failed to list photos: %w", err)
		}
		filenames = mapper.MapSlice(photos, (*gallery.Photo).Filename)

		if err := uc.photoRepo.DeleteByCategoryID(txCtx, category.ID()); err != nil {
			return err
		}
		return uc.categoryRepo.Delete(txCtx, category.ID())
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to delete category", "category_sid", cmd.CategorySID, "error", err)
		}
		return err
	}

	for _, name := range filenames {
		if err := uc.blobs.Delete(ctx, name); err != nil {
			uc.logger.Warnw("failed to remove image file", "filename", name, "error", err)
		}
	}

	uc.logger.Infow("category deleted", "user_id", cmd.UserID, "category_sid", cmd.CategorySID, "photos_removed", len(filenames))
	return nil
}
