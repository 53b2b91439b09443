package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// ListPhotosCommand lists all of a user's photos, or one category's when
// CategorySID is set.
type ListPhotosCommand struct {
	UserID      uint
	CategorySID string
}

type ListPhotosUseCase struct {
	categoryRepo gallery.CategoryRepository
	photoRepo    gallery.PhotoRepository
	logger       logger.Interface
}

func NewListPhotosUseCase(
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	logger logger.Interface,
) *ListPhotosUseCase {
	return &ListPhotosUseCase{
		categoryRepo: categoryRepo,
		photoRepo:    photoRepo,
		logger:       logger,
	}
}

func (uc *ListPhotosUseCase) Execute(ctx context.Context, cmd ListPhotosCommand) ([]dto.PhotoResponse, error) {
	filter := gallery.PhotoFilter{UserID: cmd.UserID}
	if cmd.CategorySID != "" {
		category, err := ownedCategory(ctx, uc.categoryRepo, cmd.UserID, cmd.CategorySID)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = category.ID()
	}

	photos, err := uc.photoRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list photos", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	categories, err := uc.categoryRepo.ListByUserID(ctx, cmd.UserID, false)
	if err != nil {
		uc.logger.Errorw("failed to list categories", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return dto.ToPhotoResponses(photos, indexCategories(categories)), nil
}
