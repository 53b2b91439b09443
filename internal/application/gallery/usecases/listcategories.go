package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type ListCategoriesCommand struct {
	UserID uint
}

type ListCategoriesUseCase struct {
	categoryRepo gallery.CategoryRepository
	photoRepo    gallery.PhotoRepository
	view         categoryView
	logger       logger.Interface
}

func NewListCategoriesUseCase(
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		photoRepo:    photoRepo,
		view:         categoryView{renderer: renderer, logger: logger},
		logger:       logger,
	}
}

// Execute returns the user's categories, newest first, with photo counts.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, cmd ListCategoriesCommand) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.ListByUserID(ctx, cmd.UserID, false)
	if err != nil {
		uc.logger.Errorw("failed to list categories", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	counts, err := uc.photoRepo.CountByCategory(ctx, gallery.PhotoFilter{UserID: cmd.UserID})
	if err != nil {
		uc.logger.Errorw("failed to count photos", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}

	return uc.view.responses(categories, counts), nil
}
