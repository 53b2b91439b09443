package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// PublicGalleryUseCase builds the anonymous view of the portfolio owner's
// work: public categories and the unprotected photos inside them.
type PublicGalleryUseCase struct {
	userRepo     user.Repository
	categoryRepo gallery.CategoryRepository
	photoRepo    gallery.PhotoRepository
	view         categoryView
	logger       logger.Interface
}

func NewPublicGalleryUseCase(
	userRepo user.Repository,
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *PublicGalleryUseCase {
	return &PublicGalleryUseCase{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		photoRepo:    photoRepo,
		view:         categoryView{renderer: renderer, logger: logger},
		logger:       logger,
	}
}

func (uc *PublicGalleryUseCase) Execute(ctx context.Context) (*dto.GalleryResponse, error) {
	owner, err := uc.userRepo.GetFirst(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get portfolio owner", "error", err)
		return nil, fmt.Errorf("failed to get portfolio owner: %w", err)
	}
	if owner == nil {
		return &dto.GalleryResponse{
			Categories: []dto.CategoryResponse{},
			Photos:     []dto.PhotoResponse{},
		}, nil
	}

	categories, err := uc.categoryRepo.ListByUserID(ctx, owner.ID(), true)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	publicOnly := gallery.PhotoFilter{UserID: owner.ID(), PublicOnly: true}
	counts, err := uc.photoRepo.CountByCategory(ctx, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}
	photos, err := uc.photoRepo.List(ctx, publicOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	projection := owner.Projection()
	return &dto.GalleryResponse{
		User:       &projection,
		Categories: uc.view.responses(categories, counts),
		Photos:     dto.ToPhotoResponses(photos, indexCategories(categories)),
	}, nil
}
