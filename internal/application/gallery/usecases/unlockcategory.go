package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

type UnlockCategoryCommand struct {
	Slug     string
	Password string
}

// UnlockCategoryUseCase checks a category password and returns the
// category's photos that carry no password of their own.
type UnlockCategoryUseCase struct {
	userRepo       user.Repository
	categoryRepo   gallery.CategoryRepository
	photoRepo      gallery.PhotoRepository
	passwordHasher user.PasswordHasher
	view           categoryView
	logger         logger.Interface
}

func NewUnlockCategoryUseCase(
	userRepo user.Repository,
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	hasher user.PasswordHasher,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *UnlockCategoryUseCase {
	return &UnlockCategoryUseCase{
		userRepo:       userRepo,
		categoryRepo:   categoryRepo,
		photoRepo:      photoRepo,
		passwordHasher: hasher,
		view:           categoryView{renderer: renderer, logger: logger},
		logger:         logger,
	}
}

func (uc *UnlockCategoryUseCase) Execute(ctx context.Context, cmd UnlockCategoryCommand) (*dto.UnlockCategoryResponse, error) {
	owner, err := uc.userRepo.GetFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio owner: %w", err)
	}
	if owner == nil {
		return nil, errors.NewNotFoundError(errMsgCategoryNotFound)
	}

	category, err := uc.categoryRepo.GetBySlug(ctx, owner.ID(), strings.ToLower(strings.TrimSpace(cmd.Slug)))
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError(errMsgCategoryNotFound)
	}

	if hash := category.PasswordHash(); hash != nil && !uc.passwordHasher.Verify(cmd.Password, *hash) {
		uc.logger.Infow("category unlock rejected", "category_sid", category.SID())
		return nil, errors.NewUnauthorizedError("Invalid password")
	}

	photos, err := uc.photoRepo.List(ctx, gallery.PhotoFilter{CategoryID: category.ID(), UnprotectedOnly: true})
	if err != nil {
		uc.logger.Errorw("failed to list photos", "category_sid", category.SID(), "error", err)
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	byID := map[uint]*gallery.Category{category.ID(): category}
	return &dto.UnlockCategoryResponse{
		Category: uc.view.response(category, int64(len(photos))),
		Photos:   dto.ToPhotoResponses(photos, byID),
	}, nil
}
