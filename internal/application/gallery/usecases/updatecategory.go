package usecases

import (
	"context"
	"time"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

// UpdateCategoryCommand leaves nil fields unchanged. An empty Password makes
// the category public again.
type UpdateCategoryCommand struct {
	UserID      uint
	CategorySID string
	Name        *string
	Description *string
	Password    *string
}

type UpdateCategoryUseCase struct {
	categoryRepo   gallery.CategoryRepository
	photoRepo      gallery.PhotoRepository
	passwordHasher user.PasswordHasher
	view           categoryView
	logger         logger.Interface
}

func NewUpdateCategoryUseCase(
	categoryRepo gallery.CategoryRepository,
	photoRepo gallery.PhotoRepository,
	hasher user.PasswordHasher,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo:   categoryRepo,
		photoRepo:      photoRepo,
		passwordHasher: hasher,
		view:           categoryView{renderer: renderer, logger: logger},
		logger:         logger,
	}
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, cmd UpdateCategoryCommand) (*dto.CategoryResponse, error) {
	category, err := ownedCategory(ctx, uc.categoryRepo, cmd.UserID, cmd.CategorySID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if cmd.Name != nil && *cmd.Name != "" {
		if err := category.Rename(utils.SanitizeText(*cmd.Name), now); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		category.SetDescription(utils.SanitizeOptional(cmd.Description), now)
	}
	if cmd.Password != nil {
		hash, err := hashOptionalPassword(uc.passwordHasher, cmd.Password)
		if err != nil {
			return nil, err
		}
		category.SetPasswordHash(hash, now)
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	counts, err := uc.photoRepo.CountByCategory(ctx, gallery.PhotoFilter{CategoryID: category.ID()})
	if err != nil {
		uc.logger.Warnw("failed to count category photos", "category_sid", category.SID(), "error", err)
	}

	uc.logger.Infow("category updated", "user_id", cmd.UserID, "category_sid", category.SID())

	resp := uc.view.response(category, counts[category.ID()])
	return &resp, nil
}
