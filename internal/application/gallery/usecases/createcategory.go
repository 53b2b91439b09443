package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/id"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

type CreateCategoryCommand struct {
	UserID      uint
	Name        string
	Description *string
	Password    *string
}

type CreateCategoryUseCase struct {
	categoryRepo   gallery.CategoryRepository
	passwordHasher user.PasswordHasher
	view           categoryView
	logger         logger.Interface
}

func NewCreateCategoryUseCase(
	categoryRepo gallery.CategoryRepository,
	hasher user.PasswordHasher,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo:   categoryRepo,
		passwordHasher: hasher,
		view:           categoryView{renderer: renderer, logger: logger},
		logger:         logger,
	}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (*dto.CategoryResponse, error) {
	passwordHash, err := hashOptionalPassword(uc.passwordHasher, cmd.Password)
	if err != nil {
		return nil, err
	}

	sid, err := id.NewSID(id.PrefixCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to generate category id: %w", err)
	}

	category, err := gallery.NewCategory(
		cmd.UserID,
		sid,
		utils.SanitizeText(cmd.Name),
		utils.SanitizeOptional(cmd.Description),
		passwordHash,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	uc.logger.Infow("category created", "user_id", cmd.UserID, "category_sid", sid, "protected", passwordHash != nil)

	resp := uc.view.response(category, 0)
	return &resp, nil
}
