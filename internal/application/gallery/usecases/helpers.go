package usecases

import (
	"context"
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/application/gallery/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/mapper"
)

const errMsgCategoryNotFound = "Category not found"

// categoryView renders category descriptions for responses. A markdown
// failure drops the HTML and keeps the source.
type categoryView struct {
	renderer DescriptionRenderer
	logger   logger.Interface
}

func (v categoryView) response(c *gallery.Category, photoCount int64) dto.CategoryResponse {
	html := ""
	if d := c.Description(); d != nil && v.renderer != nil {
		rendered, err := v.renderer.ToHTMLSanitized(*d)
		if err != nil {
			v.logger.Warnw("failed to render category description", "category_sid", c.SID(), "error", err)
		} else {
			html = rendered
		}
	}
	return dto.ToCategoryResponse(c, photoCount, html)
}

func (v categoryView) responses(categories []*gallery.Category, counts map[uint]int64) []dto.CategoryResponse {
	return mapper.MapSlice(categories, func(c *gallery.Category) dto.CategoryResponse {
		return v.response(c, counts[c.ID()])
	})
}

func indexCategories(categories []*gallery.Category) map[uint]*gallery.Category {
	return mapper.KeyBy(categories, (*gallery.Category).ID)
}

// ownedCategory loads a category by sid. Categories of other users are
// reported as not found.
func ownedCategory(ctx context.Context, repo gallery.CategoryRepository, userID uint, sid string) (*gallery.Category, error) {
	category, err := repo.GetBySID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil || !category.IsOwnedBy(userID) {
		return nil, errors.NewNotFoundError(errMsgCategoryNotFound)
	}
	return category, nil
}

// hashOptionalPassword returns nil for a missing or empty password.
func hashOptionalPassword(hasher user.PasswordHasher, password *string) (*string, error) {
	if password == nil || *password == "" {
		return nil, nil
	}
	hash, err := hasher.Hash(*password)
	if err != nil {
		return nil, err
	}
	return &hash, nil
}
