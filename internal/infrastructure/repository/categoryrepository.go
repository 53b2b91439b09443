package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/mappers"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
	"github.com/myphoto-inc/myphoto/internal/shared/db"
	apperrors "github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

const errMsgCategoryExists = "Category with this name already exists"

// CategoryRepository implements gallery.CategoryRepository
type CategoryRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCategoryRepository(db *gorm.DB, logger logger.Interface) *CategoryRepository {
	return &CategoryRepository{db: db, logger: logger}
}

func (r *CategoryRepository) Create(ctx context.Context, category *gallery.Category) error {
	model := mappers.CategoryToModel(category)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError(errMsgCategoryExists)
		}
		r.logger.Errorw("failed to create category", "error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}

	if err := category.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set category ID: %w", err)
	}
	r.logger.Infow("category created", "id", model.ID, "slug", model.Slug)
	return nil
}

func (r *CategoryRepository) first(ctx context.Context, query func(*gorm.DB) *gorm.DB) (*gallery.Category, error) {
	var model models.CategoryModel
	if err := query(db.GetTxFromContext(ctx, r.db)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return mappers.CategoryToEntity(&model)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*gallery.Category, error) {
	return r.first(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
}

func (r *CategoryRepository) GetBySID(ctx context.Context, sid string) (*gallery.Category, error) {
	return r.first(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("sid = ?", sid) })
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, userID uint, slug string) (*gallery.Category, error) {
	return r.first(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("user_id = ? AND slug = ?", userID, slug) })
}

func (r *CategoryRepository) ListByUserID(ctx context.Context, userID uint, publicOnly bool) ([]*gallery.Category, error) {
	var list []*models.CategoryModel

	q := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID)
	if publicOnly {
		q = q.Where("password_hash IS NULL")
	}
	if err := q.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list categories", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return mappers.CategoriesToEntities(list)
}

func (r *CategoryRepository) Update(ctx context.Context, category *gallery.Category) error {
	model := mappers.CategoryToModel(category)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CategoryModel{ID: model.ID}).Updates(map[string]interface{}{
		"name":          model.Name,
		"slug":          model.Slug,
		"description":   model.Description,
		"password_hash": model.PasswordHash,
		"updated_at":    model.UpdatedAt,
	})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) || errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError(errMsgCategoryExists)
		}
		r.logger.Errorw("failed to update category", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Category not found")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.CategoryModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete category", "id", id, "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Delete(&models.CategoryModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	return nil
}
