// Package repository implements the domain repositories on gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/mappers"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
	"github.com/myphoto-inc/myphoto/internal/shared/db"
	apperrors "github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError("Username already exists")
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "username", model.Username)
	return nil
}

func (r *UserRepository) first(ctx context.Context, query func(*gorm.DB) *gorm.DB) (*user.User, error) {
	var model models.UserModel

	if err := query(db.GetTxFromContext(ctx, r.db)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) })
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("username = ?", username) })
}

func (r *UserRepository) GetFirst(ctx context.Context) (*user.User, error) {
	return r.first(ctx, func(q *gorm.DB) *gorm.DB { return q.Order("created_at ASC, id ASC") })
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{ID: model.ID}).Updates(map[string]interface{}{
		"name":          model.Name,
		"password_hash": model.PasswordHash,
		"updated_at":    model.UpdatedAt,
	})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("User not found")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.UserModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete user", "id", id, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	r.logger.Infow("user deleted", "id", id)
	return nil
}
