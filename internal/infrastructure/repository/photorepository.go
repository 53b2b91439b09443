package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/mappers"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
	"github.com/myphoto-inc/myphoto/internal/shared/constants"
	"github.com/myphoto-inc/myphoto/internal/shared/db"
	apperrors "github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// PhotoRepository implements gallery.PhotoRepository
type PhotoRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPhotoRepository(db *gorm.DB, logger logger.Interface) *PhotoRepository {
	return &PhotoRepository{db: db, logger: logger}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *gallery.Photo) error {
	model := mappers.PhotoToModel(photo)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError("Photo already exists")
		}
		r.logger.Errorw("failed to create photo", "filename", model.Filename, "error", err)
		return fmt.Errorf("failed to create photo: %w", err)
	}

	if err := photo.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set photo ID: %w", err)
	}
	r.logger.Infow("photo created", "id", model.ID, "category_id", model.CategoryID)
	return nil
}

func (r *PhotoRepository) GetBySID(ctx context.Context, sid string) (*gallery.Photo, error) {
	var model models.PhotoModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return mappers.PhotoToEntity(&model)
}

// scoped applies filter to a query on the photos table.
func (r *PhotoRepository) scoped(ctx context.Context, filter gallery.PhotoFilter) *gorm.DB {
	photos := constants.TablePhotos
	q := db.GetTxFromContext(ctx, r.db).Model(&models.PhotoModel{})

	if filter.UserID != 0 {
		q = q.Where(photos+".user_id = ?", filter.UserID)
	}
	if filter.CategoryID != 0 {
		q = q.Where(photos+".category_id = ?", filter.CategoryID)
	}
	if filter.PublicOnly || filter.UnprotectedOnly {
		q = q.Where(photos + ".password_hash IS NULL")
	}
	if filter.PublicOnly {
		q = q.Joins("JOIN " + constants.TableCategories + " ON " + constants.TableCategories + ".id = " + photos + ".category_id").
			Where(constants.TableCategories + ".password_hash IS NULL")
	}
	return q
}

func (r *PhotoRepository) List(ctx context.Context, filter gallery.PhotoFilter) ([]*gallery.Photo, error) {
	var list []*models.PhotoModel

	photos := constants.TablePhotos
	err := r.scoped(ctx, filter).
		Select(photos + ".*").
		Order(photos + ".created_at DESC, " + photos + ".id DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Errorw("failed to list photos", "user_id", filter.UserID, "error", err)
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return mappers.PhotosToEntities(list)
}

func (r *PhotoRepository) CountByCategory(ctx context.Context, filter gallery.PhotoFilter) (map[uint]int64, error) {
	var rows []struct {
		CategoryID uint
		Count      int64
	}

	photos := constants.TablePhotos
	err := r.scoped(ctx, filter).
		Select(photos + ".category_id AS category_id, COUNT(*) AS count").
		Group(photos + ".category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.PhotoModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete photo", "id", id, "error", err)
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func (r *PhotoRepository) DeleteByCategoryID(ctx context.Context, categoryID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("category_id = ?", categoryID).Delete(&models.PhotoModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete photos of category: %w", err)
	}
	return nil
}

func (r *PhotoRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Delete(&models.PhotoModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete photos of user: %w", err)
	}
	return nil
}
