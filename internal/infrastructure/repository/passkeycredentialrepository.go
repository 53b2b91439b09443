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

// PasskeyCredentialRepository implements user.PasskeyCredentialRepository
type PasskeyCredentialRepository struct {
	db     *gorm.DB
	mapper mappers.PasskeyCredentialMapper
	logger logger.Interface
}

func NewPasskeyCredentialRepository(db *gorm.DB, logger logger.Interface) *PasskeyCredentialRepository {
	return &PasskeyCredentialRepository{
		db:     db,
		mapper: mappers.NewPasskeyCredentialMapper(),
		logger: logger,
	}
}

func (r *PasskeyCredentialRepository) Create(ctx context.Context, credential *user.PasskeyCredential) error {
	model, err := r.mapper.ToModel(credential)
	if err != nil {
		return fmt.Errorf("failed to map passkey credential entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError("Passkey is already registered")
		}
		r.logger.Errorw("failed to create passkey credential in database", "error", err)
		return fmt.Errorf("failed to create passkey credential: %w", err)
	}

	if err := credential.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set passkey credential ID: %w", err)
	}

	r.logger.Infow("passkey credential created", "id", model.ID, "user_id", model.UserID)
	return nil
}

func (r *PasskeyCredentialRepository) first(ctx context.Context, column string, value interface{}) (*user.PasskeyCredential, error) {
	var model models.PasskeyCredentialModel

	if err := db.GetTxFromContext(ctx, r.db).Where(column+" = ?", value).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get passkey credential", "by", column, "error", err)
		return nil, fmt.Errorf("failed to get passkey credential: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PasskeyCredentialRepository) GetBySID(ctx context.Context, sid string) (*user.PasskeyCredential, error) {
	return r.first(ctx, "sid", sid)
}

func (r *PasskeyCredentialRepository) GetByCredentialID(ctx context.Context, credentialID []byte) (*user.PasskeyCredential, error) {
	return r.first(ctx, "credential_id", mappers.EncodeCredentialID(credentialID))
}

func (r *PasskeyCredentialRepository) GetByUserID(ctx context.Context, userID uint) ([]*user.PasskeyCredential, error) {
	var list []*models.PasskeyCredentialModel

	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to get passkey credentials by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get passkey credentials: %w", err)
	}
	return r.mapper.ToEntities(list)
}

// Update persists the mutable fields: counter, flags, label and last use.
func (r *PasskeyCredentialRepository) Update(ctx context.Context, credential *user.PasskeyCredential) error {
	model, err := r.mapper.ToModel(credential)
	if err != nil {
		return fmt.Errorf("failed to map passkey credential entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PasskeyCredentialModel{ID: model.ID}).Updates(map[string]interface{}{
		"sign_count":      model.SignCount,
		"backup_state":    model.BackupState,
		"device_name":     model.DeviceName,
		"last_used_at":    model.LastUsedAt,
		"updated_at":      model.UpdatedAt,
		"backup_eligible": model.BackupEligible,
	})
	if result.Error != nil {
		r.logger.Errorw("failed to update passkey credential", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update passkey credential: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Passkey not found")
	}
	return nil
}

func (r *PasskeyCredentialRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.PasskeyCredentialModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete passkey credential", "id", id, "error", err)
		return fmt.Errorf("failed to delete passkey credential: %w", err)
	}
	r.logger.Infow("passkey credential deleted", "id", id)
	return nil
}

func (r *PasskeyCredentialRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Delete(&models.PasskeyCredentialModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete passkey credentials: %w", err)
	}
	return nil
}
