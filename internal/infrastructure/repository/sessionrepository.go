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
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// SessionRepository implements user.SessionRepository
type SessionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSessionRepository(db *gorm.DB, logger logger.Interface) *SessionRepository {
	return &SessionRepository{db: db, logger: logger}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := mappers.SessionToModel(session)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create session", "user_id", session.UserID, "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}
	session.ID = model.ID
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*user.Session, error) {
	var model models.SessionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("token_hash = ?", tokenHash).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return mappers.SessionToEntity(&model), nil
}

func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("token_hash = ?", tokenHash).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	result := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Delete(&models.SessionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete sessions: %w", result.Error)
	}
	r.logger.Infow("sessions revoked", "user_id", userID, "count", result.RowsAffected)
	return nil
}
