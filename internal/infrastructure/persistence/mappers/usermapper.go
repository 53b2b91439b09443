// Package mappers converts between domain entities and persistence models.
package mappers

import (
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
}

type userMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &userMapperImpl{}
}

func (m *userMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	u, err := user.ReconstructUser(model.ID, model.Username, model.Name, model.PasswordHash, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return u, nil
}

func (m *userMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID(),
		Username:     entity.Username(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}
