package mappers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
)

// EncodeCredentialID is the canonical stored form of a WebAuthn credential ID.
func EncodeCredentialID(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

type PasskeyCredentialMapper interface {
	ToEntity(model *models.PasskeyCredentialModel) (*user.PasskeyCredential, error)
	ToModel(entity *user.PasskeyCredential) (*models.PasskeyCredentialModel, error)
	ToEntities(models []*models.PasskeyCredentialModel) ([]*user.PasskeyCredential, error)
}

type passkeyCredentialMapperImpl struct{}

func NewPasskeyCredentialMapper() PasskeyCredentialMapper {
	return &passkeyCredentialMapperImpl{}
}

func (m *passkeyCredentialMapperImpl) ToEntity(model *models.PasskeyCredentialModel) (*user.PasskeyCredential, error) {
	if model == nil {
		return nil, nil
	}

	credentialID, err := base64.StdEncoding.DecodeString(model.CredentialID)
	if err != nil {
		return nil, fmt.Errorf("failed to decode credential ID: %w", err)
	}
	publicKey, err := base64.StdEncoding.DecodeString(model.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}

	var transports []string
	if len(model.Transports) > 0 {
		if err := json.Unmarshal(model.Transports, &transports); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transports: %w", err)
		}
	}

	credential, err := user.RestorePasskeyCredential(user.PasskeyState{
		ID:              model.ID,
		SID:             model.SID,
		UserID:          model.UserID,
		CredentialID:    credentialID,
		PublicKey:       publicKey,
		AttestationType: model.AttestationType,
		AAGUID:          model.AAGUID,
		SignCount:       model.SignCount,
		BackupEligible:  model.BackupEligible,
		BackupState:     model.BackupState,
		Transports:      transports,
		DeviceName:      model.DeviceName,
		LastUsedAt:      model.LastUsedAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct passkey credential entity: %w", err)
	}
	return credential, nil
}

func (m *passkeyCredentialMapperImpl) ToModel(entity *user.PasskeyCredential) (*models.PasskeyCredentialModel, error) {
	if entity == nil {
		return nil, nil
	}

	transports := entity.Transports()
	if transports == nil {
		transports = []string{}
	}
	transportsJSON, err := json.Marshal(transports)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transports: %w", err)
	}

	return &models.PasskeyCredentialModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		UserID:          entity.UserID(),
		CredentialID:    EncodeCredentialID(entity.CredentialID()),
		PublicKey:       base64.StdEncoding.EncodeToString(entity.PublicKey()),
		AttestationType: entity.AttestationType(),
		AAGUID:          entity.AAGUID(),
		SignCount:       entity.SignCount(),
		BackupEligible:  entity.BackupEligible(),
		BackupState:     entity.BackupState(),
		Transports:      datatypes.JSON(transportsJSON),
		DeviceName:      entity.DeviceName(),
		LastUsedAt:      entity.LastUsedAt(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *passkeyCredentialMapperImpl) ToEntities(list []*models.PasskeyCredentialModel) ([]*user.PasskeyCredential, error) {
	out := make([]*user.PasskeyCredential, len(list))
	for i, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("passkey %s: %w", model.SID, err)
		}
		out[i] = entity
	}
	return out, nil
}
