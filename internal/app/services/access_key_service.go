package services

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

// AccessKeyService provisions bearer keys and resolves them back to caller
// addresses. The ledger never sees the key, only the resolved address.
type AccessKeyService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewAccessKeyService(db *gorm.DB, validator *infrastructures.Validator) *AccessKeyService {
	return &AccessKeyService{
		db:        db,
		validator: validator,
	}
}

// RegisterKey creates a key for an address. The plaintext key is returned
// once and only its hash is stored.
func (s *AccessKeyService) RegisterKey(req *models.AccessKeyCreateRequest) (*models.AccessKeyCreateResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	plainKey, prefix, err := pkg.GenerateAccessKey()
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to generate access key")
	}

	key := &models.AccessKey{
		Address: req.Address,
		KeyHash: hashKey(plainKey),
		Prefix:  prefix,
	}

	if err := s.db.Create(key).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create access key")
	}

	return &models.AccessKeyCreateResponse{
		Key:       plainKey,
		AccessKey: key,
	}, nil
}

// ResolveAddress maps a presented key to its caller address.
func (s *AccessKeyService) ResolveAddress(plainKey string) (string, error) {
	var key models.AccessKey
	err := s.db.Where("key_hash = ?", hashKey(plainKey)).First(&key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.NewUnauthorizedError("Invalid access key")
		}
		return "", errors.NewInternalServerError(err, "Failed to resolve access key")
	}

	if !key.IsActive() {
		return "", errors.NewUnauthorizedError("Access key is revoked")
	}

	return key.Address, nil
}

// RevokeKey revokes a key owned by the calling address.
func (s *AccessKeyService) RevokeKey(callerAddress, keyId string) error {
	keyUUID, err := uuid.Parse(keyId)
	if err != nil {
		return errors.NewBadRequestError("Invalid access key ID format")
	}

	result := s.db.Model(&models.AccessKey{}).
		Where("id = ? AND address = ? AND revoked_at IS NULL", keyUUID, callerAddress).
		Update("revoked_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to revoke access key")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Access key not found")
	}

	return nil
}

func hashKey(plainKey string) string {
	sum := sha256.Sum256([]byte(plainKey))
	return hex.EncodeToString(sum[:])
}
