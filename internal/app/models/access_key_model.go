package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessKey maps a bearer key (stored hashed) to the caller address the
// ledger services consume. Identity verification beyond the key lookup is
// out of scope for the ledger itself.
type AccessKey struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Address   string     `gorm:"index" json:"address"`
	KeyHash   string     `gorm:"uniqueIndex" json:"-"`
	Prefix    string     `json:"prefix"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (k *AccessKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

func (k *AccessKey) IsActive() bool {
	return k.RevokedAt == nil
}

type AccessKeyCreateRequest struct {
	Address string `json:"address" validate:"required,max=255"`
}

// AccessKeyCreateResponse carries the plaintext key exactly once, at
// registration time.
type AccessKeyCreateResponse struct {
	Key       string     `json:"key"`
	AccessKey *AccessKey `json:"access_key"`
}
