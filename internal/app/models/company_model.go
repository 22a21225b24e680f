package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Company struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `json:"name"`
	OwnerAddress  string          `gorm:"index" json:"owner_address"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	VoucherCount  int64           `json:"voucher_count"`
	CustomerCount int64           `json:"customer_count"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CompanyCreateRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	OwnerAddress *string `json:"owner_address,omitempty" validate:"omitempty,max=255"`
}

type FundsAddRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type FundsWithdrawRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Recipient string          `json:"recipient" validate:"required,max=255"`
}
