package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Voucher rows are append-only: a redeemed or declined voucher stays in the
// company's sequence as a historical record, it is only deactivated.
type Voucher struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_vouchers_company_ordinal,priority:1" json:"company_id"`
	Ordinal   int64           `gorm:"column:idx;uniqueIndex:idx_vouchers_company_ordinal,priority:2" json:"index"`
	Text      string          `json:"text"`
	Value     decimal.Decimal `gorm:"type:decimal(18,2)" json:"value"`
	Activated bool            `json:"activated"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type VoucherCreateRequest struct {
	Text  string          `json:"text" validate:"required,max=255"`
	Value decimal.Decimal `json:"value" validate:"required"`
}

type VoucherRedeemRequest struct {
	CustomerID   string `json:"customer_id" validate:"required,uuid"`
	VoucherIndex int64  `json:"voucher_index" validate:"min=0"`
	VoucherText  string `json:"voucher_text" validate:"max=255"`
}
