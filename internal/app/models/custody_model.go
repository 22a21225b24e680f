package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustodyDirection string

const (
	CustodyDirectionDeposit    CustodyDirection = "DEPOSIT"
	CustodyDirectionWithdrawal CustodyDirection = "WITHDRAWAL"
)

// CustodyTransfer journals every movement of value across the custody
// boundary, in the same transaction as the ledger mutation that caused it.
type CustodyTransfer struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID        `gorm:"type:uuid;index" json:"company_id"`
	Direction     CustodyDirection `json:"direction"`
	Amount        decimal.Decimal  `gorm:"type:decimal(18,2)" json:"amount"`
	Recipient     *string          `json:"recipient,omitempty"`
	TransferredAt time.Time        `gorm:"autoCreateTime" json:"transferred_at"`
}

func (t *CustodyTransfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
