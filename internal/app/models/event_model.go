package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerEventType identifies which ledger transition produced an event.
type LedgerEventType string

const (
	EventCompanyCreated     LedgerEventType = "COMPANY_CREATED"
	EventCompanyWithdrawal  LedgerEventType = "COMPANY_WITHDRAWAL"
	EventVoucherCreated     LedgerEventType = "VOUCHER_CREATED"
	EventVoucherActivated   LedgerEventType = "VOUCHER_ACTIVATED"
	EventVoucherDeactivated LedgerEventType = "VOUCHER_DEACTIVATED"
	EventVoucherDeclined    LedgerEventType = "VOUCHER_DECLINED"
	EventVoucherRedeemed    LedgerEventType = "VOUCHER_REDEEMED"
	EventCustomerCreated    LedgerEventType = "CUSTOMER_CREATED"
)

// LedgerEvent is an append-only notification record. Rows are written inside
// the transaction of the operation that produced them, so an event exists
// exactly when its operation committed.
type LedgerEvent struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Type       LedgerEventType  `gorm:"index" json:"type"`
	CompanyID  uuid.UUID        `gorm:"type:uuid;index" json:"company_id"`
	VoucherID  *uuid.UUID       `gorm:"type:uuid" json:"voucher_id,omitempty"`
	CustomerID *uuid.UUID       `gorm:"type:uuid" json:"customer_id,omitempty"`
	Amount     *decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount,omitempty"`
	Recipient  *string          `json:"recipient,omitempty"`
	EmittedAt  time.Time        `gorm:"autoCreateTime" json:"emitted_at"`
}

func (e *LedgerEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
