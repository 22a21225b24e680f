package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_customers_company_ordinal,priority:1;index:idx_customers_company_address,priority:1" json:"company_id"`
	Ordinal         int64     `gorm:"column:idx;uniqueIndex:idx_customers_company_ordinal,priority:2" json:"index"`
	CustomerAddress string    `gorm:"index:idx_customers_company_address,priority:2" json:"customer_address"`
	VoucherCount    int64     `json:"voucher_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CustomerAddRequest struct {
	CustomerAddress string `json:"customer_address" validate:"required,max=255"`
}
