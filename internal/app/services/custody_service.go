package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
)

// Custody is the asset-custody boundary: it moves fungible value into and
// out of the ledger on a company's behalf. Implementations are handed the
// operation's transaction so a failed transfer aborts the whole operation.
type Custody interface {
	Deposit(tx *gorm.DB, companyID uuid.UUID, amount decimal.Decimal) error
	Withdraw(tx *gorm.DB, companyID uuid.UUID, recipient string, amount decimal.Decimal) error
}

// LedgerCustody is the built-in custody implementation: a transfer journal
// kept alongside the ledger itself.
type LedgerCustody struct {
	db *gorm.DB
}

func NewLedgerCustody(db *gorm.DB) *LedgerCustody {
	return &LedgerCustody{
		db: db,
	}
}

func (c *LedgerCustody) Deposit(tx *gorm.DB, companyID uuid.UUID, amount decimal.Decimal) error {
	transfer := &models.CustodyTransfer{
		CompanyID: companyID,
		Direction: models.CustodyDirectionDeposit,
		Amount:    amount,
	}
	return tx.Create(transfer).Error
}

func (c *LedgerCustody) Withdraw(tx *gorm.DB, companyID uuid.UUID, recipient string, amount decimal.Decimal) error {
	transfer := &models.CustodyTransfer{
		CompanyID: companyID,
		Direction: models.CustodyDirectionWithdrawal,
		Amount:    amount,
		Recipient: &recipient,
	}
	return tx.Create(transfer).Error
}

// GetTransfers exposes the custody journal for a company, newest first.
func (c *LedgerCustody) GetTransfers(companyId string, pagination *models.PaginationRequest) (*models.Pagination[[]models.CustodyTransfer], error) {
	companyUUID, err := parseCompanyID(companyId)
	if err != nil {
		return nil, err
	}

	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := c.db.Model(&models.CustodyTransfer{}).Where("company_id = ?", companyUUID).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count custody transfers")
	}

	var transfers []models.CustodyTransfer
	err = c.db.Where("company_id = ?", companyUUID).
		Order("transferred_at DESC").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&transfers).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get custody transfers")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.CustodyTransfer]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      transfers,
	}, nil
}
