package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

// failingCustody rejects every transfer.
type failingCustody struct{}

func (failingCustody) Deposit(tx *gorm.DB, companyID uuid.UUID, amount decimal.Decimal) error {
	return errors.New("custody unavailable")
}

func (failingCustody) Withdraw(tx *gorm.DB, companyID uuid.UUID, recipient string, amount decimal.Decimal) error {
	return errors.New("custody unavailable")
}

func TestCustodyFailureRollsBackDeposit(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)

	validator := infrastructures.NewValidator()
	broken := NewCompanyService(s.db, validator, failingCustody{}, s.events)

	_, err := broken.AddFunds(ownerAddr, company.ID.String(), &models.FundsAddRequest{
		Amount: decimal.NewFromInt(100),
	})
	require.Error(t, err)

	assert.True(t, reloadCompany(t, s, company).Balance.IsZero())
}

func TestCustodyFailureRollsBackRedemption(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	createTestVoucher(t, s, company, "10OFF", 100)
	_, err := s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), 0)
	require.NoError(t, err)
	fundCompany(t, s, company, 100)

	validator := infrastructures.NewValidator()
	broken := NewRedemptionService(s.db, validator, failingCustody{}, s.events)

	_, err = broken.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	require.Error(t, err)

	// no mutation survives a custody failure
	assert.True(t, reloadCompany(t, s, company).Balance.Equal(decimal.NewFromInt(100)))

	voucher, err := s.vouchers.GetVoucher(company.ID.String(), 0)
	require.NoError(t, err)
	assert.True(t, voucher.Activated)

	fresh, err := s.customers.GetCustomer(customer.ID.String())
	require.NoError(t, err)
	assert.Zero(t, fresh.VoucherCount)

	assert.Empty(t, companyEvents(t, s, company, models.EventVoucherRedeemed))
}

func TestCustodyJournal(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	fundCompany(t, s, company, 100)
	_, err := s.companies.WithdrawFunds(ownerAddr, company.ID.String(), &models.FundsWithdrawRequest{
		Amount:    decimal.NewFromInt(40),
		Recipient: "addr_treasury",
	})
	require.NoError(t, err)

	page, err := s.custody.GetTransfers(company.ID.String(), &models.PaginationRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
}
