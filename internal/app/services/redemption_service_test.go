package services

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
)

func redeemRequest(customer *models.Customer, index int64, text string) *models.VoucherRedeemRequest {
	return &models.VoucherRedeemRequest{
		CustomerID:   customer.ID.String(),
		VoucherIndex: index,
		VoucherText:  text,
	}
}

func TestRedeemVoucherLifecycle(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)

	createTestVoucher(t, s, company, "10OFF", 100)
	_, err := s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), 0)
	require.NoError(t, err)

	// redemption before funding fails, nothing mutates
	_, err = s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	requireRejection(t, err, errors.CodeInvalidTransferAmount)

	fundCompany(t, s, company, 100)

	voucher, err := s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	require.NoError(t, err)
	assert.False(t, voucher.Activated)

	company = reloadCompany(t, s, company)
	assert.True(t, company.Balance.IsZero())

	fresh, err := s.customers.GetCustomer(customer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.VoucherCount)

	events := companyEvents(t, s, company, models.EventVoucherRedeemed)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Amount)
	assert.True(t, events[0].Amount.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, events[0].CustomerID)
	assert.Equal(t, customer.ID, *events[0].CustomerID)

	// the payout is journaled to the customer address
	var transfers []models.CustodyTransfer
	require.NoError(t, s.db.
		Where("company_id = ? AND direction = ?", company.ID, models.CustodyDirectionWithdrawal).
		Find(&transfers).Error)
	require.Len(t, transfers, 1)
	require.NotNil(t, transfers[0].Recipient)
	assert.Equal(t, customerAddr, *transfers[0].Recipient)
}

func TestRedeemRequiresCustomerCaller(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	createTestVoucher(t, s, company, "10OFF", 100)
	_, err := s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), 0)
	require.NoError(t, err)
	fundCompany(t, s, company, 100)

	// all other conditions hold, the caller identity alone fails it
	_, err = s.redemption.RedeemVoucher(strangerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	requireRejection(t, err, errors.CodeInvalidCustomer)

	// the company owner cannot redeem on the customer's behalf either
	_, err = s.redemption.RedeemVoucher(ownerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	requireRejection(t, err, errors.CodeInvalidCustomer)

	assert.True(t, reloadCompany(t, s, company).Balance.Equal(decimal.NewFromInt(100)))
}

func TestRedeemInactiveVoucher(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	createTestVoucher(t, s, company, "10OFF", 100)
	fundCompany(t, s, company, 100)

	_, err := s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	requireRejection(t, err, errors.CodeDeclinedVoucher)
}

func TestRedeemTextMismatch(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	createTestVoucher(t, s, company, "10OFF", 100)
	_, err := s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), 0)
	require.NoError(t, err)
	fundCompany(t, s, company, 100)

	// byte equality, case matters
	_, err = s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10off"))
	requireRejection(t, err, errors.CodeInvalidVoucherText)

	assert.True(t, reloadCompany(t, s, company).Balance.Equal(decimal.NewFromInt(100)))
}

func TestRedeemIndexOutOfRange(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	createTestVoucher(t, s, company, "10OFF", 100)

	_, err := s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 3, "10OFF"))
	requireRejection(t, err, errors.CodeInvalidVoucherIndex)
}

func TestRedeemTwice(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	createTestVoucher(t, s, company, "10OFF", 100)
	_, err := s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), 0)
	require.NoError(t, err)
	fundCompany(t, s, company, 200)

	_, err = s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	require.NoError(t, err)

	// a successful redemption deactivates the voucher
	_, err = s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	requireRejection(t, err, errors.CodeDeclinedVoucher)

	assert.True(t, reloadCompany(t, s, company).Balance.Equal(decimal.NewFromInt(100)))
}

func TestRedeemedVoucherCanBeReArmed(t *testing.T) {
	s := newTestServices(t)
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	createTestVoucher(t, s, company, "10OFF", 100)
	_, err := s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), 0)
	require.NoError(t, err)
	fundCompany(t, s, company, 200)

	_, err = s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	require.NoError(t, err)

	// the company may re-activate a redeemed voucher, re-arming it
	_, err = s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), 0)
	require.NoError(t, err)

	_, err = s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, 0, "10OFF"))
	require.NoError(t, err)

	assert.True(t, reloadCompany(t, s, company).Balance.IsZero())

	fresh, err := s.customers.GetCustomer(customer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.VoucherCount)
}

// TestLedgerInvariants runs a random operation sequence and checks that the
// counters always match the stored rows and the balance never goes negative.
func TestLedgerInvariants(t *testing.T) {
	s := newTestServices(t)
	s.config.StrictActivation = false
	company := createTestCompany(t, s, ownerAddr)
	customer := addTestCustomer(t, s, company, customerAddr)
	rng := rand.New(rand.NewSource(1))

	checkInvariants := func() {
		fresh := reloadCompany(t, s, company)

		var voucherRows, customerRows int64
		require.NoError(t, s.db.Model(&models.Voucher{}).Where("company_id = ?", company.ID).Count(&voucherRows).Error)
		require.NoError(t, s.db.Model(&models.Customer{}).Where("company_id = ?", company.ID).Count(&customerRows).Error)

		assert.Equal(t, fresh.VoucherCount, voucherRows)
		assert.Equal(t, fresh.CustomerCount, customerRows)
		assert.False(t, fresh.Balance.IsNegative())
	}

	for i := 0; i < 200; i++ {
		switch rng.Intn(6) {
		case 0:
			createTestVoucher(t, s, company, "SPIN", rng.Int63n(50))
		case 1:
			fundCompany(t, s, company, rng.Int63n(100)+1)
		case 2:
			if count := reloadCompany(t, s, company).VoucherCount; count > 0 {
				_, err := s.vouchers.ActivateVoucher(ownerAddr, company.ID.String(), rng.Int63n(count))
				require.NoError(t, err)
			}
		case 3:
			if count := reloadCompany(t, s, company).VoucherCount; count > 0 {
				_, err := s.vouchers.DeactivateVoucher(ownerAddr, company.ID.String(), rng.Int63n(count))
				require.NoError(t, err)
			}
		case 4:
			if count := reloadCompany(t, s, company).VoucherCount; count > 0 {
				// may fail with a rejection, never with partial state
				s.redemption.RedeemVoucher(customerAddr, company.ID.String(), redeemRequest(customer, rng.Int63n(count), "SPIN"))
			}
		case 5:
			_, err := s.companies.WithdrawFunds(ownerAddr, company.ID.String(), &models.FundsWithdrawRequest{
				Amount:    decimal.NewFromInt(rng.Int63n(80) + 1),
				Recipient: "addr_treasury",
			})
			if err != nil {
				requireRejection(t, err, errors.CodeInvalidWithdrawalAmount)
			}
		}

		checkInvariants()
	}
}
