package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

type RedemptionService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	custody      Custody
	eventService *EventService
}

func NewRedemptionService(db *gorm.DB, validator *infrastructures.Validator, custody Custody, eventService *EventService) *RedemptionService {
	return &RedemptionService{
		db:           db,
		validator:    validator,
		custody:      custody,
		eventService: eventService,
	}
}

// RedeemVoucher pays out a voucher to its presenting customer. This is the
// one operation that moves real value: the balance debit, custody transfer,
// voucher deactivation, redemption counter and event commit together or not
// at all.
//
// Check order: caller identity, voucher index, activation, text match,
// balance cover.
func (s *RedemptionService) RedeemVoucher(callerAddress, companyId string, req *models.VoucherRedeemRequest) (*models.Voucher, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	companyUUID, err := parseCompanyID(companyId)
	if err != nil {
		return nil, err
	}

	customerUUID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid customer ID format")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	company, err := lockCompany(tx, companyUUID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	var customer models.Customer
	err = tx.Where("id = ? AND company_id = ?", customerUUID, company.ID).First(&customer).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Customer not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to load customer")
	}

	if customer.CustomerAddress != callerAddress {
		tx.Rollback()
		return nil, errors.NewInvalidCustomerError()
	}

	voucher, err := voucherByOrdinal(tx, company, req.VoucherIndex)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if !voucher.Activated {
		tx.Rollback()
		return nil, errors.NewDeclinedVoucherError()
	}

	// Exact byte match against the stored text.
	if voucher.Text != req.VoucherText {
		tx.Rollback()
		return nil, errors.NewInvalidVoucherTextError()
	}

	if voucher.Value.GreaterThan(company.Balance) {
		tx.Rollback()
		return nil, errors.NewInvalidTransferAmountError()
	}

	company.Balance = company.Balance.Sub(voucher.Value)
	if err := tx.Save(company).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update company balance")
	}

	if err := s.custody.Withdraw(tx, company.ID, customer.CustomerAddress, voucher.Value); err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to transfer voucher value")
	}

	voucher.Activated = false
	if err := tx.Save(voucher).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update voucher")
	}

	customer.VoucherCount++
	if err := tx.Save(&customer).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update customer redemption count")
	}

	voucherID := voucher.ID
	customerID := customer.ID
	value := voucher.Value
	event := &models.LedgerEvent{
		Type:       models.EventVoucherRedeemed,
		CompanyID:  company.ID,
		VoucherID:  &voucherID,
		CustomerID: &customerID,
		Amount:     &value,
	}
	if err := s.eventService.Emit(tx, event); err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return voucher, nil
}
