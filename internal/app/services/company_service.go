package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

type CompanyService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	custody      Custody
	eventService *EventService
}

func NewCompanyService(db *gorm.DB, validator *infrastructures.Validator, custody Custody, eventService *EventService) *CompanyService {
	return &CompanyService{
		db:           db,
		validator:    validator,
		custody:      custody,
		eventService: eventService,
	}
}

// lockCompany loads a company under a row lock. All mutating operations go
// through this, so operations against the same company are serialized and
// ordinal voucher/customer indices stay valid for the whole transaction.
func lockCompany(tx *gorm.DB, companyID uuid.UUID) (*models.Company, error) {
	q := tx
	// sqlite rejects FOR UPDATE and serializes writers on its own
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var company models.Company
	err := q.Where("id = ?", companyID).
		First(&company).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Company not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to load company")
	}
	return &company, nil
}

func parseCompanyID(companyId string) (uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyId)
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("Invalid company ID format")
	}
	return companyUUID, nil
}

// CreateCompany registers a new company owned by the caller, or by the
// address supplied in the request. Anyone may create a company.
func (s *CompanyService) CreateCompany(callerAddress string, req *models.CompanyCreateRequest) (*models.Company, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	owner := callerAddress
	if req.OwnerAddress != nil {
		owner = *req.OwnerAddress
	}

	company := &models.Company{
		Name:         req.Name,
		OwnerAddress: owner,
		Balance:      decimal.Zero,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(company).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to create company")
	}

	event := &models.LedgerEvent{
		Type:      models.EventCompanyCreated,
		CompanyID: company.ID,
	}
	if err := s.eventService.Emit(tx, event); err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return company, nil
}

func (s *CompanyService) GetCompany(companyId string) (*models.Company, error) {
	companyUUID, err := parseCompanyID(companyId)
	if err != nil {
		return nil, err
	}

	var company models.Company
	err = s.db.Where("id = ?", companyUUID).First(&company).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Company not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get company")
	}

	return &company, nil
}

// GetBalance is a pure read of the company's current fund balance.
func (s *CompanyService) GetBalance(companyId string) (decimal.Decimal, error) {
	company, err := s.GetCompany(companyId)
	if err != nil {
		return decimal.Zero, err
	}
	return company.Balance, nil
}

// AddFunds deposits value from custody into the company balance. Only the
// company owner may fund the company. No event is emitted on deposit.
func (s *CompanyService) AddFunds(callerAddress, companyId string, req *models.FundsAddRequest) (*models.Company, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, errors.NewBadRequestError("Amount must be positive")
	}

	companyUUID, err := parseCompanyID(companyId)
	if err != nil {
		return nil, err
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

	if company.OwnerAddress != callerAddress {
		tx.Rollback()
		return nil, errors.NewNotValidCompanyError()
	}

	if err := s.custody.Deposit(tx, company.ID, req.Amount); err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to deposit funds")
	}

	company.Balance = company.Balance.Add(req.Amount)
	if err := tx.Save(company).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update company balance")
	}

	tx.Commit()
	return company, nil
}

// WithdrawFunds debits the company balance and instructs custody to pay the
// recipient. The debit, the custody transfer and the event commit together
// or not at all.
func (s *CompanyService) WithdrawFunds(callerAddress, companyId string, req *models.FundsWithdrawRequest) (*models.Company, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, errors.NewBadRequestError("Amount must be positive")
	}

	companyUUID, err := parseCompanyID(companyId)
	if err != nil {
		return nil, err
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

	if company.OwnerAddress != callerAddress {
		tx.Rollback()
		return nil, errors.NewNotValidCompanyError()
	}

	if req.Amount.GreaterThan(company.Balance) {
		tx.Rollback()
		return nil, errors.NewInvalidWithdrawalAmountError()
	}

	company.Balance = company.Balance.Sub(req.Amount)
	if err := tx.Save(company).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update company balance")
	}

	if err := s.custody.Withdraw(tx, company.ID, req.Recipient, req.Amount); err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to transfer funds")
	}

	recipient := req.Recipient
	amount := req.Amount
	event := &models.LedgerEvent{
		Type:      models.EventCompanyWithdrawal,
		CompanyID: company.ID,
		Amount:    &amount,
		Recipient: &recipient,
	}
	if err := s.eventService.Emit(tx, event); err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return company, nil
}
