package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

type CustomerService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	eventService *EventService
}

func NewCustomerService(db *gorm.DB, validator *infrastructures.Validator, eventService *EventService) *CustomerService {
	return &CustomerService{
		db:           db,
		validator:    validator,
		eventService: eventService,
	}
}

// AddCustomer registers a customer address with the company. A customer
// address is unique per company; duplicate registration is rejected, checked
// against the company's full customer set inside the same transaction.
func (s *CustomerService) AddCustomer(callerAddress, companyId string, req *models.CustomerAddRequest) (*models.Customer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
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

	var existing models.Customer
	err = tx.Where("company_id = ? AND customer_address = ?", company.ID, req.CustomerAddress).First(&existing).Error
	if err == nil {
		tx.Rollback()
		return nil, errors.NewCustomerAlreadyExistsError()
	}
	if err != gorm.ErrRecordNotFound {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to check existing customers")
	}

	customer := &models.Customer{
		CompanyID:       company.ID,
		Ordinal:         company.CustomerCount,
		CustomerAddress: req.CustomerAddress,
		VoucherCount:    0,
	}
	if err := tx.Create(customer).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to create customer")
	}

	company.CustomerCount++
	if err := tx.Save(company).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update customer count")
	}

	customerID := customer.ID
	event := &models.LedgerEvent{
		Type:       models.EventCustomerCreated,
		CompanyID:  company.ID,
		CustomerID: &customerID,
	}
	if err := s.eventService.Emit(tx, event); err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return customer, nil
}

func (s *CustomerService) GetCustomer(customerId string) (*models.Customer, error) {
	customerUUID, err := uuid.Parse(customerId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid customer ID format")
	}

	var customer models.Customer
	err = s.db.Where("id = ?", customerUUID).First(&customer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Customer not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get customer")
	}

	return &customer, nil
}

// GetCustomerCount is a pure read of the company's registered customer total.
func (s *CustomerService) GetCustomerCount(companyId string) (int64, error) {
	companyUUID, err := parseCompanyID(companyId)
	if err != nil {
		return 0, err
	}

	var company models.Company
	err = s.db.Where("id = ?", companyUUID).First(&company).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.NewNotFoundError("Company not found")
		}
		return 0, errors.NewInternalServerError(err, "Failed to get company")
	}

	return company.CustomerCount, nil
}

func (s *CustomerService) GetCustomers(companyId string, pagination *models.PaginationRequest) (*models.Pagination[[]models.Customer], error) {
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
	if err := s.db.Model(&models.Customer{}).Where("company_id = ?", companyUUID).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count customers")
	}

	var customers []models.Customer
	err = s.db.Where("company_id = ?", companyUUID).
		Order("idx ASC").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get customers")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Customer]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      customers,
	}, nil
}
