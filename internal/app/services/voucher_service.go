package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

type VoucherService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	eventService *EventService
	config       *infrastructures.AppConfig
}

func NewVoucherService(db *gorm.DB, validator *infrastructures.Validator, eventService *EventService, config *infrastructures.AppConfig) *VoucherService {
	return &VoucherService{
		db:           db,
		validator:    validator,
		eventService: eventService,
		config:       config,
	}
}

// voucherByOrdinal resolves a caller-supplied position against the locked
// company. The bound check uses the company's own counter, which the row
// lock keeps stable for the duration of the transaction.
func voucherByOrdinal(tx *gorm.DB, company *models.Company, index int64) (*models.Voucher, error) {
	if index < 0 || index >= company.VoucherCount {
		return nil, errors.NewInvalidVoucherIndexError()
	}

	var voucher models.Voucher
	err := tx.Where("company_id = ? AND idx = ?", company.ID, index).First(&voucher).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewInvalidVoucherIndexError()
		}
		return nil, errors.NewInternalServerError(err, "Failed to load voucher")
	}
	return &voucher, nil
}

// CreateVoucher appends an inactive voucher to the company's sequence. A
// voucher worth more than the company currently holds is legal; the balance
// is only checked at redemption.
func (s *VoucherService) CreateVoucher(callerAddress, companyId string, req *models.VoucherCreateRequest) (*models.Voucher, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Value.IsNegative() {
		return nil, errors.NewBadRequestError("Voucher value must not be negative")
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

	voucher := &models.Voucher{
		CompanyID: company.ID,
		Ordinal:   company.VoucherCount,
		Text:      req.Text,
		Value:     req.Value,
		Activated: false,
	}
	if err := tx.Create(voucher).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to create voucher")
	}

	company.VoucherCount++
	if err := tx.Save(company).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update voucher count")
	}

	if err := s.emitVoucherEvent(tx, models.EventVoucherCreated, company.ID, voucher.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return voucher, nil
}

// ActivateVoucher arms a voucher for redemption. With strict activation
// enabled, activating an already-active voucher is rejected; otherwise it is
// a no-op success.
func (s *VoucherService) ActivateVoucher(callerAddress, companyId string, index int64) (*models.Voucher, error) {
	return s.setActivation(callerAddress, companyId, index, true, models.EventVoucherActivated)
}

// DeactivateVoucher disarms a voucher. Deactivating an inactive voucher is
// a silent no-op success.
func (s *VoucherService) DeactivateVoucher(callerAddress, companyId string, index int64) (*models.Voucher, error) {
	return s.setActivation(callerAddress, companyId, index, false, models.EventVoucherDeactivated)
}

// DeclineVoucher has the same effect as deactivation but records the
// company's refusal of a presented voucher as its own auditable event.
func (s *VoucherService) DeclineVoucher(callerAddress, companyId string, index int64) (*models.Voucher, error) {
	return s.setActivation(callerAddress, companyId, index, false, models.EventVoucherDeclined)
}

func (s *VoucherService) setActivation(callerAddress, companyId string, index int64, activated bool, eventType models.LedgerEventType) (*models.Voucher, error) {
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

	voucher, err := voucherByOrdinal(tx, company, index)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if activated && voucher.Activated && s.config.StrictActivation {
		tx.Rollback()
		return nil, errors.NewVoucherAlreadyActivatedError()
	}

	voucher.Activated = activated
	if err := tx.Save(voucher).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update voucher")
	}

	if err := s.emitVoucherEvent(tx, eventType, company.ID, voucher.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	tx.Commit()
	return voucher, nil
}

func (s *VoucherService) emitVoucherEvent(tx *gorm.DB, eventType models.LedgerEventType, companyID, voucherID uuid.UUID) error {
	event := &models.LedgerEvent{
		Type:      eventType,
		CompanyID: companyID,
		VoucherID: &voucherID,
	}
	return s.eventService.Emit(tx, event)
}

func (s *VoucherService) GetVoucher(companyId string, index int64) (*models.Voucher, error) {
	companyUUID, err := parseCompanyID(companyId)
	if err != nil {
		return nil, err
	}

	var voucher models.Voucher
	err = s.db.Where("company_id = ? AND idx = ?", companyUUID, index).First(&voucher).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewInvalidVoucherIndexError()
		}
		return nil, errors.NewInternalServerError(err, "Failed to get voucher")
	}

	return &voucher, nil
}

func (s *VoucherService) GetVouchers(companyId string, pagination *models.PaginationRequest) (*models.Pagination[[]models.Voucher], error) {
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
	if err := s.db.Model(&models.Voucher{}).Where("company_id = ?", companyUUID).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count vouchers")
	}

	var vouchers []models.Voucher
	err = s.db.Where("company_id = ?", companyUUID).
		Order("idx ASC").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&vouchers).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get vouchers")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Voucher]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      vouchers,
	}, nil
}
