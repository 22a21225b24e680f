package services

import (
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
)

// EventService is the ledger's notification sink: an append-only record of
// successful state transitions.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		db: db,
	}
}

// Emit appends an event inside the caller's transaction, so the event
// commits exactly when the operation that produced it does.
func (s *EventService) Emit(tx *gorm.DB, event *models.LedgerEvent) error {
	if err := tx.Create(event).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to record ledger event")
	}
	return nil
}

// GetEvents retrieves a company's event history with pagination, newest
// first.
func (s *EventService) GetEvents(companyId string, pagination *models.PaginationRequest) (*models.Pagination[[]models.LedgerEvent], error) {
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
	if err := s.db.Model(&models.LedgerEvent{}).Where("company_id = ?", companyUUID).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count ledger events")
	}

	var events []models.LedgerEvent
	err = s.db.Where("company_id = ?", companyUUID).
		Order("emitted_at DESC").
		Limit(pagination.Limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get ledger events")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.LedgerEvent]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      events,
	}, nil
}
