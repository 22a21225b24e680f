package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

type testServices struct {
	db         *gorm.DB
	config     *infrastructures.AppConfig
	custody    *LedgerCustody
	events     *EventService
	companies  *CompanyService
	vouchers   *VoucherService
	customers  *CustomerService
	redemption *RedemptionService
	accessKeys *AccessKeyService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.Voucher{},
		&models.Customer{},
		&models.LedgerEvent{},
		&models.CustodyTransfer{},
		&models.AccessKey{},
	))

	return db
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := setupTestDB(t)
	validator := infrastructures.NewValidator()
	config := &infrastructures.AppConfig{StrictActivation: true}

	custody := NewLedgerCustody(db)
	events := NewEventService(db)

	return &testServices{
		db:         db,
		config:     config,
		custody:    custody,
		events:     events,
		companies:  NewCompanyService(db, validator, custody, events),
		vouchers:   NewVoucherService(db, validator, events, config),
		customers:  NewCustomerService(db, validator, events),
		redemption: NewRedemptionService(db, validator, custody, events),
		accessKeys: NewAccessKeyService(db, validator),
	}
}

const (
	ownerAddr    = "addr_owner"
	strangerAddr = "addr_stranger"
	customerAddr = "addr_customer"
)

func createTestCompany(t *testing.T, s *testServices, owner string) *models.Company {
	t.Helper()

	company, err := s.companies.CreateCompany(owner, &models.CompanyCreateRequest{Name: "Acme Rewards"})
	require.NoError(t, err)
	return company
}

func fundCompany(t *testing.T, s *testServices, company *models.Company, amount int64) {
	t.Helper()

	_, err := s.companies.AddFunds(company.OwnerAddress, company.ID.String(), &models.FundsAddRequest{
		Amount: decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
}

func requireRejection(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}

func companyEvents(t *testing.T, s *testServices, company *models.Company, eventType models.LedgerEventType) []models.LedgerEvent {
	t.Helper()

	var events []models.LedgerEvent
	require.NoError(t, s.db.
		Where("company_id = ? AND type = ?", company.ID, eventType).
		Find(&events).Error)
	return events
}

func reloadCompany(t *testing.T, s *testServices, company *models.Company) *models.Company {
	t.Helper()

	fresh, err := s.companies.GetCompany(company.ID.String())
	require.NoError(t, err)
	return fresh
}
