package infrastructures

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
)

func NewDatabase(config *AppConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(config.DATABASE_URL), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.Voucher{},
		&models.Customer{},
		&models.LedgerEvent{},
		&models.CustodyTransfer{},
		&models.AccessKey{},
	); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	return db
}
