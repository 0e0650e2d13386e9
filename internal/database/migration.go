package database

import (
	"fmt"

	"localtrack/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the five ledger collections.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Expense{},
		&models.FuelLog{},
		&models.Loan{},
		&models.LoanPayment{},
		&models.Delivery{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
