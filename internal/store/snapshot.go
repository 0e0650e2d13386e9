package store

import (
	"context"
	"fmt"

	"localtrack/internal/models"

	"gorm.io/gorm"
)

// Snapshot is a full copy of every collection, ids included.
type Snapshot struct {
	Expenses     []models.Expense     `json:"expenses"`
	FuelLogs     []models.FuelLog     `json:"fuelLogs"`
	Loans        []models.Loan        `json:"loans"`
	LoanPayments []models.LoanPayment `json:"loanPayments"`
	Deliveries   []models.Delivery    `json:"deliveries"`
}

// Snapshot reads every collection inside one transaction.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	err := s.Transaction(ctx, func(tx *Store) error {
		db := tx.conn(ctx)
		for _, dst := range []any{&snap.Expenses, &snap.FuelLogs, &snap.Loans, &snap.LoanPayments, &snap.Deliveries} {
			if err := db.Order("id ASC").Find(dst).Error; err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ReplaceAll discards every record and loads snap in its place, preserving
// ids so expense to fuel log links survive. Either all of snap is loaded or
// nothing changes.
func (s *Store) ReplaceAll(ctx context.Context, snap *Snapshot) error {
	return s.Transaction(ctx, func(tx *Store) error {
		db := tx.conn(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
		// children first
		for _, m := range []any{&models.FuelLog{}, &models.LoanPayment{}, &models.Expense{}, &models.Loan{}, &models.Delivery{}} {
			if err := db.Delete(m).Error; err != nil {
				return fmt.Errorf("clear collection: %w", err)
			}
		}
		if err := createAll(tx.conn(ctx), snap.Expenses); err != nil {
			return err
		}
		if err := createAll(tx.conn(ctx), snap.FuelLogs); err != nil {
			return err
		}
		if err := createAll(tx.conn(ctx), snap.Loans); err != nil {
			return err
		}
		if err := createAll(tx.conn(ctx), snap.LoanPayments); err != nil {
			return err
		}
		return createAll(tx.conn(ctx), snap.Deliveries)
	})
}

func createAll[T any](db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := db.CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("restore %T: %w", rows, err)
	}
	return nil
}
