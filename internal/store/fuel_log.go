package store

import (
	"context"
	"errors"
	"fmt"

	"localtrack/internal/models"
)

// CreateFuelLog inserts l, setting l.ID. A linked log must point at an
// existing petrol expense.
func (s *Store) CreateFuelLog(ctx context.Context, l *models.FuelLog) error {
	if err := s.validateFuelLog(ctx, l); err != nil {
		return err
	}
	l.ID = 0
	if err := s.conn(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create fuel log: %w", err)
	}
	return nil
}

func (s *Store) GetFuelLog(ctx context.Context, id uint) (*models.FuelLog, error) {
	var l models.FuelLog
	if err := first(ctx, s.db, "fuel log", &l, id); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateFuelLog overwrites date, litres and cost of log id. The expense link
// is never changed by an update.
func (s *Store) UpdateFuelLog(ctx context.Context, id uint, date string, litres, cost float64) (*models.FuelLog, error) {
	existing, err := s.GetFuelLog(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Date = date
	existing.Litres = litres
	existing.Cost = cost
	if err := s.validateFuelLog(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update fuel log %d: %w", id, err)
	}
	return existing, nil
}

// DeleteFuelLog removes log id. Deleting a missing log is a no-op.
func (s *Store) DeleteFuelLog(ctx context.Context, id uint) error {
	if err := s.conn(ctx).Delete(&models.FuelLog{}, id).Error; err != nil {
		return fmt.Errorf("delete fuel log %d: %w", id, err)
	}
	return nil
}

func (s *Store) ListFuelLogs(ctx context.Context, start, end string) ([]models.FuelLog, error) {
	return queryByDateRange[models.FuelLog](ctx, s.db, start, end)
}

// FuelLogsByExpense returns every log linked to expenseID.
func (s *Store) FuelLogsByExpense(ctx context.Context, expenseID uint) ([]models.FuelLog, error) {
	return findByForeignKey[models.FuelLog](ctx, s.db, "expense_id", expenseID)
}

// FuelLogByExpense returns the log linked to expenseID, or nil.
func (s *Store) FuelLogByExpense(ctx context.Context, expenseID uint) (*models.FuelLog, error) {
	logs, err := s.FuelLogsByExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}

// FuelLogsWithMissingExpense returns linked logs whose expense no longer exists.
func (s *Store) FuelLogsWithMissingExpense(ctx context.Context) ([]models.FuelLog, error) {
	out := make([]models.FuelLog, 0)
	err := s.conn(ctx).
		Where("expense_id IS NOT NULL AND expense_id NOT IN (?)",
			s.db.Model(&models.Expense{}).Select("id")).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("find orphaned fuel logs: %w", err)
	}
	return out, nil
}

func (s *Store) validateFuelLog(ctx context.Context, l *models.FuelLog) error {
	if l == nil {
		return invalid("fuel log", "is required")
	}
	if err := validateDate("date", l.Date); err != nil {
		return err
	}
	if err := validatePositive("litres", l.Litres); err != nil {
		return err
	}
	if err := validateNonNegative("cost", l.Cost); err != nil {
		return err
	}
	if l.ExpenseID == nil {
		return nil
	}
	e, err := s.GetExpense(ctx, *l.ExpenseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("expenseId", fmt.Sprintf("expense %d does not exist", *l.ExpenseID))
		}
		return err
	}
	if !e.IsPetrol {
		return invalid("expenseId", fmt.Sprintf("expense %d is not a petrol expense", e.ID))
	}
	return nil
}
