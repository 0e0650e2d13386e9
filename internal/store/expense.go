package store

import (
	"context"
	"fmt"

	"localtrack/internal/models"
)

const maxDescriptionLen = 255

// CreateExpense validates e and inserts it, setting e.ID.
// Linked fuel logs are maintained by fuelsync, not here.
func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}
	e.ID = 0
	if err := s.conn(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *Store) GetExpense(ctx context.Context, id uint) (*models.Expense, error) {
	var e models.Expense
	if err := first(ctx, s.db, "expense", &e, id); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExpense overwrites the editable fields of expense id with those of in.
func (s *Store) UpdateExpense(ctx context.Context, id uint, in *models.Expense) (*models.Expense, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}
	existing, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Date = in.Date
	existing.Type = in.Type
	existing.Category = in.Category
	existing.Amount = in.Amount
	existing.Description = in.Description
	existing.IsPetrol = in.IsPetrol
	existing.Litres = in.Litres
	if err := s.conn(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update expense %d: %w", id, err)
	}
	return existing, nil
}

// DeleteExpense removes expense id. Deleting a missing expense is a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id uint) error {
	if err := s.conn(ctx).Delete(&models.Expense{}, id).Error; err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

// ListExpenses returns expenses dated within [start, end].
func (s *Store) ListExpenses(ctx context.Context, start, end string) ([]models.Expense, error) {
	return queryByDateRange[models.Expense](ctx, s.db, start, end)
}

func validateExpense(e *models.Expense) error {
	if e == nil {
		return invalid("expense", "is required")
	}
	if err := validateDate("date", e.Date); err != nil {
		return err
	}
	if !e.Type.Valid() {
		return invalid("type", "must be Income or Expense")
	}
	if !e.Category.Valid() {
		return invalid("category", fmt.Sprintf("unknown category %q", e.Category))
	}
	if err := validatePositive("amount", e.Amount); err != nil {
		return err
	}
	if len(e.Description) > maxDescriptionLen {
		return invalid("description", "is too long")
	}
	if e.IsPetrol {
		if !e.Category.FuelEligible() {
			return invalid("isPetrol", fmt.Sprintf("category %q does not carry fuel", e.Category))
		}
		if e.Litres == nil {
			return invalid("litres", "is required for a petrol expense")
		}
		if err := validatePositive("litres", *e.Litres); err != nil {
			return err
		}
	} else if e.Litres != nil {
		return invalid("litres", "is only allowed on a petrol expense")
	}
	return nil
}
