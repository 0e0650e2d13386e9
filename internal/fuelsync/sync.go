// Package fuelsync keeps petrol expenses and their fuel logs in lockstep.
//
// A Transport expense that carries litres owns exactly one fuel log with the
// same date, litres and cost (= amount). Every expense write goes through the
// Synchronizer so that the expense row and its fuel log change inside one
// transaction.
package fuelsync

import (
	"context"
	"errors"
	"fmt"

	"localtrack/internal/logger"
	"localtrack/internal/models"
	"localtrack/internal/store"

	"github.com/rs/zerolog"
)

type Synchronizer struct {
	store *store.Store
	log   zerolog.Logger
}

func New(st *store.Store) *Synchronizer {
	return &Synchronizer{
		store: st,
		log:   logger.WithComponent("fuelsync"),
	}
}

// InconsistentLinkError describes a fuel log pointing at an expense that no
// longer exists. It is reported as a warning and the log is removed.
type InconsistentLinkError struct {
	FuelLogID uint
	ExpenseID uint
}

func (e *InconsistentLinkError) Error() string {
	return fmt.Sprintf("fuel log %d links to missing expense %d", e.FuelLogID, e.ExpenseID)
}

// Normalize derives IsPetrol from the category and litres and clears litres
// on anything that is not a petrol expense.
func Normalize(e *models.Expense) {
	var litres float64
	if e.Litres != nil {
		litres = *e.Litres
	}
	e.IsPetrol = e.Category.FuelEligible() && litres > 0
	if !e.IsPetrol {
		e.Litres = nil
	}
}

// CreateExpense inserts e and, for a petrol expense, its linked fuel log.
func (s *Synchronizer) CreateExpense(ctx context.Context, e *models.Expense) error {
	Normalize(e)
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.CreateExpense(ctx, e); err != nil {
			return err
		}
		if !e.IsPetrol {
			return nil
		}
		return tx.CreateFuelLog(ctx, linkedLog(e))
	})
	if err != nil {
		e.ID = 0
		return err
	}
	return nil
}

// UpdateExpense rewrites expense id and applies at most one fuel log change:
// update in place, delete, or create, depending on whether the expense was
// and still is a petrol expense. The existing log is found by expense id only.
func (s *Synchronizer) UpdateExpense(ctx context.Context, id uint, in *models.Expense) (*models.Expense, error) {
	Normalize(in)
	var updated *models.Expense
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		e, err := tx.UpdateExpense(ctx, id, in)
		if err != nil {
			return err
		}
		link, err := tx.FuelLogByExpense(ctx, id)
		if err != nil {
			return err
		}

		switch {
		case link != nil && e.IsPetrol:
			_, err = tx.UpdateFuelLog(ctx, link.ID, e.Date, e.FuelLitres(), e.Amount)
		case link != nil:
			err = tx.DeleteFuelLog(ctx, link.ID)
		case e.IsPetrol:
			err = tx.CreateFuelLog(ctx, linkedLog(e))
		}
		if err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExpense removes expense id and the fuel log linked to it.
// Deleting a missing expense is a no-op.
func (s *Synchronizer) DeleteExpense(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *store.Store) error {
		link, err := tx.FuelLogByExpense(ctx, id)
		if err != nil {
			return err
		}
		if link != nil {
			if err := tx.DeleteFuelLog(ctx, link.ID); err != nil {
				return err
			}
		}
		return tx.DeleteExpense(ctx, id)
	})
}

// DeleteFuelLog removes a standalone fuel log. A log owned by an expense
// follows that expense and cannot be deleted on its own.
func (s *Synchronizer) DeleteFuelLog(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *store.Store) error {
		l, err := tx.GetFuelLog(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if l.ExpenseID != nil {
			return &store.ValidationError{
				Field:  "id",
				Reason: fmt.Sprintf("fuel log %d belongs to expense %d", l.ID, *l.ExpenseID),
			}
		}
		return tx.DeleteFuelLog(ctx, id)
	})
}

// Heal deletes fuel logs whose expense is gone, returning one
// InconsistentLinkError per log removed.
func (s *Synchronizer) Heal(ctx context.Context) ([]*InconsistentLinkError, error) {
	var healed []*InconsistentLinkError
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		orphans, err := tx.FuelLogsWithMissingExpense(ctx)
		if err != nil {
			return err
		}
		for _, l := range orphans {
			link := &InconsistentLinkError{FuelLogID: l.ID, ExpenseID: *l.ExpenseID}
			if err := tx.DeleteFuelLog(ctx, l.ID); err != nil {
				return err
			}
			healed = append(healed, link)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, link := range healed {
		s.log.Warn().
			Err(link).
			Uint("fuel_log_id", link.FuelLogID).
			Uint("expense_id", link.ExpenseID).
			Msg("removed orphaned fuel log")
	}
	return healed, nil
}

func linkedLog(e *models.Expense) *models.FuelLog {
	id := e.ID
	return &models.FuelLog{
		Date:      e.Date,
		Litres:    e.FuelLitres(),
		Cost:      e.Amount,
		ExpenseID: &id,
	}
}
