// Package store is the ledger repository: it owns the expense, fuel log,
// loan, loan payment and delivery collections in one SQLite database.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"localtrack/internal/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to a single SQL transaction.
// Any error returned by fn rolls back every write fn made.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// dated lists the collections that carry a calendar-day date column.
type dated interface {
	models.Expense | models.FuelLog | models.LoanPayment | models.Delivery
}

// queryByDateRange returns rows with start <= date <= end ordered by date,
// then by insertion order.
func queryByDateRange[T dated](ctx context.Context, db *gorm.DB, start, end string) ([]T, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	out := make([]T, 0)
	err := db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query by date range: %w", err)
	}
	return out, nil
}

// findByForeignKey returns rows whose column equals value, ordered by date.
func findByForeignKey[T dated](ctx context.Context, db *gorm.DB, column string, value any) ([]T, error) {
	out := make([]T, 0)
	err := db.WithContext(ctx).
		Where(column+" = ?", value).
		Order("date ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("find by %s: %w", column, err)
	}
	return out, nil
}

// findUniqueByDate returns the single row for date, or nil when there is none.
func findUniqueByDate[T dated](ctx context.Context, db *gorm.DB, date string) (*T, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	var out []T
	err := db.WithContext(ctx).
		Where("date = ?", date).
		Order("id ASC").
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("find by date: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// first loads the row with the given id into dst.
func first(ctx context.Context, db *gorm.DB, collection string, dst any, id uint) error {
	err := db.WithContext(ctx).First(dst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(collection, id)
	}
	if err != nil {
		return fmt.Errorf("get %s %d: %w", collection, id, err)
	}
	return nil
}

func validateDate(field, date string) error {
	if date == "" {
		return invalid(field, "is required")
	}
	if _, err := models.ParseDate(date); err != nil {
		return invalid(field, "must be YYYY-MM-DD")
	}
	return nil
}

func validateRange(start, end string) error {
	if err := validateDate("start", start); err != nil {
		return err
	}
	if err := validateDate("end", end); err != nil {
		return err
	}
	if start > end {
		return invalid("end", "must not be before start")
	}
	return nil
}

func validateNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a number")
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func validatePositive(field string, v float64) error {
	if err := validateNonNegative(field, v); err != nil {
		return err
	}
	if v == 0 {
		return invalid(field, "must be greater than zero")
	}
	return nil
}
