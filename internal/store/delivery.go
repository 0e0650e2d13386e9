package store

import (
	"context"
	"fmt"

	"localtrack/internal/models"

	"gorm.io/gorm/clause"
)

// UpsertDelivery writes the record for d.Date, fully overwriting an existing
// one. The unique index on date makes this a single atomic statement, so two
// writers for the same day can never produce two rows. d is reloaded from
// storage on success.
func (s *Store) UpsertDelivery(ctx context.Context, d *models.Delivery) error {
	if err := validateDelivery(d); err != nil {
		return err
	}
	d.ID = 0
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"km_driven",
			"cash_earnings",
			"online_earnings",
			"food_expense",
			"maintenance_expense",
			"other_expense",
			"updated_at",
		}),
	}).Create(d).Error
	if err != nil {
		return fmt.Errorf("upsert delivery %s: %w", d.Date, err)
	}

	saved, err := s.DeliveryByDate(ctx, d.Date)
	if err != nil {
		return err
	}
	if saved == nil {
		return fmt.Errorf("upsert delivery %s: record missing after write", d.Date)
	}
	*d = *saved
	return nil
}

func (s *Store) GetDelivery(ctx context.Context, id uint) (*models.Delivery, error) {
	var d models.Delivery
	if err := first(ctx, s.db, "delivery", &d, id); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeliveryByDate returns the record for date, or nil if the day has none.
func (s *Store) DeliveryByDate(ctx context.Context, date string) (*models.Delivery, error) {
	return findUniqueByDate[models.Delivery](ctx, s.db, date)
}

func (s *Store) ListDeliveries(ctx context.Context, start, end string) ([]models.Delivery, error) {
	return queryByDateRange[models.Delivery](ctx, s.db, start, end)
}

// DeleteDelivery removes the record for date. A day without a record is a no-op.
func (s *Store) DeleteDelivery(ctx context.Context, date string) error {
	if err := validateDate("date", date); err != nil {
		return err
	}
	if err := s.conn(ctx).Where("date = ?", date).Delete(&models.Delivery{}).Error; err != nil {
		return fmt.Errorf("delete delivery %s: %w", date, err)
	}
	return nil
}

func validateDelivery(d *models.Delivery) error {
	if d == nil {
		return invalid("delivery", "is required")
	}
	if err := validateDate("date", d.Date); err != nil {
		return err
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"kmDriven", d.KmDriven},
		{"cashEarnings", d.CashEarnings},
		{"onlineEarnings", d.OnlineEarnings},
		{"foodExpense", d.FoodExpense},
		{"maintenanceExpense", d.MaintenanceExpense},
		{"otherExpense", d.OtherExpense},
	}
	for _, f := range fields {
		if err := validateNonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}
