package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxAmount = 10000000

// ValidateAmount requires a positive amount below ten million.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= maxAmount {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ParseAmount parses a user-typed decimal such as "101.42" or " 55 ".
// Negative values are rejected; zero is allowed so callers decide.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative, got %s", s)
	}
	if d.GreaterThanOrEqual(decimal.NewFromInt(maxAmount)) {
		return 0, fmt.Errorf("amount too large, got %s", s)
	}
	return d.InexactFloat64(), nil
}

// FormatAmount renders an amount with exactly two decimals, half away from zero.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// ValidateDate checks the YYYY-MM-DD layout.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}
