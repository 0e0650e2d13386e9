package fuelsync

import (
	"localtrack/internal/models"

	"github.com/shopspring/decimal"
)

// DeriveLitres converts an amount into litres at petrolRate, rounded to two
// decimals. ok is false, and litres 0, when petrolRate is not positive.
func DeriveLitres(amount, petrolRate float64) (litres float64, ok bool) {
	if petrolRate <= 0 {
		return 0, false
	}
	litres, _ = decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(petrolRate)).
		Round(2).
		Float64()
	return litres, true
}

// DeriveAmount converts litres into a whole-currency amount at petrolRate.
// ok is false, and amount 0, when petrolRate is not positive.
func DeriveAmount(litres, petrolRate float64) (amount float64, ok bool) {
	if petrolRate <= 0 {
		return 0, false
	}
	amount, _ = decimal.NewFromFloat(litres).
		Mul(decimal.NewFromFloat(petrolRate)).
		Round(0).
		Float64()
	return amount, true
}

// Field names the form input the user last edited.
type Field int

const (
	FieldAmount Field = iota
	FieldLitres
)

// Form is the amount/litres pair being entered for one expense.
type Form struct {
	Category models.Category `json:"category"`
	Amount   float64         `json:"amount"`
	Litres   float64         `json:"litres"`
}

// Edit sets field to value and, for a fuel-eligible category with a positive
// petrol rate, recomputes the other field from it. The edited field always
// wins; with no rate the two fields are independent.
func (f Form) Edit(field Field, value, petrolRate float64) Form {
	switch field {
	case FieldAmount:
		f.Amount = value
		if !f.Category.FuelEligible() {
			return f
		}
		if litres, ok := DeriveLitres(value, petrolRate); ok {
			f.Litres = litres
		}
	case FieldLitres:
		f.Litres = value
		if !f.Category.FuelEligible() {
			return f
		}
		if amount, ok := DeriveAmount(value, petrolRate); ok {
			f.Amount = amount
		}
	}
	return f
}
