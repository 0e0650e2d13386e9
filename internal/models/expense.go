package models

import "time"

// ExpenseType separates money coming in from money going out.
type ExpenseType string

const (
	ExpenseTypeIncome  ExpenseType = "Income"
	ExpenseTypeExpense ExpenseType = "Expense"
)

func (t ExpenseType) Valid() bool {
	return t == ExpenseTypeIncome || t == ExpenseTypeExpense
}

// Expense is a single income or expense record.
// Litres is set only when IsPetrol is true, which requires a fuel-eligible category.
type Expense struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Date        string      `gorm:"size:10;index;not null" json:"date"`
	Type        ExpenseType `gorm:"size:16;index;not null" json:"type"`
	Category    Category    `gorm:"size:32;index;not null" json:"category"`
	Amount      float64     `gorm:"not null" json:"amount"`
	Description string      `gorm:"size:255" json:"description"`
	IsPetrol    bool        `gorm:"index;not null;default:false" json:"isPetrol"`
	Litres      *float64    `json:"litres,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// FuelLitres returns the litres carried by a petrol expense, or 0.
func (e *Expense) FuelLitres() float64 {
	if !e.IsPetrol || e.Litres == nil {
		return 0
	}
	return *e.Litres
}
