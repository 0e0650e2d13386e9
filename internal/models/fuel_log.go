package models

import "time"

// FuelLog records a refuel. Logs created through the expense flow carry
// ExpenseID and mirror that expense's date, litres and amount.
type FuelLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"size:10;index;not null" json:"date"`
	Litres    float64   `gorm:"not null" json:"litres"`
	Cost      float64   `gorm:"not null" json:"cost"`
	ExpenseID *uint     `gorm:"uniqueIndex" json:"expenseId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
