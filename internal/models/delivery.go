package models

import "time"

// Delivery is one day of gig work. Date is unique: one record per calendar day.
type Delivery struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Date               string    `gorm:"size:10;uniqueIndex;not null" json:"date"`
	KmDriven           float64   `gorm:"not null;default:0" json:"kmDriven"`
	CashEarnings       float64   `gorm:"not null;default:0" json:"cashEarnings"`
	OnlineEarnings     float64   `gorm:"not null;default:0" json:"onlineEarnings"`
	FoodExpense        float64   `gorm:"not null;default:0" json:"foodExpense"`
	MaintenanceExpense float64   `gorm:"not null;default:0" json:"maintenanceExpense"`
	OtherExpense       float64   `gorm:"not null;default:0" json:"otherExpense"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (d *Delivery) TotalEarnings() float64 {
	return d.CashEarnings + d.OnlineEarnings
}

func (d *Delivery) TotalExpenses() float64 {
	return d.FoodExpense + d.MaintenanceExpense + d.OtherExpense
}
