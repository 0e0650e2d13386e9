// Package delivery turns one day's delivery record into earnings, fuel and
// per-km figures.
package delivery

import "localtrack/internal/models"

// Metrics are the derived figures for one calendar day.
type Metrics struct {
	KmDriven         float64 `json:"kmDriven"`
	PetrolUsedLitres float64 `json:"petrolUsedLitres"`
	PetrolCost       float64 `json:"petrolCost"`
	TotalEarnings    float64 `json:"totalEarnings"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetProfit        float64 `json:"netProfit"`
	EarningsPerKm    float64 `json:"earningsPerKm"`
	CostPerKm        float64 `json:"costPerKm"`
	ProfitMargin     float64 `json:"profitMargin"` // percent
	FuelFilledLitres float64 `json:"fuelFilledLitres"`
	TankFills        float64 `json:"tankFills"`
}

// Compute derives the day's metrics. A nil record is a day with no
// deliveries. Divisions by zero resolve to 0 instead of failing.
func Compute(record *models.Delivery, settings models.AppSettings, fuelLitres float64) Metrics {
	var m Metrics
	if record != nil {
		m.KmDriven = record.KmDriven
		m.TotalEarnings = record.TotalEarnings()
		m.TotalExpenses = record.TotalExpenses()
	}

	mileage := settings.Mileage
	if mileage <= 0 {
		mileage = 1
	}
	m.PetrolUsedLitres = m.KmDriven / mileage
	m.PetrolCost = m.PetrolUsedLitres * settings.PetrolRate
	m.NetProfit = m.TotalEarnings - m.TotalExpenses

	if m.KmDriven > 0 {
		m.EarningsPerKm = m.TotalEarnings / m.KmDriven
		m.CostPerKm = m.TotalExpenses / m.KmDriven
	}
	if m.TotalEarnings > 0 {
		m.ProfitMargin = m.NetProfit / m.TotalEarnings * 100
	}

	m.FuelFilledLitres = fuelLitres
	if settings.TankCapacity > 0 {
		m.TankFills = fuelLitres / settings.TankCapacity
	}
	return m
}

// FuelLitres sums the litres of the given logs.
func FuelLitres(logs []models.FuelLog) float64 {
	var total float64
	for _, l := range logs {
		total += l.Litres
	}
	return total
}
