package period

import (
	"time"

	"localtrack/internal/models"
)

const trendDays = 7

// TrendPoint is one day of delivery results.
type TrendPoint struct {
	Date     string  `json:"date"`
	Earnings float64 `json:"earnings"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// Trailing returns seven points, oldest first, for the six days before ref
// and ref itself. Days without a delivery record are zero.
func Trailing(deliveries []models.Delivery, ref time.Time) []TrendPoint {
	byDate := make(map[string]*models.Delivery, len(deliveries))
	for i := range deliveries {
		byDate[deliveries[i].Date] = &deliveries[i]
	}

	points := make([]TrendPoint, 0, trendDays)
	end := models.Day(ref)
	for i := trendDays - 1; i >= 0; i-- {
		p := TrendPoint{Date: models.FormatDate(end.AddDate(0, 0, -i))}
		if d, ok := byDate[p.Date]; ok {
			p.Earnings = d.TotalEarnings()
			p.Expenses = d.TotalExpenses()
			p.Profit = p.Earnings - p.Expenses
		}
		points = append(points, p)
	}
	return points
}

// TrailingWindow is the date range Trailing reads, for loading records.
func TrailingWindow(ref time.Time) Window {
	end := models.Day(ref)
	return Window{Start: end.AddDate(0, 0, -(trendDays - 1)), End: end}
}
