package period

import (
	"sort"

	"localtrack/internal/models"
)

const topCategories = 5

// CategoryShare is one row of the expense breakdown.
type CategoryShare struct {
	Category models.Category `json:"category"`
	Amount   float64         `json:"amount"`
	Percent  float64         `json:"percent"`
}

// Summary is the income/expense picture of one window.
type Summary struct {
	Start        string          `json:"start"`
	End          string          `json:"end"`
	TotalIncome  float64         `json:"totalIncome"`
	TotalExpense float64         `json:"totalExpense"`
	Balance      float64         `json:"balance"`
	Breakdown    []CategoryShare `json:"categoryBreakdown"`
}

// Summarize totals the records that fall inside w. Records outside it are
// ignored, so callers may pass a wider slice than the window.
func Summarize(expenses []models.Expense, w Window) Summary {
	sum := Summary{Start: w.StartDate(), End: w.EndDate(), Breakdown: []CategoryShare{}}
	byCategory := make(map[models.Category]float64)

	for _, e := range expenses {
		if !w.Contains(e.Date) {
			continue
		}
		switch e.Type {
		case models.ExpenseTypeIncome:
			sum.TotalIncome += e.Amount
		case models.ExpenseTypeExpense:
			sum.TotalExpense += e.Amount
			byCategory[e.Category] += e.Amount
		}
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpense

	for c, amount := range byCategory {
		sum.Breakdown = append(sum.Breakdown, CategoryShare{Category: c, Amount: amount})
	}
	sort.Slice(sum.Breakdown, func(i, j int) bool {
		a, b := sum.Breakdown[i], sum.Breakdown[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.Category < b.Category
	})
	if len(sum.Breakdown) > topCategories {
		sum.Breakdown = sum.Breakdown[:topCategories]
	}
	if sum.TotalExpense > 0 {
		for i := range sum.Breakdown {
			sum.Breakdown[i].Percent = sum.Breakdown[i].Amount / sum.TotalExpense * 100
		}
	}
	return sum
}
