package period

import (
	"testing"

	"localtrack/internal/models"
)

func TestTrailingSevenDays(t *testing.T) {
	deliveries := []models.Delivery{
		{Date: "2024-03-10", CashEarnings: 100, OnlineEarnings: 50, FoodExpense: 20},
		{Date: "2024-03-04", OnlineEarnings: 80, OtherExpense: 10},
		{Date: "2024-03-03", CashEarnings: 999}, // outside the range
	}

	points := Trailing(deliveries, mustDate(t, "2024-03-10"))
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	if points[0].Date != "2024-03-04" || points[6].Date != "2024-03-10" {
		t.Fatalf("unexpected range %s..%s", points[0].Date, points[6].Date)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Date <= points[i-1].Date {
			t.Fatalf("points not ascending at %d", i)
		}
	}
	if p := points[0]; p.Earnings != 80 || p.Expenses != 10 || p.Profit != 70 {
		t.Fatalf("unexpected oldest point %+v", p)
	}
	if p := points[6]; p.Earnings != 150 || p.Expenses != 20 || p.Profit != 130 {
		t.Fatalf("unexpected newest point %+v", p)
	}
	for _, p := range points[1:6] {
		if p.Earnings != 0 || p.Expenses != 0 || p.Profit != 0 {
			t.Fatalf("expected zero point for %s, got %+v", p.Date, p)
		}
	}
}

func TestTrailingWindowMatchesPoints(t *testing.T) {
	ref := mustDate(t, "2024-03-01")
	w := TrailingWindow(ref)
	points := Trailing(nil, ref)
	if w.StartDate() != points[0].Date || w.EndDate() != points[6].Date {
		t.Fatalf("window [%s, %s] does not match points %s..%s", w.StartDate(), w.EndDate(), points[0].Date, points[6].Date)
	}
}
