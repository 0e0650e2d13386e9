package loan

import (
	"math"
	"testing"
	"time"

	"localtrack/internal/models"
)

func day(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInterestOneYearAtTwelvePercent(t *testing.T) {
	l := models.Loan{Type: models.LoanTypeTakenInterest, Principal: 1000, Rate: 12, StartDate: "2023-01-01"}

	s := Calculate(l, nil, day("2024-01-01"))
	if s.DaysElapsed != 365 {
		t.Fatalf("expected 365 days, got %d", s.DaysElapsed)
	}
	if !almostEqual(s.InterestAccrued, 120) {
		t.Fatalf("expected interest 120, got %v", s.InterestAccrued)
	}
	if !almostEqual(s.TotalDue, 1120) || !almostEqual(s.Outstanding, 1120) {
		t.Fatalf("unexpected totals: %+v", s)
	}
}

func TestNoInterestWithoutRateOrForFriends(t *testing.T) {
	eval := day("2030-06-30")
	cases := []models.Loan{
		{Type: models.LoanTypeTakenInterest, Principal: 1000, Rate: 0, StartDate: "2020-01-01"},
		{Type: models.LoanTypeGivenInterest, Principal: 1000, Rate: -4, StartDate: "2020-01-01"},
		{Type: models.LoanTypeFriendInterestFree, Principal: 1000, Rate: 18, StartDate: "2020-01-01"},
	}
	for _, l := range cases {
		s := Calculate(l, nil, eval)
		if s.InterestAccrued != 0 {
			t.Errorf("%s rate %v: expected no interest, got %v", l.Type, l.Rate, s.InterestAccrued)
		}
		if s.TotalDue != 1000 {
			t.Errorf("%s: expected total due 1000, got %v", l.Type, s.TotalDue)
		}
	}
}

func TestFutureStartDateAccruesNothing(t *testing.T) {
	l := models.Loan{Type: models.LoanTypeTakenInterest, Principal: 1000, Rate: 12, StartDate: "2025-01-01"}

	s := Calculate(l, nil, day("2024-06-01"))
	if s.DaysElapsed != 0 || s.InterestAccrued != 0 {
		t.Fatalf("expected no elapsed days, got %+v", s)
	}
}

func TestEvalTimeOfDayIsIgnored(t *testing.T) {
	l := models.Loan{Type: models.LoanTypeTakenInterest, Principal: 1000, Rate: 10, StartDate: "2024-01-01"}

	morning := Calculate(l, nil, time.Date(2024, 1, 11, 0, 5, 0, 0, time.UTC))
	night := Calculate(l, nil, time.Date(2024, 1, 11, 23, 55, 0, 0, time.UTC))
	if morning.DaysElapsed != 10 || night.DaysElapsed != 10 {
		t.Fatalf("expected 10 days for both, got %d and %d", morning.DaysElapsed, night.DaysElapsed)
	}
}

func TestOverpaymentKeepsSignedOutstanding(t *testing.T) {
	l := models.Loan{Type: models.LoanTypeFriendInterestFree, Principal: 500, StartDate: "2024-01-01"}
	payments := []models.LoanPayment{
		{Amount: 400, Kind: models.PaymentKindPayment},
		{Amount: 200, Kind: models.PaymentKindReceived},
	}

	s := Calculate(l, payments, day("2024-02-01"))
	if s.TotalPaid != 600 {
		t.Fatalf("expected both kinds summed to 600, got %v", s.TotalPaid)
	}
	if s.Outstanding != -100 {
		t.Fatalf("expected signed outstanding -100, got %v", s.Outstanding)
	}
	if s.DisplayOutstanding() != 0 {
		t.Fatalf("expected display outstanding 0, got %v", s.DisplayOutstanding())
	}
	if s.Progress != 100 {
		t.Fatalf("expected progress clamped to 100, got %v", s.Progress)
	}
}

func TestProgressMonotonicAndClamped(t *testing.T) {
	l := models.Loan{Type: models.LoanTypeFriendInterestFree, Principal: 1000, StartDate: "2024-01-01"}
	eval := day("2024-03-01")

	prev := -1.0
	for paid := 0.0; paid <= 1500; paid += 50 {
		s := Calculate(l, []models.LoanPayment{{Amount: paid}}, eval)
		if s.Progress < prev {
			t.Fatalf("progress decreased at paid=%v: %v < %v", paid, s.Progress, prev)
		}
		if s.Progress < 0 || s.Progress > 100 {
			t.Fatalf("progress out of range at paid=%v: %v", paid, s.Progress)
		}
		prev = s.Progress
	}
}

func TestZeroTotalDueHasZeroProgress(t *testing.T) {
	s := Calculate(models.Loan{StartDate: "2024-01-01"}, []models.LoanPayment{{Amount: 10}}, day("2024-01-02"))
	if s.Progress != 0 {
		t.Fatalf("expected 0 progress, got %v", s.Progress)
	}
}

func TestCalculateIsPure(t *testing.T) {
	l := models.Loan{Type: models.LoanTypeGivenInterest, Principal: 1234.56, Rate: 7.5, StartDate: "2023-03-17"}
	payments := []models.LoanPayment{{Amount: 100.1}, {Amount: 33.3}}
	eval := day("2024-08-09")

	if a, b := Calculate(l, payments, eval), Calculate(l, payments, eval); a != b {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestPortfolio(t *testing.T) {
	loans := []models.Loan{
		{ID: 1, Type: models.LoanTypeTakenInterest, Principal: 1000, StartDate: "2024-01-01", Status: models.LoanStatusActive},
		{ID: 2, Type: models.LoanTypeGivenInterest, Principal: 300, StartDate: "2024-01-01", Status: models.LoanStatusActive},
		{ID: 3, Type: models.LoanTypeFriendInterestFree, Principal: 200, StartDate: "2024-01-01", Status: models.LoanStatusActive},
		{ID: 4, Type: models.LoanTypeTakenInterest, Principal: 9999, StartDate: "2024-01-01", Status: models.LoanStatusClosed},
	}
	payments := map[uint][]models.LoanPayment{
		1: {{Amount: 250}},
		3: {{Amount: 500}},
	}

	sum := Portfolio(loans, payments, day("2024-02-01"))
	if sum.ActiveLoans != 3 {
		t.Fatalf("expected 3 active loans, got %d", sum.ActiveLoans)
	}
	if sum.Owed != 750 {
		t.Fatalf("expected owed 750 (overpaid friend loan clamps to 0), got %v", sum.Owed)
	}
	if sum.Receivable != 300 {
		t.Fatalf("expected receivable 300, got %v", sum.Receivable)
	}
}
