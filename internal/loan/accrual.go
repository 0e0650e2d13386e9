// Package loan derives interest and repayment figures from a loan and its
// payment history. Nothing here is stored; every figure is recomputed from
// the persisted loan and payments on each call.
package loan

import (
	"math"
	"time"

	"localtrack/internal/models"
)

const daysPerYear = 365

// Stats is the derived state of one loan as of an evaluation date.
type Stats struct {
	TotalPaid       float64 `json:"totalPaid"`
	InterestAccrued float64 `json:"interestAccrued"`
	TotalDue        float64 `json:"totalDue"`
	// Outstanding is signed: a negative value means the loan was overpaid.
	Outstanding float64 `json:"outstanding"`
	Progress    float64 `json:"progress"` // percent, 0..100
	DaysElapsed int     `json:"daysElapsed"`
}

// DisplayOutstanding clamps Outstanding at zero for rendering.
func (s Stats) DisplayOutstanding() float64 {
	return math.Max(0, s.Outstanding)
}

// Calculate applies simple interest (actual/365, no compounding) from the
// loan's start date to evalDate. Payment and Received amounts both count
// towards TotalPaid.
func Calculate(l models.Loan, payments []models.LoanPayment, evalDate time.Time) Stats {
	var s Stats
	for _, p := range payments {
		s.TotalPaid += p.Amount
	}

	s.DaysElapsed = DaysElapsed(l.StartDate, evalDate)
	if l.Rate > 0 && l.Type != models.LoanTypeFriendInterestFree {
		s.InterestAccrued = l.Principal * (l.Rate / 100) * float64(s.DaysElapsed) / daysPerYear
	}

	s.TotalDue = l.Principal + s.InterestAccrued
	s.Outstanding = s.TotalDue - s.TotalPaid
	if s.TotalDue > 0 {
		s.Progress = math.Min(100, math.Max(0, s.TotalPaid/s.TotalDue*100))
	}
	return s
}

// DaysElapsed counts whole calendar days from startDate to evalDate, never
// below zero. An unparseable start date counts as zero days.
func DaysElapsed(startDate string, evalDate time.Time) int {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return 0
	}
	days := int(models.Day(evalDate).Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Summary totals the outstanding balance of active loans by direction.
type Summary struct {
	// Owed is what the user still has to pay back (taken and friend loans).
	Owed float64 `json:"owed"`
	// Receivable is what others still owe the user (given loans).
	Receivable  float64 `json:"receivable"`
	ActiveLoans int     `json:"activeLoans"`
}

// Portfolio computes Stats for every active loan and totals the clamped
// outstanding balances. paymentsByLoan is keyed by loan id.
func Portfolio(loans []models.Loan, paymentsByLoan map[uint][]models.LoanPayment, evalDate time.Time) Summary {
	var sum Summary
	for _, l := range loans {
		if l.Status != models.LoanStatusActive {
			continue
		}
		sum.ActiveLoans++
		outstanding := Calculate(l, paymentsByLoan[l.ID], evalDate).DisplayOutstanding()
		if l.Type == models.LoanTypeGivenInterest {
			sum.Receivable += outstanding
		} else {
			sum.Owed += outstanding
		}
	}
	return sum
}
