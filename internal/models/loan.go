package models

import "time"

type LoanType string

const (
	LoanTypeTakenInterest      LoanType = "Taken (Interest)"
	LoanTypeGivenInterest      LoanType = "Given (Interest)"
	LoanTypeFriendInterestFree LoanType = "Friend (Interest Free)"
)

func (t LoanType) Valid() bool {
	switch t {
	case LoanTypeTakenInterest, LoanTypeGivenInterest, LoanTypeFriendInterestFree:
		return true
	}
	return false
}

type LoanStatus string

const (
	LoanStatusActive LoanStatus = "Active"
	LoanStatusClosed LoanStatus = "Closed"
)

func (s LoanStatus) Valid() bool {
	return s == LoanStatusActive || s == LoanStatusClosed
}

// Loan is immutable after creation except for Status.
type Loan struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:128;not null" json:"name"`
	Type      LoanType   `gorm:"size:32;index;not null" json:"type"`
	Principal float64    `gorm:"not null" json:"principal"`
	Rate      float64    `gorm:"not null;default:0" json:"rate"` // annual %
	StartDate string     `gorm:"size:10;not null" json:"startDate"`
	Status    LoanStatus `gorm:"size:16;index;not null" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type PaymentKind string

const (
	PaymentKindPayment  PaymentKind = "Payment"
	PaymentKindReceived PaymentKind = "Received"
)

func (k PaymentKind) Valid() bool {
	return k == PaymentKindPayment || k == PaymentKindReceived
}

// LoanPayment belongs to exactly one Loan and is removed with it.
type LoanPayment struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	LoanID    uint        `gorm:"index;not null" json:"loanId"`
	Date      string      `gorm:"size:10;index;not null" json:"date"`
	Amount    float64     `gorm:"not null" json:"amount"`
	Kind      PaymentKind `gorm:"size:16;not null" json:"kind"`
	CreatedAt time.Time   `json:"createdAt"`
}
