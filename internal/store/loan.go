package store

import (
	"context"
	"fmt"
	"strings"

	"localtrack/internal/models"
)

// CreateLoan validates l and inserts it as an active loan, setting l.ID.
func (s *Store) CreateLoan(ctx context.Context, l *models.Loan) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Status == "" {
		l.Status = models.LoanStatusActive
	}
	if err := validateLoan(l); err != nil {
		return err
	}
	l.ID = 0
	if err := s.conn(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

func (s *Store) GetLoan(ctx context.Context, id uint) (*models.Loan, error) {
	var l models.Loan
	if err := first(ctx, s.db, "loan", &l, id); err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLoans returns loans in creation order. An empty status lists all.
func (s *Store) ListLoans(ctx context.Context, status models.LoanStatus) ([]models.Loan, error) {
	q := s.conn(ctx).Order("id ASC")
	if status != "" {
		if !status.Valid() {
			return nil, invalid("status", "must be Active or Closed")
		}
		q = q.Where("status = ?", status)
	}
	out := make([]models.Loan, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return out, nil
}

// SetLoanStatus is the only mutation a loan accepts after creation.
func (s *Store) SetLoanStatus(ctx context.Context, id uint, status models.LoanStatus) (*models.Loan, error) {
	if !status.Valid() {
		return nil, invalid("status", "must be Active or Closed")
	}
	l, err := s.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Model(l).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update loan %d status: %w", id, err)
	}
	l.Status = status
	return l, nil
}

// DeleteLoan removes loan id together with its payments. Deleting a missing
// loan is a no-op.
func (s *Store) DeleteLoan(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.conn(ctx).Where("loan_id = ?", id).Delete(&models.LoanPayment{}).Error; err != nil {
			return fmt.Errorf("delete payments of loan %d: %w", id, err)
		}
		if err := tx.conn(ctx).Delete(&models.Loan{}, id).Error; err != nil {
			return fmt.Errorf("delete loan %d: %w", id, err)
		}
		return nil
	})
}

// AddLoanPayment records a payment against an active loan, setting p.ID.
func (s *Store) AddLoanPayment(ctx context.Context, p *models.LoanPayment) error {
	if p.Kind == "" {
		p.Kind = models.PaymentKindPayment
	}
	if err := validateLoanPayment(p); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		l, err := tx.GetLoan(ctx, p.LoanID)
		if err != nil {
			return err
		}
		if l.Status != models.LoanStatusActive {
			return invalid("loanId", fmt.Sprintf("loan %d is closed", l.ID))
		}
		p.ID = 0
		if err := tx.conn(ctx).Create(p).Error; err != nil {
			return fmt.Errorf("create loan payment: %w", err)
		}
		return nil
	})
}

// ListLoanPayments returns the payments owned by loanID, oldest first.
func (s *Store) ListLoanPayments(ctx context.Context, loanID uint) ([]models.LoanPayment, error) {
	return findByForeignKey[models.LoanPayment](ctx, s.db, "loan_id", loanID)
}

func (s *Store) ListLoanPaymentsByDateRange(ctx context.Context, start, end string) ([]models.LoanPayment, error) {
	return queryByDateRange[models.LoanPayment](ctx, s.db, start, end)
}

// DeleteLoanPayment removes payment id. Deleting a missing payment is a no-op.
func (s *Store) DeleteLoanPayment(ctx context.Context, id uint) error {
	if err := s.conn(ctx).Delete(&models.LoanPayment{}, id).Error; err != nil {
		return fmt.Errorf("delete loan payment %d: %w", id, err)
	}
	return nil
}

func validateLoan(l *models.Loan) error {
	if l.Name == "" {
		return invalid("name", "is required")
	}
	if !l.Type.Valid() {
		return invalid("type", fmt.Sprintf("unknown loan type %q", l.Type))
	}
	if err := validatePositive("principal", l.Principal); err != nil {
		return err
	}
	if err := validateNonNegative("rate", l.Rate); err != nil {
		return err
	}
	if err := validateDate("startDate", l.StartDate); err != nil {
		return err
	}
	if !l.Status.Valid() {
		return invalid("status", "must be Active or Closed")
	}
	return nil
}

func validateLoanPayment(p *models.LoanPayment) error {
	if p.LoanID == 0 {
		return invalid("loanId", "is required")
	}
	if err := validateDate("date", p.Date); err != nil {
		return err
	}
	if err := validatePositive("amount", p.Amount); err != nil {
		return err
	}
	if !p.Kind.Valid() {
		return invalid("kind", "must be Payment or Received")
	}
	return nil
}
