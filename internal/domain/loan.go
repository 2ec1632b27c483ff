package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusActive  LoanStatus = "active"
	LoanStatusPaidOff LoanStatus = "paid_off"
	LoanStatusOverdue LoanStatus = "overdue"
)

// Valid reports whether s is a known loan status
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusPaidOff, LoanStatusOverdue:
		return true
	}
	return false
}

// Loan represents a loan entity
type Loan struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	DailyAmount     decimal.Decimal `json:"daily_amount" db:"daily_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount" db:"remaining_amount"`
	Status          LoanStatus      `json:"status" db:"status"`
	StartDate       time.Time       `json:"start_date" db:"start_date"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Settlement is the loan state resulting from one confirmed payment
type Settlement struct {
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          LoanStatus
}

// Settle computes the balances after a confirmed payment of amount.
// The remaining amount floors at zero and the surplus of an overpayment is
// absorbed. Once paid_off is reached the status never changes again.
func (l *Loan) Settle(amount decimal.Decimal) Settlement {
	remaining := l.RemainingAmount.Sub(amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	status := l.Status
	if remaining.IsZero() {
		status = LoanStatusPaidOff
	}

	return Settlement{
		PaidAmount:      l.PaidAmount.Add(amount),
		RemainingAmount: remaining,
		Status:          status,
	}
}

// Apply copies a settlement onto the loan
func (l *Loan) Apply(s Settlement) {
	l.PaidAmount = s.PaidAmount
	l.RemainingAmount = s.RemainingAmount
	l.Status = s.Status
}

// IsOwnedBy reports whether the loan belongs to userID
func (l *Loan) IsOwnedBy(userID string) bool {
	return l.UserID == userID
}

// DTOs for responses

type LoanDetailsResponse struct {
	Loan               *Loan           `json:"loan"`
	DaysRemaining      int64           `json:"days_remaining"`
	DaysElapsed        int64           `json:"days_elapsed"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
}

type PaymentHistoryResponse struct {
	LoanID    uuid.UUID       `json:"loan_id"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Payments  []*Payment      `json:"payments"`
}
