package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint
	ErrDuplicate = errors.New("duplicate record")
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// GetByIDForUpdate retrieves a loan and locks its row until the transaction ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// UpdateBalance writes paid amount, remaining amount and status
	UpdateBalance(ctx context.Context, loan *domain.Loan) error
}

// DailyChargeRepository defines the interface for daily charge data operations
type DailyChargeRepository interface {
	// Create inserts the charge unless one already exists for its loan and date.
	// It reports whether the row was inserted.
	Create(ctx context.Context, charge *domain.DailyCharge) (bool, error)

	// GetByLoanAndDate retrieves the charge of a loan for a calendar date
	GetByLoanAndDate(ctx context.Context, loanID uuid.UUID, date time.Time) (*domain.DailyCharge, error)

	// GetByTransactionID retrieves the charge currently carrying a transaction ID
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.DailyCharge, error)

	// GetByTransactionIDForUpdate is GetByTransactionID with a row lock
	GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*domain.DailyCharge, error)

	// Reissue replaces code, transaction ID and expiry of an unconfirmed charge and resets it to pending.
	// It reports false when the charge was confirmed in the meantime.
	Reissue(ctx context.Context, charge *domain.DailyCharge) (bool, error)

	// MarkConfirmed moves an unconfirmed charge to confirmed.
	// It reports false when the charge was already confirmed.
	MarkConfirmed(ctx context.Context, id uuid.UUID, confirmedAt time.Time) (bool, error)

	// ExpirePending marks pending charges whose expiry is before now as expired
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByLoanID retrieves all payments for a loan, newest first
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error)

	// GetTotalPaid calculates total amount paid for a loan
	GetTotalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
}

// Repositories groups the repositories bound to one connection or transaction
type Repositories struct {
	Loans        LoanRepository
	DailyCharges DailyChargeRepository
	Payments     PaymentRepository
}

// Transactor runs fn inside a database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos *Repositories) error) error
}
