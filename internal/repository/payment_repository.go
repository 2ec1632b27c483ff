package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
)

const paymentColumns = `id, loan_id, user_id, daily_charge_id, amount, payment_key, transaction_id, status, confirmed_at, created_at`

type paymentRepository struct {
	db  sqlx.ExtContext
	now clock
}

func NewPaymentRepository(db sqlx.ExtContext) PaymentRepository {
	return &paymentRepository{db: db, now: utcNow}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := r.db.Rebind(`
		INSERT INTO payments (` + paymentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.CreatedAt = r.now()

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LoanID,
		payment.UserID,
		payment.DailyChargeID,
		payment.Amount,
		payment.PaymentKey,
		payment.TransactionID,
		payment.Status,
		payment.ConfirmedAt.UTC(),
		payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment for transaction %s: %w", payment.TransactionID, mapError(err))
	}

	return nil
}

func (r *paymentRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error) {
	query := r.db.Rebind(`
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE loan_id = ?
		ORDER BY confirmed_at DESC, created_at DESC
	`)

	payments := []*domain.Payment{}
	if err := sqlx.SelectContext(ctx, r.db, &payments, query, loanID); err != nil {
		return nil, fmt.Errorf("list payments for loan %s: %w", loanID, mapError(err))
	}

	return payments, nil
}

// GetTotalPaid sums in Go so the result stays exact on every driver
func (r *paymentRepository) GetTotalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.Rebind(`
		SELECT amount
		FROM payments
		WHERE loan_id = ?
	`)

	var amounts []decimal.Decimal
	if err := sqlx.SelectContext(ctx, r.db, &amounts, query, loanID); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments for loan %s: %w", loanID, mapError(err))
	}

	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}

	return total, nil
}
