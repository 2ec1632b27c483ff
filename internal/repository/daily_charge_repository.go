package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
)

const dailyChargeColumns = `id, loan_id, payment_date, amount, payment_key, payment_code, transaction_id, status, expires_at, confirmed_at, created_at, updated_at`

type dailyChargeRepository struct {
	db  sqlx.ExtContext
	now clock
}

func NewDailyChargeRepository(db sqlx.ExtContext) DailyChargeRepository {
	return &dailyChargeRepository{db: db, now: utcNow}
}

func (r *dailyChargeRepository) Create(ctx context.Context, charge *domain.DailyCharge) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO daily_charges (` + dailyChargeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (loan_id, payment_date) DO NOTHING
	`)

	now := r.now()
	if charge.ID == uuid.Nil {
		charge.ID = uuid.New()
	}
	charge.CreatedAt = now
	charge.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, query,
		charge.ID,
		charge.LoanID,
		charge.PaymentDate,
		charge.Amount,
		charge.PaymentKey,
		charge.PaymentCode,
		charge.TransactionID,
		charge.Status,
		charge.ExpiresAt.UTC(),
		charge.ConfirmedAt,
		charge.CreatedAt,
		charge.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert daily charge: %w", mapError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert daily charge: %w", err)
	}

	return affected == 1, nil
}

func (r *dailyChargeRepository) GetByLoanAndDate(ctx context.Context, loanID uuid.UUID, date time.Time) (*domain.DailyCharge, error) {
	query := r.db.Rebind(`
		SELECT ` + dailyChargeColumns + `
		FROM daily_charges
		WHERE loan_id = ? AND payment_date = ?
	`)

	var charge domain.DailyCharge
	if err := sqlx.GetContext(ctx, r.db, &charge, query, loanID, date); err != nil {
		return nil, fmt.Errorf("get daily charge for loan %s on %s: %w", loanID, date.Format(time.DateOnly), mapError(err))
	}

	return &charge, nil
}

func (r *dailyChargeRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.DailyCharge, error) {
	return r.getByTransactionID(ctx, transactionID, "")
}

func (r *dailyChargeRepository) GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*domain.DailyCharge, error) {
	return r.getByTransactionID(ctx, transactionID, forUpdate(r.db))
}

func (r *dailyChargeRepository) getByTransactionID(ctx context.Context, transactionID, lock string) (*domain.DailyCharge, error) {
	query := r.db.Rebind(`
		SELECT ` + dailyChargeColumns + `
		FROM daily_charges
		WHERE transaction_id = ?` + lock)

	var charge domain.DailyCharge
	if err := sqlx.GetContext(ctx, r.db, &charge, query, transactionID); err != nil {
		return nil, fmt.Errorf("get daily charge by transaction %s: %w", transactionID, mapError(err))
	}

	return &charge, nil
}

func (r *dailyChargeRepository) Reissue(ctx context.Context, charge *domain.DailyCharge) (bool, error) {
	query := r.db.Rebind(`
		UPDATE daily_charges
		SET payment_key = ?, payment_code = ?, transaction_id = ?, status = ?, expires_at = ?, updated_at = ?
		WHERE id = ? AND status <> ?
	`)

	charge.Status = domain.ChargeStatusPending
	charge.UpdatedAt = r.now()
	res, err := r.db.ExecContext(ctx, query,
		charge.PaymentKey,
		charge.PaymentCode,
		charge.TransactionID,
		charge.Status,
		charge.ExpiresAt.UTC(),
		charge.UpdatedAt,
		charge.ID,
		domain.ChargeStatusConfirmed,
	)
	if err != nil {
		return false, fmt.Errorf("reissue daily charge %s: %w", charge.ID, mapError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reissue daily charge %s: %w", charge.ID, err)
	}

	return affected == 1, nil
}

func (r *dailyChargeRepository) MarkConfirmed(ctx context.Context, id uuid.UUID, confirmedAt time.Time) (bool, error) {
	query := r.db.Rebind(`
		UPDATE daily_charges
		SET status = ?, confirmed_at = ?, updated_at = ?
		WHERE id = ? AND status <> ?
	`)

	res, err := r.db.ExecContext(ctx, query,
		domain.ChargeStatusConfirmed,
		confirmedAt.UTC(),
		r.now(),
		id,
		domain.ChargeStatusConfirmed,
	)
	if err != nil {
		return false, fmt.Errorf("confirm daily charge %s: %w", id, mapError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("confirm daily charge %s: %w", id, err)
	}

	return affected == 1, nil
}

func (r *dailyChargeRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	query := r.db.Rebind(`
		UPDATE daily_charges
		SET status = ?, updated_at = ?
		WHERE status = ? AND expires_at < ?
	`)

	res, err := r.db.ExecContext(ctx, query,
		domain.ChargeStatusExpired,
		r.now(),
		domain.ChargeStatusPending,
		now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("expire pending charges: %w", mapError(err))
	}

	return res.RowsAffected()
}
