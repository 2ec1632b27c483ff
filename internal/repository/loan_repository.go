package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
)

const loanColumns = `id, user_id, total_amount, daily_amount, paid_amount, remaining_amount, status, start_date, created_at, updated_at`

type loanRepository struct {
	db  sqlx.ExtContext
	now clock
}

func NewLoanRepository(db sqlx.ExtContext) LoanRepository {
	return &loanRepository{db: db, now: utcNow}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := r.db.Rebind(`
		INSERT INTO loans (` + loanColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	now := r.now()
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}
	if loan.StartDate.IsZero() {
		loan.StartDate = now
	}
	loan.CreatedAt = now
	loan.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.UserID,
		loan.TotalAmount,
		loan.DailyAmount,
		loan.PaidAmount,
		loan.RemainingAmount,
		loan.Status,
		loan.StartDate.UTC(),
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", mapError(err))
	}

	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return r.get(ctx, id, "")
}

func (r *loanRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return r.get(ctx, id, forUpdate(r.db))
}

func (r *loanRepository) get(ctx context.Context, id uuid.UUID, lock string) (*domain.Loan, error) {
	query := r.db.Rebind(`
		SELECT ` + loanColumns + `
		FROM loans
		WHERE id = ?` + lock)

	var loan domain.Loan
	if err := sqlx.GetContext(ctx, r.db, &loan, query, id); err != nil {
		return nil, fmt.Errorf("get loan %s: %w", id, mapError(err))
	}

	return &loan, nil
}

func (r *loanRepository) UpdateBalance(ctx context.Context, loan *domain.Loan) error {
	query := r.db.Rebind(`
		UPDATE loans
		SET paid_amount = ?, remaining_amount = ?, status = ?, updated_at = ?
		WHERE id = ?
	`)

	loan.UpdatedAt = r.now()
	res, err := r.db.ExecContext(ctx, query,
		loan.PaidAmount,
		loan.RemainingAmount,
		loan.Status,
		loan.UpdatedAt,
		loan.ID,
	)
	if err != nil {
		return fmt.Errorf("update loan %s: %w", loan.ID, mapError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update loan %s: %w", loan.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update loan %s: %w", loan.ID, ErrNotFound)
	}

	return nil
}
