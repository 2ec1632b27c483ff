// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
)

// NewStore opens a private in-memory SQLite database with the schema applied
func NewStore(t *testing.T) *repository.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repository.Open(config.DatabaseConfig{
		Driver: "sqlite3",
		URL:    fmt.Sprintf("file:%s-%s?mode=memory&cache=shared&_foreign_keys=1", name, uuid.NewString()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.Migrate(context.Background(), db))

	return repository.NewStore(db)
}

// SeedLoan inserts an active loan owned by userID
func SeedLoan(t *testing.T, s *repository.Store, userID string, remaining, daily string) *domain.Loan {
	t.Helper()

	loan := &domain.Loan{
		UserID:          userID,
		TotalAmount:     decimal.RequireFromString(remaining),
		DailyAmount:     decimal.RequireFromString(daily),
		PaidAmount:      decimal.Zero,
		RemainingAmount: decimal.RequireFromString(remaining),
		Status:          domain.LoanStatusActive,
		StartDate:       time.Now().UTC().AddDate(0, 0, -1),
	}
	require.NoError(t, s.Loans.Create(context.Background(), loan))

	return loan
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, s *repository.Store, table string) int {
	t.Helper()

	var n int
	require.NoError(t, s.DB().Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
