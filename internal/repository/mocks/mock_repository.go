package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
)

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) UpdateBalance(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

type MockDailyChargeRepository struct {
	mock.Mock
}

func (m *MockDailyChargeRepository) Create(ctx context.Context, charge *domain.DailyCharge) (bool, error) {
	args := m.Called(ctx, charge)
	return args.Bool(0), args.Error(1)
}

func (m *MockDailyChargeRepository) GetByLoanAndDate(ctx context.Context, loanID uuid.UUID, date time.Time) (*domain.DailyCharge, error) {
	args := m.Called(ctx, loanID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCharge), args.Error(1)
}

func (m *MockDailyChargeRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.DailyCharge, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCharge), args.Error(1)
}

func (m *MockDailyChargeRepository) GetByTransactionIDForUpdate(ctx context.Context, transactionID string) (*domain.DailyCharge, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyCharge), args.Error(1)
}

func (m *MockDailyChargeRepository) Reissue(ctx context.Context, charge *domain.DailyCharge) (bool, error) {
	args := m.Called(ctx, charge)
	return args.Bool(0), args.Error(1)
}

func (m *MockDailyChargeRepository) MarkConfirmed(ctx context.Context, id uuid.UUID, confirmedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, confirmedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockDailyChargeRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetTotalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Repositories bundles one mock per repository
type Repositories struct {
	Loans        *MockLoanRepository
	DailyCharges *MockDailyChargeRepository
	Payments     *MockPaymentRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Loans:        &MockLoanRepository{},
		DailyCharges: &MockDailyChargeRepository{},
		Payments:     &MockPaymentRepository{},
	}
}

// Bind exposes the mocks through the repository interfaces
func (r *Repositories) Bind() *repository.Repositories {
	return &repository.Repositories{
		Loans:        r.Loans,
		DailyCharges: r.DailyCharges,
		Payments:     r.Payments,
	}
}

func (r *Repositories) AssertExpectations(t mock.TestingT) {
	r.Loans.AssertExpectations(t)
	r.DailyCharges.AssertExpectations(t)
	r.Payments.AssertExpectations(t)
}

// Transactor runs fn against the same mocks and records whether it committed
type Transactor struct {
	Repos      *repository.Repositories
	Err        error
	Committed  int
	RolledBack int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	if t.Err != nil {
		return t.Err
	}
	if err := fn(t.Repos); err != nil {
		t.RolledBack++
		return err
	}
	t.Committed++
	return nil
}
