package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=interfaces.go

// ChargeService serves the borrower facing loan operations
type ChargeService interface {
	GenerateDailyCharge(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.DailyCharge, error)
	GetDailyChargeStatus(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.DailyCharge, error)
	GetLoanDetails(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.LoanDetailsResponse, error)
	GetPaymentHistory(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.PaymentHistoryResponse, error)
}

// Reconciler applies payment network confirmations
type Reconciler interface {
	ReconcileConfirmation(ctx context.Context, n domain.ConfirmationNotification) domain.ReconcileResult
}
