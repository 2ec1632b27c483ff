package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
	customError "github.com/Amaral-Gabriel/daily-loan-pay/pkg/errors"
)

// Clock returns the current instant
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// authorizedLoan loads a loan the caller may act on
func authorizedLoan(ctx context.Context, loans repository.LoanRepository, loanID uuid.UUID, identity domain.Identity) (*domain.Loan, error) {
	loan, err := loans.GetByID(ctx, loanID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if !identity.CanAccess(loan) {
		return nil, customError.WrapForbidden(loanID.String())
	}

	return loan, nil
}

// asBusinessError keeps typed errors and classifies everything else as transient
func asBusinessError(err error) error {
	if err == nil {
		return nil
	}
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return customError.WrapDatabaseError(err)
}
