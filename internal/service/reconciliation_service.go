package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/lock"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
	customError "github.com/Amaral-Gabriel/daily-loan-pay/pkg/errors"
)

// ReconciliationService applies payment network confirmations to loans
type ReconciliationService struct {
	repos   *repository.Repositories
	tx      repository.Transactor
	locker  lock.Locker
	timeout time.Duration
	now     Clock
	logger  *slog.Logger
}

func NewReconciliationService(
	repos *repository.Repositories,
	tx repository.Transactor,
	locker lock.Locker,
	cfg *config.Config,
	logger *slog.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		repos:   repos,
		tx:      tx,
		locker:  locker,
		timeout: cfg.Database.Timeout,
		now:     systemClock,
		logger:  logger,
	}
}

// WithClock replaces the time source
func (s *ReconciliationService) WithClock(now Clock) *ReconciliationService {
	s.now = now
	return s
}

// ReconcileConfirmation matches a settlement notification to its daily charge
// and applies it to the loan at most once. It never returns an error: anomalies
// the sender cannot fix are acknowledged, and failures an operator must look at
// are logged and acknowledged negatively.
func (s *ReconciliationService) ReconcileConfirmation(ctx context.Context, n domain.ConfirmationNotification) (result domain.ReconcileResult) {
	logger := s.logger.With("transaction_id", n.TransactionID)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "panic while reconciling confirmation", "panic", fmt.Sprint(r))
			result = domain.ResultOf(domain.OutcomeTransient)
		}
	}()

	if strings.TrimSpace(n.TransactionID) == "" || strings.TrimSpace(n.Status) == "" {
		logger.WarnContext(ctx, "malformed confirmation notification")
		return domain.ResultOf(domain.OutcomeMalformed)
	}

	if n.Status != domain.NetworkStatusConfirmed {
		logger.InfoContext(ctx, "ignoring notification with non-confirmed status", "status", n.Status)
		return domain.ResultOf(domain.OutcomeIgnoredStatus)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	charge, err := s.repos.DailyCharges.GetByTransactionID(ctx, n.TransactionID)
	if errors.Is(err, repository.ErrNotFound) {
		logger.WarnContext(ctx, "no daily charge carries this transaction id")
		return domain.ResultOf(domain.OutcomeUnknownTransaction)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to look up daily charge", "error", err)
		return domain.ResultOf(domain.OutcomeTransient)
	}

	if charge.IsConfirmed() {
		logger.InfoContext(ctx, "daily charge already confirmed", "charge_id", charge.ID)
		return domain.ResultOf(domain.OutcomeAlreadyConfirmed)
	}

	amount, err := parseAmount(n.Amount)
	if err != nil {
		logger.WarnContext(ctx, "unparsable confirmation amount", "amount", n.Amount, "error", err)
		return domain.ResultOf(domain.OutcomeMalformed)
	}

	logger = logger.With("loan_id", charge.LoanID, "charge_id", charge.ID)

	unlock, err := s.locker.Lock(ctx, lock.LoanKey(charge.LoanID))
	if err != nil {
		logger.ErrorContext(ctx, "failed to lock loan", "error", err)
		return domain.ResultOf(domain.OutcomeTransient)
	}
	defer unlock()

	outcome, err := s.apply(ctx, logger, n.TransactionID, amount)
	if err != nil {
		if errors.Is(err, customError.ErrInconsistency) {
			logger.ErrorContext(ctx, "confirmation references inconsistent data", "error", err)
			return domain.ResultOf(domain.OutcomeInconsistent)
		}
		logger.ErrorContext(ctx, "failed to apply confirmation", "error", err)
		return domain.ResultOf(domain.OutcomeTransient)
	}

	switch outcome {
	case domain.OutcomeApplied:
		logger.InfoContext(ctx, "payment confirmed", "amount", amount.String(), "network_timestamp", n.Timestamp)
	default:
		logger.InfoContext(ctx, "confirmation resolved without mutation", "outcome", outcome)
	}

	return domain.ResultOf(outcome)
}

// apply performs the confirmation inside one transaction.
// The charge is re-read under lock because it may have been confirmed or
// re-issued between the first lookup and acquiring the loan lock.
func (s *ReconciliationService) apply(ctx context.Context, logger *slog.Logger, transactionID string, amount decimal.Decimal) (domain.ReconcileOutcome, error) {
	var outcome domain.ReconcileOutcome

	err := s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		charge, err := repos.DailyCharges.GetByTransactionIDForUpdate(ctx, transactionID)
		if errors.Is(err, repository.ErrNotFound) {
			outcome = domain.OutcomeUnknownTransaction
			return nil
		}
		if err != nil {
			return err
		}
		if charge.IsConfirmed() {
			outcome = domain.OutcomeAlreadyConfirmed
			return nil
		}

		loan, err := repos.Loans.GetByIDForUpdate(ctx, charge.LoanID)
		if errors.Is(err, repository.ErrNotFound) {
			return customError.WrapInconsistency(fmt.Sprintf("daily charge %s references missing loan %s", charge.ID, charge.LoanID))
		}
		if err != nil {
			return err
		}

		if !amount.Equal(charge.Amount) {
			logger.WarnContext(ctx, "confirmed amount differs from charge amount",
				"confirmed_amount", amount.String(),
				"charge_amount", charge.Amount.String(),
			)
		}

		confirmedAt := s.now()
		confirmed, err := repos.DailyCharges.MarkConfirmed(ctx, charge.ID, confirmedAt)
		if err != nil {
			return err
		}
		if !confirmed {
			outcome = domain.OutcomeAlreadyConfirmed
			return nil
		}

		loan.Apply(loan.Settle(amount))
		if err := repos.Loans.UpdateBalance(ctx, loan); err != nil {
			return err
		}

		err = repos.Payments.Create(ctx, &domain.Payment{
			LoanID:        loan.ID,
			UserID:        loan.UserID,
			DailyChargeID: charge.ID,
			Amount:        amount,
			PaymentKey:    charge.PaymentKey,
			TransactionID: transactionID,
			Status:        domain.PaymentStatusConfirmed,
			ConfirmedAt:   confirmedAt,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return customError.WrapInconsistency(fmt.Sprintf("payment already recorded for unconfirmed charge %s", charge.ID))
		}
		if err != nil {
			return err
		}

		outcome = domain.OutcomeApplied
		return nil
	})

	return outcome, err
}

// Money columns are DECIMAL(12,2): whole cents below 10^10.
const (
	amountScale  = 2
	amountMinExp = -8
	amountMaxExp = 10
)

var amountLimit = decimal.New(1, 10)

// parseAmount accepts a non-negative decimal string in whole cents that the
// money columns can store. The exponent is bounded before any arithmetic
// because rescaling a value like 1e1000000 allocates millions of digits.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, err
	}
	if exp := amount.Exponent(); exp < amountMinExp || exp > amountMaxExp {
		return decimal.Zero, fmt.Errorf("amount %s is out of range", raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %s is negative", raw)
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return decimal.Zero, fmt.Errorf("amount %s has fractions of a cent", raw)
	}
	if !amount.LessThan(amountLimit) {
		return decimal.Zero, fmt.Errorf("amount %s exceeds %s", raw, amountLimit)
	}
	return amount.Truncate(amountScale), nil
}

// ExpireStaleCharges marks pending charges past their expiry as expired
func (s *ReconciliationService) ExpireStaleCharges(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.repos.DailyCharges.ExpirePending(ctx, s.now())
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	if n > 0 {
		s.logger.InfoContext(ctx, "expired stale daily charges", "count", n)
	}

	return n, nil
}
