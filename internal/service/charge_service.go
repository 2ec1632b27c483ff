package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/lock"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/paycode"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
	customError "github.com/Amaral-Gabriel/daily-loan-pay/pkg/errors"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/utils"
)

// ChargeService issues daily charges and answers loan queries for borrowers
type ChargeService struct {
	repos     *repository.Repositories
	tx        repository.Transactor
	locker    lock.Locker
	codes     paycode.Generator
	ids       paycode.TransactionIDs
	location  *time.Location
	chargeTTL time.Duration
	timeout   time.Duration
	now       Clock
	logger    *slog.Logger
}

func NewChargeService(
	repos *repository.Repositories,
	tx repository.Transactor,
	locker lock.Locker,
	codes paycode.Generator,
	ids paycode.TransactionIDs,
	cfg *config.Config,
	logger *slog.Logger,
) *ChargeService {
	return &ChargeService{
		repos:     repos,
		tx:        tx,
		locker:    locker,
		codes:     codes,
		ids:       ids,
		location:  cfg.Location(),
		chargeTTL: cfg.Business.ChargeTTL,
		timeout:   cfg.Database.Timeout,
		now:       systemClock,
		logger:    logger,
	}
}

// WithClock replaces the time source
func (s *ChargeService) WithClock(now Clock) *ChargeService {
	s.now = now
	return s
}

// today returns the business calendar day of now
func (s *ChargeService) today(now time.Time) time.Time {
	return utils.CalendarDate(now, s.location)
}

// GenerateDailyCharge creates today's charge for a loan, or re-issues it with a
// fresh code and transaction ID while it is still unconfirmed.
func (s *ChargeService) GenerateDailyCharge(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.DailyCharge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, lock.LoanKey(loanID))
	if err != nil {
		return nil, customError.WrapLockError(err)
	}
	defer unlock()

	var result *domain.DailyCharge
	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		loan, err := authorizedLoan(ctx, repos.Loans, loanID, identity)
		if err != nil {
			return err
		}

		if loan.Status != domain.LoanStatusActive {
			return customError.WrapLoanNotActive(loanID.String())
		}
		if !loan.RemainingAmount.IsPositive() {
			return customError.WrapLoanPaidOff(loanID.String())
		}

		now := s.now()
		today := s.today(now)

		existing, err := repos.DailyCharges.GetByLoanAndDate(ctx, loanID, today)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return customError.WrapDatabaseError(err)
		}
		if existing != nil && existing.IsConfirmed() {
			return customError.WrapChargeAlreadyConfirmed(loanID.String())
		}

		key := paycode.Key(loanID, today)
		code, err := s.codes.Generate(key)
		if err != nil {
			return customError.WrapPaymentCodeError(err)
		}

		issued := &domain.DailyCharge{
			LoanID:        loanID,
			PaymentDate:   today,
			Amount:        loan.DailyAmount,
			PaymentKey:    key,
			PaymentCode:   code,
			TransactionID: s.ids.Next(loanID),
			Status:        domain.ChargeStatusPending,
			ExpiresAt:     now.Add(s.chargeTTL),
		}

		if existing == nil {
			inserted, err := repos.DailyCharges.Create(ctx, issued)
			if err != nil {
				return customError.WrapDatabaseError(err)
			}
			if inserted {
				result = issued
				return nil
			}

			// another initiator inserted today's row first
			existing, err = repos.DailyCharges.GetByLoanAndDate(ctx, loanID, today)
			if err != nil {
				return customError.WrapDatabaseError(err)
			}
		}

		result, err = s.reissue(ctx, repos, existing, issued)
		return err
	})
	if err != nil {
		return nil, asBusinessError(err)
	}

	s.logger.InfoContext(ctx, "daily charge issued",
		"loan_id", loanID,
		"charge_id", result.ID,
		"transaction_id", result.TransactionID,
		"payment_date", result.PaymentDate.Format(time.DateOnly),
	)

	return result, nil
}

// reissue moves the new code material onto an existing unconfirmed charge.
// The superseded transaction ID stops resolving once this commits.
func (s *ChargeService) reissue(ctx context.Context, repos *repository.Repositories, existing, issued *domain.DailyCharge) (*domain.DailyCharge, error) {
	if existing.IsConfirmed() {
		return nil, customError.WrapChargeAlreadyConfirmed(existing.LoanID.String())
	}

	superseded := existing.TransactionID
	existing.PaymentKey = issued.PaymentKey
	existing.PaymentCode = issued.PaymentCode
	existing.TransactionID = issued.TransactionID
	existing.ExpiresAt = issued.ExpiresAt

	ok, err := repos.DailyCharges.Reissue(ctx, existing)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if !ok {
		return nil, customError.WrapChargeAlreadyConfirmed(existing.LoanID.String())
	}

	s.logger.DebugContext(ctx, "daily charge reissued",
		"charge_id", existing.ID,
		"superseded_transaction_id", superseded,
	)

	return existing, nil
}

// GetDailyChargeStatus returns today's charge of a loan, or nil when none was issued
func (s *ChargeService) GetDailyChargeStatus(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.DailyCharge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := authorizedLoan(ctx, s.repos.Loans, loanID, identity); err != nil {
		return nil, err
	}

	charge, err := s.repos.DailyCharges.GetByLoanAndDate(ctx, loanID, s.today(s.now()))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return charge, nil
}

// GetLoanDetails returns the loan with its repayment progress
func (s *ChargeService) GetLoanDetails(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.LoanDetailsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	loan, err := authorizedLoan(ctx, s.repos.Loans, loanID, identity)
	if err != nil {
		return nil, err
	}

	return &domain.LoanDetailsResponse{
		Loan:               loan,
		DaysRemaining:      utils.DaysRemaining(loan.RemainingAmount, loan.DailyAmount),
		DaysElapsed:        utils.DaysElapsed(loan.PaidAmount, loan.DailyAmount),
		ProgressPercentage: utils.ProgressPercentage(loan.PaidAmount, loan.TotalAmount),
	}, nil
}

// GetPaymentHistory returns the confirmed payments of a loan, newest first
func (s *ChargeService) GetPaymentHistory(ctx context.Context, loanID uuid.UUID, identity domain.Identity) (*domain.PaymentHistoryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := authorizedLoan(ctx, s.repos.Loans, loanID, identity); err != nil {
		return nil, err
	}

	payments, err := s.repos.Payments.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	total, err := s.repos.Payments.GetTotalPaid(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.PaymentHistoryResponse{
		LoanID:    loanID,
		TotalPaid: total,
		Payments:  payments,
	}, nil
}
