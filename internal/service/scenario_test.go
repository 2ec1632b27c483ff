package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/domain"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/lock"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/repository"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/testutil"
	customError "github.com/Amaral-Gabriel/daily-loan-pay/pkg/errors"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/logger"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	store      *repository.Store
	clock      *testClock
	charges    *ChargeService
	reconciler *ReconciliationService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := testutil.NewStore(t)
	clock := &testClock{now: fixedNow}
	locker := lock.NewLocalLocker()
	cfg := testConfig()

	return &harness{
		store:      store,
		clock:      clock,
		charges:    NewChargeService(store.Repositories, store, locker, &stubCodes{}, &sequentialIDs{}, cfg, logger.Discard()).WithClock(clock.Now),
		reconciler: NewReconciliationService(store.Repositories, store, locker, cfg, logger.Discard()).WithClock(clock.Now),
	}
}

func (h *harness) issue(t *testing.T, loan *domain.Loan) *domain.DailyCharge {
	t.Helper()
	charge, err := h.charges.GenerateDailyCharge(context.Background(), loan.ID, domain.Identity{UserID: loan.UserID})
	require.NoError(t, err)
	return charge
}

func (h *harness) confirm(transactionID, amount string) domain.ReconcileResult {
	return h.reconciler.ReconcileConfirmation(context.Background(), confirmation(transactionID, amount))
}

func (h *harness) loan(t *testing.T, id uuid.UUID) *domain.Loan {
	t.Helper()
	loan, err := h.store.Loans.GetByID(context.Background(), id)
	require.NoError(t, err)
	return loan
}

func assertBalance(t *testing.T, loan *domain.Loan, paid, remaining string) {
	t.Helper()
	assert.True(t, loan.PaidAmount.Equal(decimal.RequireFromString(paid)), "paid %s, want %s", loan.PaidAmount, paid)
	assert.True(t, loan.RemainingAmount.Equal(decimal.RequireFromString(remaining)), "remaining %s, want %s", loan.RemainingAmount, remaining)
}

func TestScenario_HappyPath(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")

	charge := h.issue(t, loan)
	result := h.confirm(charge.TransactionID, "10")

	assert.Equal(t, domain.OutcomeApplied, result.Outcome)
	assert.True(t, result.Accepted)

	got := h.loan(t, loan.ID)
	assertBalance(t, got, "10", "90")
	assert.Equal(t, domain.LoanStatusActive, got.Status)

	status, err := h.charges.GetDailyChargeStatus(context.Background(), loan.ID, domain.Identity{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.ChargeStatusConfirmed, status.Status)
	require.NotNil(t, status.ConfirmedAt)

	history, err := h.charges.GetPaymentHistory(context.Background(), loan.ID, domain.Identity{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, history.Payments, 1)
	assert.Equal(t, charge.ID, history.Payments[0].DailyChargeID)
	assert.True(t, history.TotalPaid.Equal(decimal.NewFromInt(10)))
}

func TestScenario_FinalPaymentPaysOffAndClampsOverpayment(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "5", "10")

	charge := h.issue(t, loan)
	result := h.confirm(charge.TransactionID, "10")
	require.Equal(t, domain.OutcomeApplied, result.Outcome)

	got := h.loan(t, loan.ID)
	assertBalance(t, got, "10", "0")
	assert.Equal(t, domain.LoanStatusPaidOff, got.Status)

	h.clock.Advance(24 * time.Hour)
	_, err := h.charges.GenerateDailyCharge(context.Background(), loan.ID, domain.Identity{UserID: "user-1"})
	assert.ErrorIs(t, err, customError.ErrInvalidState)
}

func TestScenario_UnknownTransactionChangesNothing(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")
	h.issue(t, loan)

	result := h.confirm("TXN-ghost", "10")

	assert.Equal(t, domain.OutcomeUnknownTransaction, result.Outcome)
	assert.True(t, result.Accepted)
	assertBalance(t, h.loan(t, loan.ID), "0", "100")
	assert.Equal(t, 0, testutil.CountRows(t, h.store, "payments"))
}

func TestScenario_UnstorableAmountLeavesChargePending(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")
	charge := h.issue(t, loan)

	for _, amount := range []string{"1e1000000", "0.004", "10000000000"} {
		result := h.confirm(charge.TransactionID, amount)
		assert.Equal(t, domain.OutcomeMalformed, result.Outcome, amount)
		assert.False(t, result.Accepted, amount)
	}

	assertBalance(t, h.loan(t, loan.ID), "0", "100")
	assert.Equal(t, 0, testutil.CountRows(t, h.store, "payments"))

	result := h.confirm(charge.TransactionID, "10")
	assert.Equal(t, domain.OutcomeApplied, result.Outcome)
	assertBalance(t, h.loan(t, loan.ID), "10", "90")
}

func TestScenario_ReissueSupersedesPreviousTransaction(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")

	first := h.issue(t, loan)
	second := h.issue(t, loan)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.TransactionID, second.TransactionID)
	assert.Equal(t, 1, testutil.CountRows(t, h.store, "daily_charges"))

	assert.Equal(t, domain.OutcomeUnknownTransaction, h.confirm(first.TransactionID, "10").Outcome)
	assert.Equal(t, domain.OutcomeApplied, h.confirm(second.TransactionID, "10").Outcome)
	assertBalance(t, h.loan(t, loan.ID), "10", "90")
}

func TestScenario_DuplicateDeliveryAppliesOnce(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")
	charge := h.issue(t, loan)

	assert.Equal(t, domain.OutcomeApplied, h.confirm(charge.TransactionID, "10").Outcome)
	second := h.confirm(charge.TransactionID, "10")

	assert.Equal(t, domain.OutcomeAlreadyConfirmed, second.Outcome)
	assert.True(t, second.Accepted)
	assertBalance(t, h.loan(t, loan.ID), "10", "90")
	assert.Equal(t, 1, testutil.CountRows(t, h.store, "payments"))
}

func TestScenario_ConcurrentDuplicateDeliveries(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")
	charge := h.issue(t, loan)

	const deliveries = 8
	outcomes := make(chan domain.ReconcileOutcome, deliveries)

	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- h.confirm(charge.TransactionID, "10").Outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	applied := 0
	for outcome := range outcomes {
		switch outcome {
		case domain.OutcomeApplied:
			applied++
		case domain.OutcomeAlreadyConfirmed:
		default:
			t.Errorf("unexpected outcome %s", outcome)
		}
	}

	assert.Equal(t, 1, applied)
	assertBalance(t, h.loan(t, loan.ID), "10", "90")
	assert.Equal(t, 1, testutil.CountRows(t, h.store, "payments"))
}

func TestScenario_ConcurrentDistinctConfirmationsConserveBalance(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")

	const days = 5
	transactionIDs := make([]string, 0, days)
	for i := 0; i < days; i++ {
		transactionIDs = append(transactionIDs, h.issue(t, loan).TransactionID)
		h.clock.Advance(24 * time.Hour)
	}

	var wg sync.WaitGroup
	for _, txID := range transactionIDs {
		wg.Add(1)
		go func(txID string) {
			defer wg.Done()
			assert.Equal(t, domain.OutcomeApplied, h.confirm(txID, "10").Outcome)
		}(txID)
	}
	wg.Wait()

	got := h.loan(t, loan.ID)
	assertBalance(t, got, "50", "50")
	assert.True(t, got.PaidAmount.Add(got.RemainingAmount).Equal(got.TotalAmount))
	assert.Equal(t, days, testutil.CountRows(t, h.store, "payments"))
}

func TestScenario_ConcurrentInitiationKeepsOneChargePerDay(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")

	const callers = 6
	charges := make(chan *domain.DailyCharge, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			charge, err := h.charges.GenerateDailyCharge(context.Background(), loan.ID, domain.Identity{UserID: "user-1"})
			assert.NoError(t, err)
			charges <- charge
		}()
	}
	wg.Wait()
	close(charges)

	ids := map[uuid.UUID]bool{}
	transactionIDs := map[string]bool{}
	for charge := range charges {
		if charge == nil {
			continue
		}
		ids[charge.ID] = true
		transactionIDs[charge.TransactionID] = true
	}

	assert.Len(t, ids, 1)
	assert.Len(t, transactionIDs, callers)
	assert.Equal(t, 1, testutil.CountRows(t, h.store, "daily_charges"))
}

func TestScenario_ConfirmedChargeIsTerminal(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")
	charge := h.issue(t, loan)
	require.Equal(t, domain.OutcomeApplied, h.confirm(charge.TransactionID, "10").Outcome)

	_, err := h.charges.GenerateDailyCharge(context.Background(), loan.ID, domain.Identity{UserID: "user-1"})
	assert.ErrorIs(t, err, customError.ErrConflict)

	status, err := h.charges.GetDailyChargeStatus(context.Background(), loan.ID, domain.Identity{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, charge.TransactionID, status.TransactionID)
	assert.Equal(t, domain.ChargeStatusConfirmed, status.Status)

	h.clock.Advance(48 * time.Hour)
	n, err := h.reconciler.ExpireStaleCharges(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestScenario_LateConfirmationAfterExpiry(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")
	charge := h.issue(t, loan)

	h.clock.Advance(25 * time.Hour)
	n, err := h.reconciler.ExpireStaleCharges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, domain.OutcomeApplied, h.confirm(charge.TransactionID, "10").Outcome)
	assertBalance(t, h.loan(t, loan.ID), "10", "90")
}

func TestScenario_OtherBorrowerIsForbidden(t *testing.T) {
	h := newHarness(t)
	loan := testutil.SeedLoan(t, h.store, "user-1", "100", "10")

	_, err := h.charges.GenerateDailyCharge(context.Background(), loan.ID, domain.Identity{UserID: "user-2"})
	assert.ErrorIs(t, err, customError.ErrForbidden)
	assert.Equal(t, 0, testutil.CountRows(t, h.store, "daily_charges"))

	_, err = h.charges.GenerateDailyCharge(context.Background(), uuid.New(), domain.Identity{UserID: "user-1"})
	assert.ErrorIs(t, err, customError.ErrNotFound)
}
