package domain

// NetworkStatusConfirmed is the status value the payment network sends for a settled charge
const NetworkStatusConfirmed = "confirmed"

// ConfirmationNotification is the settlement callback sent by the payment network
type ConfirmationNotification struct {
	TransactionID string `json:"transactionId" validate:"required,max=255"`
	Amount        string `json:"amount" validate:"required"`
	Status        string `json:"status" validate:"required"`
	Timestamp     string `json:"timestamp,omitempty"`
}

// ReconcileOutcome names what a confirmation notification did
type ReconcileOutcome string

const (
	OutcomeApplied            ReconcileOutcome = "applied"
	OutcomeIgnoredStatus      ReconcileOutcome = "ignored_status"
	OutcomeUnknownTransaction ReconcileOutcome = "unknown_transaction"
	OutcomeAlreadyConfirmed   ReconcileOutcome = "already_confirmed"
	OutcomeMalformed          ReconcileOutcome = "malformed"
	OutcomeInconsistent       ReconcileOutcome = "inconsistent"
	OutcomeTransient          ReconcileOutcome = "transient"
)

// ReconcileResult is the acknowledgment returned to the payment network
type ReconcileResult struct {
	Accepted bool             `json:"success"`
	Outcome  ReconcileOutcome `json:"outcome"`
}

// Accepted reports whether an outcome is acknowledged positively
func (o ReconcileOutcome) Accepted() bool {
	switch o {
	case OutcomeMalformed, OutcomeInconsistent, OutcomeTransient:
		return false
	}
	return true
}

// ResultOf builds the acknowledgment for an outcome
func ResultOf(o ReconcileOutcome) ReconcileResult {
	return ReconcileResult{Accepted: o.Accepted(), Outcome: o}
}
