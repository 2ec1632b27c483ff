package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const PaymentStatusConfirmed = "confirmed"

// Payment is an append-only ledger entry written once per reconciled daily charge
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	LoanID        uuid.UUID       `json:"loan_id" db:"loan_id"`
	UserID        string          `json:"user_id" db:"user_id"`
	DailyChargeID uuid.UUID       `json:"daily_charge_id" db:"daily_charge_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentKey    string          `json:"payment_key" db:"payment_key"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	Status        string          `json:"status" db:"status"`
	ConfirmedAt   time.Time       `json:"confirmed_at" db:"confirmed_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
