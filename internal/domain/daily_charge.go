package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeStatus is the state of a daily charge
type ChargeStatus string

const (
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusConfirmed ChargeStatus = "confirmed"
	ChargeStatusExpired   ChargeStatus = "expired"
)

// Valid reports whether s is a known charge status
func (s ChargeStatus) Valid() bool {
	switch s {
	case ChargeStatusPending, ChargeStatusConfirmed, ChargeStatusExpired:
		return true
	}
	return false
}

// DailyCharge is the single payment collection attempt of a loan for one calendar day.
// PaymentDate carries the calendar day at midnight UTC.
type DailyCharge struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	LoanID        uuid.UUID       `json:"loan_id" db:"loan_id"`
	PaymentDate   time.Time       `json:"payment_date" db:"payment_date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentKey    string          `json:"payment_key" db:"payment_key"`
	PaymentCode   string          `json:"payment_code" db:"payment_code"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	Status        ChargeStatus    `json:"status" db:"status"`
	ExpiresAt     time.Time       `json:"expires_at" db:"expires_at"`
	ConfirmedAt   *time.Time      `json:"confirmed_at,omitempty" db:"confirmed_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// IsConfirmed reports whether the charge reached its terminal state
func (c *DailyCharge) IsConfirmed() bool {
	return c.Status == ChargeStatusConfirmed
}

type DailyChargeResponse struct {
	LoanID uuid.UUID    `json:"loan_id"`
	Charge *DailyCharge `json:"charge"`
}
