package errors

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidState  = errors.New("invalid state")
	ErrConflict      = errors.New("conflict")
	ErrTransient     = errors.New("transient failure")
	ErrInconsistency = errors.New("data inconsistency")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Kind    error
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, kind, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Kind:    kind,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound           = "LOAN_NOT_FOUND"
	ErrCodeForbidden              = "FORBIDDEN"
	ErrCodeLoanNotActive          = "LOAN_NOT_ACTIVE"
	ErrCodeLoanPaidOff            = "LOAN_PAID_OFF"
	ErrCodeChargeAlreadyConfirmed = "CHARGE_ALREADY_CONFIRMED"
	ErrCodeDatabaseError          = "DATABASE_ERROR"
	ErrCodeLockError              = "LOCK_ERROR"
	ErrCodePaymentCodeError       = "PAYMENT_CODE_ERROR"
	ErrCodeInconsistency          = "DATA_INCONSISTENCY"
)

// Wrap common errors with business context
func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrNotFound,
		nil,
	)
}

func WrapForbidden(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeForbidden,
		fmt.Sprintf("No permission to access loan %s", loanID),
		ErrForbidden,
		nil,
	)
}

func WrapLoanNotActive(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotActive,
		fmt.Sprintf("Loan with ID %s is not active", loanID),
		ErrInvalidState,
		nil,
	)
}

func WrapLoanPaidOff(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanPaidOff,
		fmt.Sprintf("Loan with ID %s is already paid off", loanID),
		ErrInvalidState,
		nil,
	)
}

func WrapChargeAlreadyConfirmed(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeChargeAlreadyConfirmed,
		fmt.Sprintf("Payment for loan %s already confirmed for today", loanID),
		ErrConflict,
		nil,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		ErrTransient,
		err,
	)
}

func WrapLockError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeLockError,
		"could not acquire loan lock",
		ErrTransient,
		err,
	)
}

func WrapPaymentCodeError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentCodeError,
		"payment code generation failed",
		ErrTransient,
		err,
	)
}

func WrapInconsistency(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInconsistency,
		message,
		ErrInconsistency,
		nil,
	)
}
