// Package error defines domain-specific errors for the Pocket Ledger application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrTransactionTypeMismatch is returned when the transaction type differs from its category type.
	ErrTransactionTypeMismatch = errors.New("transaction type does not match category type")

	// ErrNoteTooLong is returned when the transaction note exceeds the maximum length.
	ErrNoteTooLong = errors.New("note too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TRX-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TRX-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TRX-010002"
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TRX-010003"
	ErrCodeTransactionTypeMismatch  TransactionErrorCode = "TRX-010004"
	ErrCodeNoteTooLong              TransactionErrorCode = "TRX-010005"
	ErrCodeCategoryNotFound         TransactionErrorCode = "TRX-010006"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TRX-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
