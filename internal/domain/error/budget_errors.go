// Package error defines domain-specific errors for the Pocket Ledger application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when no budget exists for the category.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetAmount is returned when a budget amount is negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrBudgetCategoryNotExpense is returned when a budget targets a category that is not an expense category.
	ErrBudgetCategoryNotExpense = errors.New("budgets can only be set on expense categories")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BUD-010001"
	ErrCodeBudgetCategoryNotExpense BudgetErrorCode = "BUD-010002"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BUD-010003"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BUD-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
