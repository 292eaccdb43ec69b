// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a single income or expense entry.
// AccountID and CategoryID are soft references: the referenced account may have been deleted.
type Transaction struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	AccountID  uuid.UUID
	CategoryID string
	Amount     decimal.Decimal // Always a non-negative magnitude; Type carries the direction
	Type       TransactionType
	Date       time.Time
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	accountID uuid.UUID,
	categoryID string,
	amount decimal.Decimal,
	transactionType TransactionType,
	date time.Time,
	note string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Amount:     amount,
		Type:       transactionType,
		Date:       date,
		Note:       note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsWellFormed reports whether the transaction can be fed to metric computations.
func (t *Transaction) IsWellFormed() bool {
	return t.Type.IsValid() && !t.Amount.IsNegative() && !t.Date.IsZero()
}
