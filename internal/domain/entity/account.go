// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of bank account.
type AccountType string

const (
	AccountTypeSavings    AccountType = "savings"
	AccountTypePayroll    AccountType = "payroll"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
)

// IsValid reports whether the account type is one of the known values.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeSavings, AccountTypePayroll, AccountTypeCreditCard, AccountTypeCash, AccountTypeInvestment:
		return true
	}
	return false
}

// AccountColors is the palette new accounts pick their display color from.
var AccountColors = []string{"#3B82F6", "#10B981", "#F59E0B", "#6366F1", "#EC4899", "#8B5CF6"}

// NextAccountColor returns the palette color for the n-th account of a user.
func NextAccountColor(existing int) string {
	if existing < 0 {
		existing = 0
	}
	return AccountColors[existing%len(AccountColors)]
}

// Account represents a bank account. Balance is entered by the user and is never derived
// from transactions.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Balance   decimal.Decimal
	Type      AccountType
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(userID uuid.UUID, name string, balance decimal.Decimal, accountType AccountType, color string) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Balance:   balance,
		Type:      accountType,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultAccounts returns the starter accounts created for a newly registered user.
func DefaultAccounts(userID uuid.UUID) []*Account {
	return []*Account{
		NewAccount(userID, "Savings Account", decimal.NewFromInt(125000), AccountTypeSavings, "#3B82F6"),
		NewAccount(userID, "Payroll Account", decimal.NewFromInt(45000), AccountTypePayroll, "#EF4444"),
	}
}
