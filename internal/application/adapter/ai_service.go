package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdviceRequest is the financial snapshot handed to the advisor.
type AdviceRequest struct {
	TotalBalance    decimal.Decimal
	TotalIncome     decimal.Decimal
	TotalExpense    decimal.Decimal
	ExpenseByName   []NamedAmount
	AccountBalances []NamedAmount
	Language        string
}

// NamedAmount pairs a display name with an amount.
type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}

// FinancialAdvisor produces free-text financial advice from a snapshot.
// The text is opaque to the application.
type FinancialAdvisor interface {
	// Advise returns the advisory prose.
	Advise(ctx context.Context, req AdviceRequest) (string, error)

	// IsAvailable checks if the advisor is configured.
	IsAvailable() bool
}

// AdviceCache stores advisor output keyed by user and snapshot fingerprint.
type AdviceCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, advice string) error
}
