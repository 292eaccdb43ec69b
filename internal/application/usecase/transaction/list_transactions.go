// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID uuid.UUID
	Filter adapter.TransactionFilter
}

// TransactionOutput is a transaction with its references resolved for display.
type TransactionOutput struct {
	Transaction  *entity.Transaction
	AccountName  string
	CategoryName string
	Category     *entity.Category
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	store adapter.EntityStore
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(store adapter.EntityStore) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{store: store}
}

// Execute lists the user's transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, err := uc.store.Transactions().FindByUser(ctx, input.UserID, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	accounts, err := uc.store.Accounts().FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	categories, err := uc.store.Categories().FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	lookup := metrics.NewLookup(accounts, categories)
	output := &ListTransactionsOutput{Transactions: make([]*TransactionOutput, 0, len(transactions))}
	for _, t := range transactions {
		output.Transactions = append(output.Transactions, resolve(t, lookup))
	}
	return output, nil
}

func resolve(t *entity.Transaction, lookup *metrics.Lookup) *TransactionOutput {
	out := &TransactionOutput{
		Transaction:  t,
		AccountName:  lookup.AccountName(t.AccountID),
		CategoryName: lookup.CategoryName(t.CategoryID),
	}
	if c, ok := lookup.Category(t.CategoryID); ok {
		out.Category = &c
	}
	return out
}
