// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID uuid.UUID
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts     []*entity.Account
	TotalBalance decimal.Decimal
}

// ListAccountsUseCase handles listing the accounts of a user.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute lists the accounts with their combined balance.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return &ListAccountsOutput{
		Accounts:     accounts,
		TotalBalance: metrics.TotalBalance(accounts),
	}, nil
}
