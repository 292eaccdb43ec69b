// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the stored budgets, without spending figures.
type ListBudgetsOutput struct {
	Budgets []entity.Budget
}

// ListBudgetsUseCase returns the budget set of a user.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{budgetRepo: budgetRepo}
}

// Execute lists the budgets.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	set, err := uc.budgetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	return &ListBudgetsOutput{Budgets: set.Budgets}, nil
}
