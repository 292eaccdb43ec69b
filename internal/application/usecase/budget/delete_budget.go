package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// DeleteBudgetInput represents the input for removing the budget of a category.
type DeleteBudgetInput struct {
	UserID     uuid.UUID
	CategoryID string
}

// DeleteBudgetUseCase removes one budget from the user's set.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{budgetRepo: budgetRepo, clock: clock}
}

// Execute removes the budget.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	_, err := uc.budgetRepo.Update(ctx, input.UserID, func(set *entity.BudgetSet) error {
		if !set.Remove(input.CategoryID) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		set.UpdatedAt = uc.clock.Now().UTC()
		return nil
	})
	if err != nil {
		var budErr *domainerror.BudgetError
		if errors.As(err, &budErr) {
			return err
		}
		return fmt.Errorf("failed to save budgets: %w", err)
	}
	return nil
}
