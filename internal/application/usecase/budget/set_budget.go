package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// SetBudgetInput represents the input for setting the budget of a category.
type SetBudgetInput struct {
	UserID     uuid.UUID
	CategoryID string
	Amount     decimal.Decimal
}

// SetBudgetOutput represents the output of setting a budget.
type SetBudgetOutput struct {
	Budget   entity.Budget
	Category *entity.Category
	Budgets  []entity.Budget
}

// SetBudgetUseCase creates or replaces the budget of one expense category.
type SetBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewSetBudgetUseCase creates a new SetBudgetUseCase instance.
func NewSetBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository, clock adapter.Clock) *SetBudgetUseCase {
	return &SetBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute stores the budget. The whole set is written back in one atomic update.
func (uc *SetBudgetUseCase) Execute(ctx context.Context, input SetBudgetInput) (*SetBudgetOutput, error) {
	if input.Amount.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.Type != entity.CategoryTypeExpense {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotExpense,
			"budgets can only be set on expense categories",
			domainerror.ErrBudgetCategoryNotExpense,
		)
	}

	budget := entity.Budget{CategoryID: category.ID, Amount: input.Amount}
	set, err := uc.budgetRepo.Update(ctx, input.UserID, func(set *entity.BudgetSet) error {
		set.Upsert(budget)
		set.UpdatedAt = uc.clock.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save budgets: %w", err)
	}

	return &SetBudgetOutput{
		Budget:   budget,
		Category: category,
		Budgets:  set.Budgets,
	}, nil
}
