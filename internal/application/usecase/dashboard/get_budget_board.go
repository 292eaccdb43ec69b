package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// GetBudgetBoardInput represents the input for the budgets view.
type GetBudgetBoardInput struct {
	UserID uuid.UUID
}

// GetBudgetBoardOutput holds the month-to-date status of every budget.
type GetBudgetBoardOutput struct {
	Board  metrics.BudgetBoard
	Window metrics.Window
}

// GetBudgetBoardUseCase builds the budgets view.
type GetBudgetBoardUseCase struct {
	loader *SnapshotLoader
	clock  adapter.Clock
}

// NewGetBudgetBoardUseCase creates a new GetBudgetBoardUseCase instance.
func NewGetBudgetBoardUseCase(loader *SnapshotLoader, clock adapter.Clock) *GetBudgetBoardUseCase {
	return &GetBudgetBoardUseCase{loader: loader, clock: clock}
}

// Execute loads the snapshot and computes the board at the clock's now.
func (uc *GetBudgetBoardUseCase) Execute(ctx context.Context, input GetBudgetBoardInput) (*GetBudgetBoardOutput, error) {
	snapshot, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	return &GetBudgetBoardOutput{
		Board:  metrics.BuildBudgetBoard(snapshot, now),
		Window: metrics.MonthToDate(now),
	}, nil
}
