package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput is the dashboard summary plus a lookup to name its references.
type GetSummaryOutput struct {
	Summary metrics.DashboardSummary
	Lookup  *metrics.Lookup
}

// GetSummaryUseCase builds the dashboard summary.
type GetSummaryUseCase struct {
	loader *SnapshotLoader
	clock  adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(loader *SnapshotLoader, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{loader: loader, clock: clock}
}

// Execute loads the snapshot and computes the summary at the clock's now.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	snapshot, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		Summary: metrics.BuildDashboardSummary(snapshot, uc.clock.Now()),
		Lookup:  metrics.NewLookup(snapshot.Accounts, snapshot.Categories),
	}, nil
}
