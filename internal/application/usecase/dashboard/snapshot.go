// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// SnapshotLoader fetches every collection of a user that the metric views need.
type SnapshotLoader struct {
	store adapter.EntityStore
}

// NewSnapshotLoader creates a new SnapshotLoader instance.
func NewSnapshotLoader(store adapter.EntityStore) *SnapshotLoader {
	return &SnapshotLoader{store: store}
}

// Load returns the complete snapshot or a ReportError. A partial snapshot is never returned.
func (l *SnapshotLoader) Load(ctx context.Context, userID uuid.UUID) (metrics.Snapshot, error) {
	accounts, err := l.store.Accounts().FindByUser(ctx, userID)
	if err != nil {
		return metrics.Snapshot{}, unavailable("accounts", err)
	}
	transactions, err := l.store.Transactions().FindByUser(ctx, userID, adapter.TransactionFilter{})
	if err != nil {
		return metrics.Snapshot{}, unavailable("transactions", err)
	}
	categories, err := l.store.Categories().FindByUser(ctx, userID)
	if err != nil {
		return metrics.Snapshot{}, unavailable("categories", err)
	}
	budgets, err := l.store.Budgets().FindByUser(ctx, userID)
	if err != nil {
		return metrics.Snapshot{}, unavailable("budgets", err)
	}

	return metrics.Snapshot{
		Accounts:     accounts,
		Transactions: transactions,
		Categories:   categories,
		Budgets:      budgets.Budgets,
	}, nil
}

func unavailable(collection string, err error) error {
	return domainerror.NewReportError(
		domainerror.ErrCodeSnapshotUnavailable,
		"failed to load "+collection,
		fmt.Errorf("%w: %w", domainerror.ErrSnapshotUnavailable, err),
	)
}
