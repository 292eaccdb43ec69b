package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter/memstore"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var refNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func seeded(t *testing.T) (*memstore.Store, uuid.UUID) {
	t.Helper()
	store := memstore.New()
	userID := uuid.New()
	accounts := entity.DefaultAccounts(userID)
	store.AddAccounts(accounts...)
	acc := accounts[0].ID
	store.AddTransactions(
		entity.NewTransaction(userID, acc, "cat1", decimal.NewFromInt(150), entity.TransactionTypeExpense, refNow.AddDate(0, 0, -2), ""),
		entity.NewTransaction(userID, acc, "cat7", decimal.NewFromInt(4000), entity.TransactionTypeIncome, time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC), ""),
		entity.NewTransaction(userID, acc, "cat2", decimal.NewFromInt(60), entity.TransactionTypeExpense, time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC), ""),
		entity.NewTransaction(userID, acc, "cat7", decimal.NewFromInt(3500), entity.TransactionTypeIncome, time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC), ""),
	)
	store.SetBudgets(userID, entity.Budget{CategoryID: "cat1", Amount: decimal.NewFromInt(8000)})
	return store, userID
}

func TestGetSummaryUseCase(t *testing.T) {
	store, userID := seeded(t)
	uc := NewGetSummaryUseCase(NewSnapshotLoader(store), fixedClock(refNow))

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := out.Summary
	if !s.TotalBalance.Equal(decimal.NewFromInt(170000)) {
		t.Errorf("expected balance 170000, got %s", s.TotalBalance)
	}
	if !s.RecentFlows.Income.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected 30-day income 4000, got %s", s.RecentFlows.Income)
	}
	// February 3rd is more than 30 days before March 15th.
	if !s.RecentFlows.Expense.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected 30-day expense 150, got %s", s.RecentFlows.Expense)
	}
	if !s.HasBudgets || s.Budgets.PercentUsed != 1.875 {
		t.Errorf("expected budget usage 1.875, got %+v", s.Budgets)
	}
	if len(s.RecentTransactions) != 4 {
		t.Errorf("expected 4 recent transactions, got %d", len(s.RecentTransactions))
	}
	if name := out.Lookup.CategoryName(s.ExpenseBreakdown[0].Category.ID); name != "Food & Dining" {
		t.Errorf("expected Food & Dining first, got %s", name)
	}
}

func TestGetBudgetBoardUseCase(t *testing.T) {
	store, userID := seeded(t)
	out, err := NewGetBudgetBoardUseCase(NewSnapshotLoader(store), fixedClock(refNow)).
		Execute(context.Background(), GetBudgetBoardInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Board.Lines) != 1 {
		t.Fatalf("expected 1 budget line, got %d", len(out.Board.Lines))
	}
	line := out.Board.Lines[0]
	if !line.Spent.Equal(decimal.NewFromInt(150)) || !line.Remaining.Equal(decimal.NewFromInt(7850)) {
		t.Errorf("unexpected line %+v", line)
	}
	if len(out.Board.Unbudgeted) != 5 {
		t.Errorf("expected 5 unbudgeted categories, got %d", len(out.Board.Unbudgeted))
	}
	if !out.Window.Start.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window start %s", out.Window.Start)
	}
}

func TestGetTrendsUseCase(t *testing.T) {
	store, userID := seeded(t)
	uc := NewGetTrendsUseCase(NewSnapshotLoader(store), fixedClock(refNow))
	ctx := context.Background()

	tests := []struct {
		name       string
		year       int
		wantYear   int
		wantIncome int64
	}{
		{"current year", 0, 2026, 4000},
		{"past year", 2025, 2025, 3500},
		{"empty year", 2020, 2020, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(ctx, GetTrendsInput{UserID: userID, Year: tt.year})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Report.Year != tt.wantYear || len(out.Report.Months) != 12 {
				t.Errorf("unexpected report %d with %d months", out.Report.Year, len(out.Report.Months))
			}
			if !out.Report.Totals.Income.Equal(decimal.NewFromInt(tt.wantIncome)) {
				t.Errorf("expected income %d, got %s", tt.wantIncome, out.Report.Totals.Income)
			}
		})
	}

	t.Run("rejects out of range year", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetTrendsInput{UserID: userID, Year: 12})
		if !errors.Is(err, domainerror.ErrInvalidReportYear) {
			t.Errorf("expected invalid year, got %v", err)
		}
	})

	if got := MonthLabel(time.March, 2026); got != "Mar 2026" {
		t.Errorf("expected Mar 2026, got %s", got)
	}
}

func TestSnapshotLoaderFailsAsAWhole(t *testing.T) {
	store, userID := seeded(t)
	store.Err = errors.New("connection refused")

	_, err := NewSnapshotLoader(store).Load(context.Background(), userID)
	var rptErr *domainerror.ReportError
	if !errors.As(err, &rptErr) || rptErr.Code != domainerror.ErrCodeSnapshotUnavailable {
		t.Fatalf("expected snapshot unavailable, got %v", err)
	}
	if !errors.Is(err, domainerror.ErrSnapshotUnavailable) {
		t.Error("expected the sentinel in the chain")
	}
}
