package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

func TestBuildDashboardSummary(t *testing.T) {
	categories := entity.DefaultCategories()

	snapshot := Snapshot{
		Accounts: []*entity.Account{
			{ID: uuid.New(), Name: "Savings", Balance: dec("50000")},
			{ID: uuid.New(), Name: "Wallet", Balance: dec("3500")},
		},
		Transactions: []*entity.Transaction{
			tx("45000", entity.TransactionTypeIncome, "cat7", refNow.AddDate(0, 0, -20)), // Feb 23: rolling only
			tx("150", entity.TransactionTypeExpense, "cat1", refNow.AddDate(0, 0, -2)),
			tx("12000", entity.TransactionTypeExpense, "cat5", refNow.AddDate(0, 0, -40)), // outside rolling window
			tx("60", entity.TransactionTypeExpense, "cat2", refNow.AddDate(0, 0, -1)),
		},
		Categories: categories,
		Budgets: []entity.Budget{
			{CategoryID: "cat1", Amount: dec("8000")},
			{CategoryID: "cat2", Amount: dec("2000")},
		},
	}

	summary := BuildDashboardSummary(snapshot, refNow)

	if !summary.TotalBalance.Equal(dec("53500")) {
		t.Errorf("expected total balance 53500, got %s", summary.TotalBalance)
	}
	if !summary.RecentFlows.Income.Equal(dec("45000")) {
		t.Errorf("expected 30-day income 45000, got %s", summary.RecentFlows.Income)
	}
	if !summary.RecentFlows.Expense.Equal(dec("210")) {
		t.Errorf("expected 30-day expense 210, got %s", summary.RecentFlows.Expense)
	}
	if len(summary.ExpenseBreakdown) != 3 || summary.ExpenseBreakdown[0].Category.ID != "cat5" {
		t.Errorf("unexpected breakdown: %+v", summary.ExpenseBreakdown)
	}
	if !summary.HasBudgets {
		t.Error("expected HasBudgets")
	}
	if !summary.Budgets.Budgeted.Equal(dec("10000")) || !summary.Budgets.Spent.Equal(dec("210")) {
		t.Errorf("unexpected budget totals: %+v", summary.Budgets)
	}
	if summary.Budgets.PercentUsed != 2.1 {
		t.Errorf("expected 2.1 percent, got %v", summary.Budgets.PercentUsed)
	}
	if len(summary.RecentTransactions) != 4 {
		t.Errorf("expected 4 recent transactions, got %d", len(summary.RecentTransactions))
	}

	t.Run("empty snapshot", func(t *testing.T) {
		empty := BuildDashboardSummary(Snapshot{Categories: categories}, refNow)
		if !empty.TotalBalance.IsZero() || empty.HasBudgets || empty.Budgets.PercentUsed != 0 {
			t.Errorf("unexpected empty summary: %+v", empty)
		}
		if len(empty.RecentTransactions) != 0 || len(empty.ExpenseBreakdown) != 0 {
			t.Error("expected no recent activity and no breakdown")
		}
	})
}

func TestBuildBudgetBoard(t *testing.T) {
	snapshot := Snapshot{
		Categories: entity.DefaultCategories(),
		Budgets: []entity.Budget{
			{CategoryID: "cat5", Amount: dec("1500")},
			{CategoryID: "cat1", Amount: dec("400")},
		},
		Transactions: []*entity.Transaction{
			tx("450", entity.TransactionTypeExpense, "cat1", refNow.AddDate(0, 0, -3)),
		},
	}

	board := BuildBudgetBoard(snapshot, refNow)

	if len(board.Lines) != 2 || board.Lines[0].CategoryID != "cat5" || board.Lines[1].CategoryID != "cat1" {
		t.Fatalf("expected lines in budget order, got %+v", board.Lines)
	}
	if !board.Lines[1].Overspent() {
		t.Error("expected cat1 to be overspent")
	}

	wantUnbudgeted := []string{"cat2", "cat3", "cat4", "cat6"}
	if len(board.Unbudgeted) != len(wantUnbudgeted) {
		t.Fatalf("expected %d unbudgeted categories, got %d", len(wantUnbudgeted), len(board.Unbudgeted))
	}
	for i, id := range wantUnbudgeted {
		if board.Unbudgeted[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, board.Unbudgeted[i].ID)
		}
	}

	t.Run("no budgets", func(t *testing.T) {
		board := BuildBudgetBoard(Snapshot{Categories: entity.DefaultCategories()}, refNow)
		if len(board.Lines) != 0 {
			t.Errorf("expected no lines, got %d", len(board.Lines))
		}
		if len(board.Unbudgeted) != 6 {
			t.Errorf("expected every expense category unbudgeted, got %d", len(board.Unbudgeted))
		}
	})
}

func TestBuildTrendReport(t *testing.T) {
	snapshot := Snapshot{
		Transactions: []*entity.Transaction{
			tx("100", entity.TransactionTypeIncome, "cat7", time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)),
			tx("40", entity.TransactionTypeExpense, "cat1", time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)),
			tx("70", entity.TransactionTypeIncome, "cat7", time.Date(2025, time.February, 2, 0, 0, 0, 0, time.UTC)),
		},
	}

	report := BuildTrendReport(snapshot, refNow)

	if report.Year != 2026 || len(report.Months) != 12 {
		t.Fatalf("unexpected report shape: year %d, %d months", report.Year, len(report.Months))
	}
	if !report.Months[1].Income.Equal(dec("100")) || !report.Months[1].Expense.Equal(dec("40")) {
		t.Errorf("unexpected February: %+v", report.Months[1])
	}
	if !report.Totals.Income.Equal(dec("100")) || !report.Totals.Net().Equal(dec("60")) {
		t.Errorf("unexpected totals: %+v", report.Totals)
	}
}

func TestLookup(t *testing.T) {
	account := &entity.Account{ID: uuid.New(), Name: "Wallet"}
	lookup := NewLookup([]*entity.Account{account, nil}, entity.DefaultCategories())

	if got := lookup.AccountName(account.ID); got != "Wallet" {
		t.Errorf("expected Wallet, got %s", got)
	}
	if got := lookup.AccountName(uuid.New()); got != UnknownName {
		t.Errorf("expected %s, got %s", UnknownName, got)
	}
	if got := lookup.CategoryName("cat7"); got != "Salary" {
		t.Errorf("expected Salary, got %s", got)
	}
	if _, ok := lookup.Category("nope"); ok {
		t.Error("expected unknown category")
	}
	if got := lookup.CategoryName("nope"); got != UnknownName {
		t.Errorf("expected %s, got %s", UnknownName, got)
	}
}
