package metrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

const (
	// DashboardWindowDays is the length of the rolling window used by the dashboard flow cards.
	DashboardWindowDays = 30

	// RecentActivityLimit is the number of transactions listed on the dashboard.
	RecentActivityLimit = 5

	// UnknownName is displayed for references to accounts or categories that no longer exist.
	UnknownName = "Unknown"
)

// Snapshot is the full set of collections of one user that the views are computed from.
// Callers pass empty slices, never a partially loaded snapshot.
type Snapshot struct {
	Accounts     []*entity.Account
	Transactions []*entity.Transaction
	Categories   []entity.Category
	Budgets      []entity.Budget
}

// BudgetTotals aggregates all budgets of the month.
type BudgetTotals struct {
	Budgeted    decimal.Decimal
	Spent       decimal.Decimal
	PercentUsed float64
}

// DashboardSummary is the data behind the dashboard view.
type DashboardSummary struct {
	TotalBalance       decimal.Decimal
	Window             Window
	RecentFlows        Flows
	ExpenseBreakdown   []CategoryTotal
	Budgets            BudgetTotals
	HasBudgets         bool
	RecentTransactions []*entity.Transaction
}

// BudgetBoard lists the status of every budget and the expense categories that have none.
type BudgetBoard struct {
	Lines      []BudgetLine
	Unbudgeted []entity.Category
}

// TrendReport is the income versus expense series of one year.
type TrendReport struct {
	Year   int
	Months []MonthlyFlow
	Totals Flows
}

// BuildDashboardSummary assembles the dashboard: rolling 30-day flows, all-time expense
// breakdown, month-to-date budget totals and the latest transactions.
func BuildDashboardSummary(s Snapshot, now time.Time) DashboardSummary {
	window := RollingWindow(now, DashboardWindowDays)

	var totals BudgetTotals
	for _, line := range BudgetStatus(s.Budgets, s.Transactions, s.Categories, now) {
		totals.Budgeted = totals.Budgeted.Add(line.Budgeted)
		totals.Spent = totals.Spent.Add(line.Spent)
	}
	totals.PercentUsed = percentOf(totals.Spent, totals.Budgeted)

	return DashboardSummary{
		TotalBalance:       TotalBalance(s.Accounts),
		Window:             window,
		RecentFlows:        WindowedFlows(s.Transactions, window),
		ExpenseBreakdown:   CategoryBreakdown(s.Transactions, s.Categories, entity.CategoryTypeExpense),
		Budgets:            totals,
		HasBudgets:         len(s.Budgets) > 0,
		RecentTransactions: RecentActivity(s.Transactions, RecentActivityLimit),
	}
}

// BuildBudgetBoard assembles the budgets view.
func BuildBudgetBoard(s Snapshot, now time.Time) BudgetBoard {
	budgeted := make(map[string]struct{}, len(s.Budgets))
	for _, b := range s.Budgets {
		budgeted[b.CategoryID] = struct{}{}
	}

	unbudgeted := make([]entity.Category, 0)
	for _, c := range s.Categories {
		if c.Type != entity.CategoryTypeExpense {
			continue
		}
		if _, ok := budgeted[c.ID]; !ok {
			unbudgeted = append(unbudgeted, c)
		}
	}

	return BudgetBoard{
		Lines:      BudgetStatus(s.Budgets, s.Transactions, s.Categories, now),
		Unbudgeted: unbudgeted,
	}
}

// BuildTrendReport assembles the monthly income and expense series of now's year.
func BuildTrendReport(s Snapshot, now time.Time) TrendReport {
	year := now.Year()
	return TrendReport{
		Year:   year,
		Months: MonthlySeries(s.Transactions, year, now.Location()),
		Totals: WindowedFlows(s.Transactions, CalendarYear(year, now.Location())),
	}
}

// Lookup resolves account and category references for display.
type Lookup struct {
	accounts   map[uuid.UUID]*entity.Account
	categories map[string]entity.Category
}

// NewLookup indexes the accounts and categories of a snapshot.
func NewLookup(accounts []*entity.Account, categories []entity.Category) *Lookup {
	l := &Lookup{
		accounts:   make(map[uuid.UUID]*entity.Account, len(accounts)),
		categories: make(map[string]entity.Category, len(categories)),
	}
	for _, a := range accounts {
		if a != nil {
			l.accounts[a.ID] = a
		}
	}
	for _, c := range categories {
		l.categories[c.ID] = c
	}
	return l
}

// AccountName returns the account's name or UnknownName.
func (l *Lookup) AccountName(id uuid.UUID) string {
	if a, ok := l.accounts[id]; ok {
		return a.Name
	}
	return UnknownName
}

// Category returns the category and whether it exists.
func (l *Lookup) Category(id string) (entity.Category, bool) {
	c, ok := l.categories[id]
	return c, ok
}

// CategoryName returns the category's name or UnknownName.
func (l *Lookup) CategoryName(id string) string {
	if c, ok := l.categories[id]; ok {
		return c.Name
	}
	return UnknownName
}
