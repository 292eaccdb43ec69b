// Package metrics derives financial figures (balances, flows, category breakdowns, budget
// consumption, monthly series) from already-loaded entity collections.
//
// Every function is pure: no I/O, no clock reads, no shared state. The caller supplies "now".
// Empty collections yield zero values, and transactions pointing at unknown accounts or
// categories still count in sums.
package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Flows holds the income and expense sums of a set of transactions.
type Flows struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense.
func (f Flows) Net() decimal.Decimal {
	return f.Income.Sub(f.Expense)
}

func (f *Flows) add(t *entity.Transaction) {
	switch t.Type {
	case entity.TransactionTypeIncome:
		f.Income = f.Income.Add(t.Amount)
	case entity.TransactionTypeExpense:
		f.Expense = f.Expense.Add(t.Amount)
	}
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category entity.Category
	Total    decimal.Decimal
}

// BudgetLine is the consumption status of one budget for the current calendar month.
type BudgetLine struct {
	CategoryID    string
	Category      entity.Category
	CategoryKnown bool
	Budgeted      decimal.Decimal
	Spent         decimal.Decimal
	Remaining     decimal.Decimal
	PercentUsed   float64
}

// Overspent reports whether spending exceeded the budget.
func (l BudgetLine) Overspent() bool {
	return l.Remaining.IsNegative()
}

// MonthlyFlow holds the flows of one calendar month.
type MonthlyFlow struct {
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// TotalBalance sums the balances of all accounts.
func TotalBalance(accounts []*entity.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a == nil {
			continue
		}
		total = total.Add(a.Balance)
	}
	return total
}

// WindowedFlows sums income and expense of the transactions dated inside the window.
func WindowedFlows(transactions []*entity.Transaction, window Window) Flows {
	var flows Flows
	for _, t := range transactions {
		if t == nil || !window.Contains(t.Date) {
			continue
		}
		flows.add(t)
	}
	return flows
}

// TotalFlows sums income and expense over every transaction regardless of date.
func TotalFlows(transactions []*entity.Transaction) Flows {
	var flows Flows
	for _, t := range transactions {
		if t == nil {
			continue
		}
		flows.add(t)
	}
	return flows
}

// CategoryBreakdown sums transaction amounts per category of the given type.
// Only categories with a positive total are returned, largest first; equal totals keep the
// order of the categories slice.
func CategoryBreakdown(transactions []*entity.Transaction, categories []entity.Category, categoryType entity.CategoryType) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t == nil {
			continue
		}
		sums[t.CategoryID] = sums[t.CategoryID].Add(t.Amount)
	}

	result := make([]CategoryTotal, 0)
	for _, c := range categories {
		if c.Type != categoryType {
			continue
		}
		total := sums[c.ID]
		if !total.IsPositive() {
			continue
		}
		result = append(result, CategoryTotal{Category: c, Total: total})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})

	return result
}

// BudgetStatus computes, for each budget, how much of it was spent in now's calendar month up
// to now. A negative Remaining means the budget is overspent.
func BudgetStatus(budgets []entity.Budget, transactions []*entity.Transaction, categories []entity.Category, now time.Time) []BudgetLine {
	window := MonthToDate(now)

	spent := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t == nil || t.Type != entity.TransactionTypeExpense || !window.Contains(t.Date) {
			continue
		}
		spent[t.CategoryID] = spent[t.CategoryID].Add(t.Amount)
	}

	lines := make([]BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		category, known := entity.FindCategory(categories, b.CategoryID)
		s := spent[b.CategoryID]
		lines = append(lines, BudgetLine{
			CategoryID:    b.CategoryID,
			Category:      category,
			CategoryKnown: known,
			Budgeted:      b.Amount,
			Spent:         s,
			Remaining:     b.Amount.Sub(s),
			PercentUsed:   percentOf(s, b.Amount),
		})
	}
	return lines
}

// MonthlySeries returns twelve entries, January to December, with the flows of each month of
// the given year. Transaction dates are read in loc.
func MonthlySeries(transactions []*entity.Transaction, year int, loc *time.Location) []MonthlyFlow {
	series := make([]MonthlyFlow, 12)
	for i := range series {
		series[i].Month = time.Month(i + 1)
	}

	for _, t := range transactions {
		if t == nil {
			continue
		}
		d := t.Date.In(loc)
		if d.Year() != year {
			continue
		}
		m := &series[d.Month()-1]
		switch t.Type {
		case entity.TransactionTypeIncome:
			m.Income = m.Income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			m.Expense = m.Expense.Add(t.Amount)
		}
	}
	return series
}

// RecentActivity returns up to limit transactions, newest first. Transactions with the same
// date keep their input order.
func RecentActivity(transactions []*entity.Transaction, limit int) []*entity.Transaction {
	if limit <= 0 {
		return []*entity.Transaction{}
	}

	sorted := make([]*entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t != nil {
			sorted = append(sorted, t)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).InexactFloat64()
}
