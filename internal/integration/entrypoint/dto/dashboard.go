package dto

import (
	"time"

	"github.com/pocketledger/backend/internal/application/usecase/dashboard"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// TrendsQuery represents the query parameters of the trend report.
type TrendsQuery struct {
	Year int `form:"year"`
}

// FlowsResponse represents income, expense and net of a period.
type FlowsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// CategoryTotalResponse represents one line of the expense breakdown.
type CategoryTotalResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	Total      string `json:"total"`
}

// BudgetTotalsResponse represents the combined status of every budget.
type BudgetTotalsResponse struct {
	Budgeted    string  `json:"budgeted"`
	Spent       string  `json:"spent"`
	PercentUsed float64 `json:"percent_used"`
}

// RecentTransactionResponse represents one row of the recent activity list.
type RecentTransactionResponse struct {
	ID           string    `json:"id"`
	AccountName  string    `json:"account_name"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Amount       string    `json:"amount"`
	Type         string    `json:"type"`
	Date         time.Time `json:"date"`
	Note         string    `json:"note"`
}

// DashboardSummaryResponse represents the dashboard summary.
type DashboardSummaryResponse struct {
	TotalBalance       string                      `json:"total_balance"`
	WindowStart        time.Time                   `json:"window_start"`
	WindowEnd          time.Time                   `json:"window_end"`
	RecentFlows        FlowsResponse               `json:"recent_flows"`
	ExpenseBreakdown   []CategoryTotalResponse     `json:"expense_breakdown"`
	Budgets            *BudgetTotalsResponse       `json:"budgets"`
	RecentTransactions []RecentTransactionResponse `json:"recent_transactions"`
}

// MonthlyFlowResponse represents the flows of one month.
type MonthlyFlowResponse struct {
	Month   int    `json:"month"`
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// TrendReportResponse represents the monthly series of one year.
type TrendReportResponse struct {
	Year   int                   `json:"year"`
	Months []MonthlyFlowResponse `json:"months"`
	Totals FlowsResponse         `json:"totals"`
}

// ToFlowsResponse converts period flows.
func ToFlowsResponse(f metrics.Flows) FlowsResponse {
	return FlowsResponse{
		Income:  FormatAmount(f.Income),
		Expense: FormatAmount(f.Expense),
		Net:     FormatAmount(f.Net()),
	}
}

// ToDashboardSummaryResponse converts the dashboard summary. Budgets is null when the user has none.
func ToDashboardSummaryResponse(s metrics.DashboardSummary, lookup *metrics.Lookup) DashboardSummaryResponse {
	out := DashboardSummaryResponse{
		TotalBalance:       FormatAmount(s.TotalBalance),
		WindowStart:        s.Window.Start,
		WindowEnd:          s.Window.End,
		RecentFlows:        ToFlowsResponse(s.RecentFlows),
		ExpenseBreakdown:   make([]CategoryTotalResponse, 0, len(s.ExpenseBreakdown)),
		RecentTransactions: make([]RecentTransactionResponse, 0, len(s.RecentTransactions)),
	}

	for _, c := range s.ExpenseBreakdown {
		out.ExpenseBreakdown = append(out.ExpenseBreakdown, CategoryTotalResponse{
			CategoryID: c.Category.ID,
			Name:       c.Category.Name,
			Color:      c.Category.Color,
			Icon:       c.Category.Icon,
			Total:      FormatAmount(c.Total),
		})
	}

	if s.HasBudgets {
		out.Budgets = &BudgetTotalsResponse{
			Budgeted:    FormatAmount(s.Budgets.Budgeted),
			Spent:       FormatAmount(s.Budgets.Spent),
			PercentUsed: s.Budgets.PercentUsed,
		}
	}

	for _, t := range s.RecentTransactions {
		out.RecentTransactions = append(out.RecentTransactions, RecentTransactionResponse{
			ID:           t.ID.String(),
			AccountName:  lookup.AccountName(t.AccountID),
			CategoryID:   t.CategoryID,
			CategoryName: lookup.CategoryName(t.CategoryID),
			Amount:       FormatAmount(t.Amount),
			Type:         string(t.Type),
			Date:         t.Date,
			Note:         t.Note,
		})
	}

	return out
}

// ToTrendReportResponse converts the trend report.
func ToTrendReportResponse(r metrics.TrendReport) TrendReportResponse {
	out := TrendReportResponse{
		Year:   r.Year,
		Months: make([]MonthlyFlowResponse, 0, len(r.Months)),
		Totals: ToFlowsResponse(r.Totals),
	}
	for _, m := range r.Months {
		out.Months = append(out.Months, MonthlyFlowResponse{
			Month:   int(m.Month),
			Label:   dashboard.MonthLabel(m.Month, r.Year),
			Income:  FormatAmount(m.Income),
			Expense: FormatAmount(m.Expense),
			Net:     FormatAmount(m.Income.Sub(m.Expense)),
		})
	}
	return out
}
