package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// SetBudgetRequest represents the request body for setting the budget of a category.
type SetBudgetRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// BudgetResponse represents a stored budget.
type BudgetResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Amount       string `json:"amount"`
}

// BudgetListResponse represents the stored budgets of a user.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetLineResponse represents the month-to-date status of one budget.
type BudgetLineResponse struct {
	CategoryID   string                       `json:"category_id"`
	CategoryName string                       `json:"category_name"`
	Category     *TransactionCategoryResponse `json:"category,omitempty"`
	Budgeted     string                       `json:"budgeted"`
	Spent        string                       `json:"spent"`
	Remaining    string                       `json:"remaining"`
	PercentUsed  float64                      `json:"percent_used"`
	Overspent    bool                         `json:"overspent"`
}

// BudgetBoardResponse represents the budgets view.
type BudgetBoardResponse struct {
	PeriodStart string               `json:"period_start"`
	PeriodEnd   string               `json:"period_end"`
	Budgets     []BudgetLineResponse `json:"budgets"`
	Unbudgeted  []CategoryResponse   `json:"unbudgeted_categories"`
}

// ToBudgetListResponse converts stored budgets, naming their categories.
func ToBudgetListResponse(budgets []entity.Budget, categories []entity.Category) BudgetListResponse {
	lookup := metrics.NewLookup(nil, categories)
	out := BudgetListResponse{Budgets: make([]BudgetResponse, 0, len(budgets))}
	for _, b := range budgets {
		out.Budgets = append(out.Budgets, BudgetResponse{
			CategoryID:   b.CategoryID,
			CategoryName: lookup.CategoryName(b.CategoryID),
			Amount:       FormatAmount(b.Amount),
		})
	}
	return out
}

// ToBudgetLineResponse converts one budget status line.
func ToBudgetLineResponse(line metrics.BudgetLine) BudgetLineResponse {
	resp := BudgetLineResponse{
		CategoryID:   line.CategoryID,
		CategoryName: metrics.UnknownName,
		Budgeted:     FormatAmount(line.Budgeted),
		Spent:        FormatAmount(line.Spent),
		Remaining:    FormatAmount(line.Remaining),
		PercentUsed:  line.PercentUsed,
		Overspent:    line.Overspent(),
	}
	if line.CategoryKnown {
		resp.CategoryName = line.Category.Name
		resp.Category = toTransactionCategory(line.Category)
	}
	return resp
}

// ToBudgetBoardResponse converts the budgets view.
func ToBudgetBoardResponse(board metrics.BudgetBoard, window metrics.Window) BudgetBoardResponse {
	out := BudgetBoardResponse{
		PeriodStart: window.Start.Format(DateLayout),
		PeriodEnd:   window.End.Format(DateLayout),
		Budgets:     make([]BudgetLineResponse, 0, len(board.Lines)),
		Unbudgeted:  make([]CategoryResponse, 0, len(board.Unbudgeted)),
	}
	for _, line := range board.Lines {
		out.Budgets = append(out.Budgets, ToBudgetLineResponse(line))
	}
	for _, c := range board.Unbudgeted {
		out.Unbudgeted = append(out.Unbudgeted, ToCategoryResponse(c))
	}
	return out
}
