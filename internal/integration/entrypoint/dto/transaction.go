package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// DateLayout is the calendar-date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for dates that are neither YYYY-MM-DD nor RFC 3339.
var ErrInvalidDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

// ParseDate parses a calendar date (midnight in loc) or a full RFC 3339 timestamp.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// SaveTransactionRequest represents the request body for creating or updating a transaction.
// Type may be omitted and is then taken from the category.
type SaveTransactionRequest struct {
	AccountID  string           `json:"account_id" binding:"required,uuid"`
	CategoryID string           `json:"category_id" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Type       string           `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Date       string           `json:"date" binding:"required"`
	Note       string           `json:"note,omitempty"`
}

// ListTransactionsQuery represents the query parameters of the transactions listing.
type ListTransactionsQuery struct {
	AccountID  string `form:"account_id" binding:"omitempty,uuid"`
	CategoryID string `form:"category_id"`
	Type       string `form:"type" binding:"omitempty,oneof=expense income"`
	From       string `form:"from"`
	To         string `form:"to"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           string                       `json:"id"`
	AccountID    string                       `json:"account_id"`
	AccountName  string                       `json:"account_name"`
	CategoryID   string                       `json:"category_id"`
	CategoryName string                       `json:"category_name"`
	Category     *TransactionCategoryResponse `json:"category,omitempty"`
	Amount       string                       `json:"amount"`
	Type         string                       `json:"type"`
	Date         time.Time                    `json:"date"`
	Note         string                       `json:"note"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// TransactionListResponse represents the transactions listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a resolved transaction to its response DTO.
func ToTransactionResponse(out *transaction.TransactionOutput) TransactionResponse {
	t := out.Transaction
	resp := TransactionResponse{
		ID:           t.ID.String(),
		AccountID:    t.AccountID.String(),
		AccountName:  out.AccountName,
		CategoryID:   t.CategoryID,
		CategoryName: out.CategoryName,
		Amount:       FormatAmount(t.Amount),
		Type:         string(t.Type),
		Date:         t.Date,
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if out.Category != nil {
		resp.Category = toTransactionCategory(*out.Category)
	}
	return resp
}

func toTransactionCategory(c entity.Category) *TransactionCategoryResponse {
	return &TransactionCategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Color: c.Color,
		Icon:  c.Icon,
		Type:  string(c.Type),
	}
}

// ToTransactionListResponse converts the listing output.
func ToTransactionListResponse(out *transaction.ListTransactionsOutput) TransactionListResponse {
	resp := TransactionListResponse{Transactions: make([]TransactionResponse, 0, len(out.Transactions))}
	for _, t := range out.Transactions {
		resp.Transactions = append(resp.Transactions, ToTransactionResponse(t))
	}
	return resp
}
