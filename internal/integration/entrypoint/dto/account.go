package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// SaveAccountRequest represents the request body for creating or updating an account.
type SaveAccountRequest struct {
	Name    string           `json:"name" binding:"required,min=1,max=100"`
	Balance *decimal.Decimal `json:"balance" binding:"required"`
	Type    string           `json:"type" binding:"required,oneof=savings payroll credit_card cash investment"`
	Color   string           `json:"color,omitempty" binding:"omitempty,hexcolor"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountListResponse represents the accounts of a user and their combined balance.
type AccountListResponse struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance string            `json:"total_balance"`
}

// ToAccountResponse converts a domain Account to its response DTO.
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Balance:   FormatAmount(a.Balance),
		Type:      string(a.Type),
		Color:     a.Color,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToAccountListResponse converts the accounts of a user.
func ToAccountListResponse(accounts []*entity.Account, total decimal.Decimal) AccountListResponse {
	out := AccountListResponse{
		Accounts:     make([]AccountResponse, 0, len(accounts)),
		TotalBalance: FormatAmount(total),
	}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, ToAccountResponse(a))
	}
	return out
}

// FormatAmount renders money with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
