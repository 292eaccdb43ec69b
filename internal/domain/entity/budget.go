// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending cap for one expense category.
type Budget struct {
	CategoryID string
	Amount     decimal.Decimal
}

// BudgetSet is the whole collection of budgets of a user. It is stored and replaced as a unit,
// individual budgets are addressed by category only.
type BudgetSet struct {
	UserID    uuid.UUID
	Budgets   []Budget
	UpdatedAt time.Time
}

// NewBudgetSet returns an empty budget set for the user.
func NewBudgetSet(userID uuid.UUID) *BudgetSet {
	return &BudgetSet{UserID: userID, Budgets: []Budget{}}
}

// Upsert sets the budget for its category, replacing any previous budget for the same category.
// A new category is appended so existing order is kept.
func (s *BudgetSet) Upsert(b Budget) {
	for i := range s.Budgets {
		if s.Budgets[i].CategoryID == b.CategoryID {
			s.Budgets[i].Amount = b.Amount
			return
		}
	}
	s.Budgets = append(s.Budgets, b)
}

// Remove deletes the budget of the category. It reports whether a budget was removed.
func (s *BudgetSet) Remove(categoryID string) bool {
	for i := range s.Budgets {
		if s.Budgets[i].CategoryID == categoryID {
			s.Budgets = append(s.Budgets[:i], s.Budgets[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the budget of the category, if any.
func (s *BudgetSet) Find(categoryID string) (Budget, bool) {
	for _, b := range s.Budgets {
		if b.CategoryID == categoryID {
			return b, true
		}
	}
	return Budget{}, false
}
