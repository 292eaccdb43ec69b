package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// BudgetItem is one budget inside the serialized budget set.
type BudgetItem struct {
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// BudgetSetModel represents the budget_sets table: one row per user holding every budget.
type BudgetSetModel struct {
	UserID    uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Budgets   []BudgetItem `gorm:"type:text;serializer:json;not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

// TableName returns the table name for the BudgetSetModel.
func (BudgetSetModel) TableName() string {
	return "budget_sets"
}

// ToEntity converts the row to a domain BudgetSet. Items without a category or with a negative
// amount are dropped, and a repeated category keeps its last value.
func (m *BudgetSetModel) ToEntity() *entity.BudgetSet {
	set := entity.NewBudgetSet(m.UserID)
	set.UpdatedAt = m.UpdatedAt
	for _, item := range m.Budgets {
		if item.CategoryID == "" || item.Amount.IsNegative() {
			continue
		}
		set.Upsert(entity.Budget{CategoryID: item.CategoryID, Amount: item.Amount})
	}
	return set
}

// BudgetSetFromEntity creates a BudgetSetModel from a domain BudgetSet entity.
func BudgetSetFromEntity(set *entity.BudgetSet) *BudgetSetModel {
	items := make([]BudgetItem, 0, len(set.Budgets))
	for _, b := range set.Budgets {
		items = append(items, BudgetItem{CategoryID: b.CategoryID, Amount: b.Amount})
	}
	return &BudgetSetModel{
		UserID:    set.UserID,
		Budgets:   items,
		UpdatedAt: set.UpdatedAt,
	}
}
