package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// account_id and category_id carry no foreign key: the referenced account may be deleted.
type TransactionModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1"`
	AccountID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID string          `gorm:"type:varchar(36);not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type       string          `gorm:"type:varchar(10);not null"`
	Date       time.Time       `gorm:"not null;index:idx_transactions_user_date,priority:2"`
	Note       string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts the row to a domain Transaction. Rows with an unknown type, a negative
// amount or a missing date are rejected so they never reach the metrics.
func (m *TransactionModel) ToEntity() (*entity.Transaction, error) {
	t := &entity.Transaction{
		ID:         m.ID,
		UserID:     m.UserID,
		AccountID:  m.AccountID,
		CategoryID: m.CategoryID,
		Amount:     m.Amount,
		Type:       entity.TransactionType(m.Type),
		Date:       m.Date.UTC(),
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if !t.IsWellFormed() {
		return nil, fmt.Errorf("transaction %s: malformed row (type %q, amount %s, date %s)", m.ID, m.Type, m.Amount, m.Date)
	}
	return t, nil
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:         t.ID,
		UserID:     t.UserID,
		AccountID:  t.AccountID,
		CategoryID: t.CategoryID,
		Amount:     t.Amount,
		Type:       string(t.Type),
		Date:       t.Date.UTC(),
		Note:       t.Note,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
