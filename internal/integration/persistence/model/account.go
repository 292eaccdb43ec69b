package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type      string          `gorm:"type:varchar(20);not null"`
	Color     string          `gorm:"type:varchar(7)"`
	CreatedAt time.Time       `gorm:"not null;index"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts the row to a domain Account, rejecting rows with an unknown type.
func (m *AccountModel) ToEntity() (*entity.Account, error) {
	accountType := entity.AccountType(m.Type)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("account %s: unknown type %q", m.ID, m.Type)
	}

	return &entity.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Balance:   m.Balance,
		Type:      accountType,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(a *entity.Account) *AccountModel {
	return &AccountModel{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Balance:   a.Balance,
		Type:      string(a.Type),
		Color:     a.Color,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
