package persistence

import (
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// Store is the gorm-backed adapter.EntityStore. The same code serves the Postgres backend and
// the local SQLite fallback; only the dialector behind db differs.
type Store struct {
	accounts     adapter.AccountRepository
	transactions adapter.TransactionRepository
	categories   adapter.CategoryRepository
	budgets      adapter.BudgetRepository
}

// NewStore wires every entity repository over one connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		accounts:     NewAccountRepository(db),
		transactions: NewTransactionRepository(db),
		categories:   NewCategoryCatalog(),
		budgets:      NewBudgetRepository(db),
	}
}

func (s *Store) Accounts() adapter.AccountRepository         { return s.accounts }
func (s *Store) Transactions() adapter.TransactionRepository { return s.transactions }
func (s *Store) Categories() adapter.CategoryRepository      { return s.categories }
func (s *Store) Budgets() adapter.BudgetRepository           { return s.budgets }

var _ adapter.EntityStore = (*Store)(nil)
