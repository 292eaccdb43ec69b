// Package adapter defines the ports the use cases depend on. Implementations live in the
// integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no constraint".
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID string
	Type       entity.TransactionType
	From       *time.Time // inclusive
	To         *time.Time // exclusive
	Limit      int
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// FindByUser returns the user's accounts in creation order.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// FindByID returns one account of the user or ErrAccountNotFound.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Account, error)

	// Upsert creates the account or replaces the stored one with the same ID.
	Upsert(ctx context.Context, account *entity.Account) error

	// CreateMany stores several new accounts at once.
	CreateMany(ctx context.Context, accounts []*entity.Account) error

	// Delete removes the account. Transactions referencing it are left untouched.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	// FindByUser returns the user's transactions matching the filter, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindByID returns one transaction of the user or ErrTransactionNotFound.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error)

	// Upsert creates the transaction or replaces the stored one with the same ID.
	Upsert(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes the transaction.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryRepository exposes the category catalog of a user.
type CategoryRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Category, error)
	FindByID(ctx context.Context, userID uuid.UUID, id string) (*entity.Category, error)
}

// BudgetRepository stores the budget set of a user as a single unit.
type BudgetRepository interface {
	// FindByUser returns the user's budget set; a user without budgets gets an empty set.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.BudgetSet, error)

	// Replace overwrites the whole budget set of the user.
	Replace(ctx context.Context, set *entity.BudgetSet) error

	// Update loads the user's set, applies fn and stores the result atomically. Concurrent
	// updates of the same user are serialized. An error from fn leaves the stored set unchanged.
	Update(ctx context.Context, userID uuid.UUID, fn func(set *entity.BudgetSet) error) (*entity.BudgetSet, error)
}

// EntityStore is the persistence capability the application works against. The backend
// behind it (remote database or local file) is chosen once at startup.
type EntityStore interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Categories() CategoryRepository
	Budgets() BudgetRepository
}
