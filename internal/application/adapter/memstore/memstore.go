// Package memstore is an in-memory adapter.EntityStore for use case and controller tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// Store keeps every collection in maps guarded by one mutex.
// Setting Err makes every read and write fail with it.
type Store struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]*entity.Account
	transactions map[uuid.UUID]*entity.Transaction
	budgets      map[uuid.UUID]*entity.BudgetSet
	Err          error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		accounts:     map[uuid.UUID]*entity.Account{},
		transactions: map[uuid.UUID]*entity.Transaction{},
		budgets:      map[uuid.UUID]*entity.BudgetSet{},
	}
}

var _ adapter.EntityStore = (*Store)(nil)

func (s *Store) Accounts() adapter.AccountRepository         { return accounts{s} }
func (s *Store) Transactions() adapter.TransactionRepository { return transactions{s} }
func (s *Store) Categories() adapter.CategoryRepository      { return categories{s} }
func (s *Store) Budgets() adapter.BudgetRepository           { return budgets{s} }

// AddAccounts stores accounts directly.
func (s *Store) AddAccounts(list ...*entity.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range list {
		cp := *a
		s.accounts[a.ID] = &cp
	}
}

// AddTransactions stores transactions directly.
func (s *Store) AddTransactions(list ...*entity.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range list {
		cp := *t
		s.transactions[t.ID] = &cp
	}
}

// SetBudgets replaces the budget set of the user.
func (s *Store) SetBudgets(userID uuid.UUID, list ...entity.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := entity.NewBudgetSet(userID)
	for _, b := range list {
		set.Upsert(b)
	}
	s.budgets[userID] = set
}

type accounts struct{ s *Store }

func (r accounts) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*entity.Account, 0)
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r accounts) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	a, ok := r.s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, domainerror.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r accounts) Upsert(_ context.Context, account *entity.Account) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.AddAccounts(account)
	return nil
}

func (r accounts) CreateMany(_ context.Context, list []*entity.Account) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.AddAccounts(list...)
	return nil
}

func (r accounts) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	a, ok := r.s.accounts[id]
	if !ok || a.UserID != userID {
		return domainerror.ErrAccountNotFound
	}
	delete(r.s.accounts, id)
	return nil
}

type transactions struct{ s *Store }

func (r transactions) FindByUser(_ context.Context, userID uuid.UUID, f adapter.TransactionFilter) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*entity.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.UserID != userID {
			continue
		}
		if f.AccountID != nil && t.AccountID != *f.AccountID {
			continue
		}
		if f.CategoryID != "" && t.CategoryID != f.CategoryID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.From != nil && t.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !t.Date.Before(*f.To) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r transactions) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, domainerror.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (r transactions) Upsert(_ context.Context, t *entity.Transaction) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.AddTransactions(t)
	return nil
}

func (r transactions) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

type categories struct{ s *Store }

func (r categories) FindByUser(_ context.Context, _ uuid.UUID) ([]entity.Category, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return entity.DefaultCategories(), nil
}

func (r categories) FindByID(_ context.Context, _ uuid.UUID, id string) (*entity.Category, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, ok := entity.FindCategory(entity.DefaultCategories(), id)
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return &c, nil
}

type budgets struct{ s *Store }

func (r budgets) FindByUser(_ context.Context, userID uuid.UUID) (*entity.BudgetSet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	set, ok := r.s.budgets[userID]
	if !ok {
		return entity.NewBudgetSet(userID), nil
	}
	cp := *set
	cp.Budgets = append([]entity.Budget{}, set.Budgets...)
	return &cp, nil
}

func (r budgets) Replace(_ context.Context, set *entity.BudgetSet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cp := *set
	cp.Budgets = append([]entity.Budget{}, set.Budgets...)
	r.s.budgets[set.UserID] = &cp
	return nil
}

func (r budgets) Update(_ context.Context, userID uuid.UUID, fn func(set *entity.BudgetSet) error) (*entity.BudgetSet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	set := entity.NewBudgetSet(userID)
	if stored, ok := r.s.budgets[userID]; ok {
		cp := *stored
		cp.Budgets = append([]entity.Budget{}, stored.Budgets...)
		set = &cp
	}
	if err := fn(set); err != nil {
		return nil, err
	}
	cp := *set
	cp.Budgets = append([]entity.Budget{}, set.Budgets...)
	r.s.budgets[userID] = &cp
	return set, nil
}
