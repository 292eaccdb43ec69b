package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/adapter/memstore"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

var txDate = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var testClock = fixedClock(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))

func setup(t *testing.T) (*memstore.Store, uuid.UUID, *entity.Account) {
	t.Helper()
	store := memstore.New()
	userID := uuid.New()
	accounts := entity.DefaultAccounts(userID)
	store.AddAccounts(accounts...)
	return store, userID, accounts[0]
}

func TestSaveTransactionUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("derives type from category", func(t *testing.T) {
		store, userID, account := setup(t)
		out, err := NewSaveTransactionUseCase(store, testClock).Execute(ctx, SaveTransactionInput{
			UserID:     userID,
			AccountID:  account.ID,
			CategoryID: "cat7",
			Amount:     decimal.NewFromInt(5000),
			Date:       txDate,
			Note:       "  March salary ",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := out.Transaction.Transaction
		if got.Type != entity.TransactionTypeIncome {
			t.Errorf("expected income, got %s", got.Type)
		}
		if got.Note != "March salary" {
			t.Errorf("expected trimmed note, got %q", got.Note)
		}
		if !got.CreatedAt.Equal(time.Time(testClock)) || !got.UpdatedAt.Equal(time.Time(testClock)) {
			t.Errorf("expected timestamps from the clock, got %s / %s", got.CreatedAt, got.UpdatedAt)
		}
		if out.Transaction.AccountName != account.Name || out.Transaction.CategoryName != "Salary" {
			t.Errorf("unexpected names %q / %q", out.Transaction.AccountName, out.Transaction.CategoryName)
		}
	})

	t.Run("update replaces fields", func(t *testing.T) {
		store, userID, account := setup(t)
		existing := entity.NewTransaction(userID, account.ID, "cat1", decimal.NewFromInt(10), entity.TransactionTypeExpense, txDate, "")
		store.AddTransactions(existing)

		out, err := NewSaveTransactionUseCase(store, testClock).Execute(ctx, SaveTransactionInput{
			UserID:        userID,
			TransactionID: &existing.ID,
			AccountID:     account.ID,
			CategoryID:    "cat2",
			Amount:        decimal.NewFromInt(25),
			Type:          entity.TransactionTypeExpense,
			Date:          txDate.AddDate(0, 0, 1),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Created || out.Transaction.Transaction.ID != existing.ID {
			t.Error("expected the existing transaction to be updated")
		}
		stored, _ := store.Transactions().FindByID(ctx, userID, existing.ID)
		if stored.CategoryID != "cat2" || !stored.Amount.Equal(decimal.NewFromInt(25)) {
			t.Errorf("unexpected stored transaction %+v", stored)
		}
		if !stored.UpdatedAt.Equal(time.Time(testClock)) {
			t.Errorf("expected UpdatedAt %s, got %s", time.Time(testClock), stored.UpdatedAt)
		}
	})

	missing := uuid.New()
	tests := []struct {
		name    string
		mutate  func(in *SaveTransactionInput)
		wantErr error
	}{
		{"negative amount", func(in *SaveTransactionInput) { in.Amount = decimal.NewFromInt(-1) }, domainerror.ErrInvalidTransactionAmount},
		{"zero date", func(in *SaveTransactionInput) { in.Date = time.Time{} }, domainerror.ErrInvalidTransactionDate},
		{"long note", func(in *SaveTransactionInput) { in.Note = strings.Repeat("é", MaxNoteLength+1) }, domainerror.ErrNoteTooLong},
		{"unknown category", func(in *SaveTransactionInput) { in.CategoryID = "cat99" }, domainerror.ErrCategoryNotFound},
		{"invalid type", func(in *SaveTransactionInput) { in.Type = "transfer" }, domainerror.ErrInvalidTransactionType},
		{"type mismatch", func(in *SaveTransactionInput) { in.Type = entity.TransactionTypeIncome }, domainerror.ErrTransactionTypeMismatch},
		{"unknown account", func(in *SaveTransactionInput) { in.AccountID = uuid.New() }, domainerror.ErrAccountNotFound},
		{"unknown transaction", func(in *SaveTransactionInput) { in.TransactionID = &missing }, domainerror.ErrTransactionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, userID, account := setup(t)
			input := SaveTransactionInput{
				UserID:     userID,
				AccountID:  account.ID,
				CategoryID: "cat1",
				Amount:     decimal.NewFromInt(10),
				Date:       txDate,
			}
			tt.mutate(&input)

			_, err := NewSaveTransactionUseCase(store, testClock).Execute(ctx, input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("mismatch carries its code", func(t *testing.T) {
		store, userID, account := setup(t)
		_, err := NewSaveTransactionUseCase(store, testClock).Execute(ctx, SaveTransactionInput{
			UserID: userID, AccountID: account.ID, CategoryID: "cat8",
			Amount: decimal.NewFromInt(1), Type: entity.TransactionTypeExpense, Date: txDate,
		})
		var trxErr *domainerror.TransactionError
		if !errors.As(err, &trxErr) || trxErr.Code != domainerror.ErrCodeTransactionTypeMismatch {
			t.Errorf("expected %s, got %v", domainerror.ErrCodeTransactionTypeMismatch, err)
		}
	})
}

func TestListTransactionsUseCase(t *testing.T) {
	ctx := context.Background()
	store, userID, account := setup(t)
	orphan := uuid.New()
	store.AddTransactions(
		entity.NewTransaction(userID, account.ID, "cat1", decimal.NewFromInt(10), entity.TransactionTypeExpense, txDate, ""),
		entity.NewTransaction(userID, orphan, "gone", decimal.NewFromInt(20), entity.TransactionTypeExpense, txDate.AddDate(0, 0, 2), ""),
		entity.NewTransaction(userID, account.ID, "cat7", decimal.NewFromInt(30), entity.TransactionTypeIncome, txDate.AddDate(0, 0, 1), ""),
		entity.NewTransaction(uuid.New(), account.ID, "cat1", decimal.NewFromInt(40), entity.TransactionTypeExpense, txDate, ""),
	)
	uc := NewListTransactionsUseCase(store)

	t.Run("newest first with unknown references", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListTransactionsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(out.Transactions))
		}
		first := out.Transactions[0]
		if first.AccountName != "Unknown" || first.CategoryName != "Unknown" || first.Category != nil {
			t.Errorf("expected unknown references, got %+v", first)
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListTransactionsInput{
			UserID: userID,
			Filter: adapter.TransactionFilter{Type: entity.TransactionTypeIncome},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 1 || out.Transactions[0].CategoryName != "Salary" {
			t.Errorf("unexpected result %+v", out.Transactions)
		}
	})
}

func TestDeleteTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	store, userID, account := setup(t)
	tx := entity.NewTransaction(userID, account.ID, "cat1", decimal.NewFromInt(10), entity.TransactionTypeExpense, txDate, "")
	store.AddTransactions(tx)
	uc := NewDeleteTransactionUseCase(store.Transactions())

	if err := uc.Execute(ctx, DeleteTransactionInput{UserID: userID, TransactionID: tx.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := uc.Execute(ctx, DeleteTransactionInput{UserID: userID, TransactionID: tx.ID})
	var trxErr *domainerror.TransactionError
	if !errors.As(err, &trxErr) || trxErr.Code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
