package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

func TestTransactionRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	accountID := uuid.New()
	day := func(d int) time.Time { return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC) }

	salary := entity.NewTransaction(userID, accountID, "cat7", decimal.NewFromInt(45000), entity.TransactionTypeIncome, day(1), "March salary")
	lunch := entity.NewTransaction(userID, accountID, "cat1", decimal.RequireFromString("150.25"), entity.TransactionTypeExpense, day(3), "")
	rent := entity.NewTransaction(userID, uuid.New(), "cat5", decimal.NewFromInt(12000), entity.TransactionTypeExpense, day(5), "rent")
	foreign := entity.NewTransaction(uuid.New(), accountID, "cat1", decimal.NewFromInt(1), entity.TransactionTypeExpense, day(2), "")

	for _, tx := range []*entity.Transaction{salary, lunch, rent, foreign} {
		if err := repo.Upsert(ctx, tx); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	t.Run("newest first and scoped to the user", func(t *testing.T) {
		got, err := repo.FindByUser(ctx, userID, adapter.TransactionFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(got))
		}
		if got[0].ID != rent.ID || got[2].ID != salary.ID {
			t.Errorf("unexpected order: %s, %s, %s", got[0].Note, got[1].Note, got[2].Note)
		}
		if !got[1].Amount.Equal(decimal.RequireFromString("150.25")) {
			t.Errorf("amount not preserved: %s", got[1].Amount)
		}
		if !got[0].Date.Equal(day(5)) {
			t.Errorf("date not preserved: %s", got[0].Date)
		}
	})

	tests := []struct {
		name   string
		filter adapter.TransactionFilter
		want   int
	}{
		{name: "by account", filter: adapter.TransactionFilter{AccountID: &accountID}, want: 2},
		{name: "by category", filter: adapter.TransactionFilter{CategoryID: "cat5"}, want: 1},
		{name: "by type", filter: adapter.TransactionFilter{Type: entity.TransactionTypeExpense}, want: 2},
		{name: "by date range", filter: adapter.TransactionFilter{From: ptrTime(day(2)), To: ptrTime(day(5))}, want: 1},
		{name: "limit", filter: adapter.TransactionFilter{Limit: 1}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByUser(ctx, userID, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d transactions, got %d", tt.want, len(got))
			}
		})
	}

	t.Run("Upsert replaces by ID", func(t *testing.T) {
		lunch.Amount = decimal.NewFromInt(99)
		lunch.Note = "team lunch"
		if err := repo.Upsert(ctx, lunch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := repo.FindByID(ctx, userID, lunch.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Note != "team lunch" || !got.Amount.Equal(decimal.NewFromInt(99)) {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("malformed rows never reach callers", func(t *testing.T) {
		bad := &model.TransactionModel{
			ID: uuid.New(), UserID: userID, AccountID: accountID, CategoryID: "cat1",
			Amount: decimal.NewFromInt(-5), Type: "expense", Date: day(4),
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}
		if err := db.Create(bad).Error; err != nil {
			t.Fatalf("failed to insert raw row: %v", err)
		}

		got, _ := repo.FindByUser(ctx, userID, adapter.TransactionFilter{})
		for _, tx := range got {
			if tx.ID == bad.ID {
				t.Error("malformed transaction leaked through")
			}
		}
		if _, err := repo.FindByID(ctx, userID, bad.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, userID, salary.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Delete(ctx, userID, salary.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
		}
	})
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
