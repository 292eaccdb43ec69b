package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

func TestAccountRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherUser := uuid.New()

	defaults := entity.DefaultAccounts(userID)
	defaults[1].CreatedAt = defaults[0].CreatedAt.Add(time.Second)
	if err := repo.CreateMany(ctx, defaults); err != nil {
		t.Fatalf("CreateMany failed: %v", err)
	}

	t.Run("FindByUser returns accounts in creation order", func(t *testing.T) {
		accounts, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 2 {
			t.Fatalf("expected 2 accounts, got %d", len(accounts))
		}
		if accounts[0].Type != entity.AccountTypeSavings || !accounts[0].Balance.Equal(decimal.NewFromInt(125000)) {
			t.Errorf("unexpected first account: %+v", accounts[0])
		}
	})

	t.Run("Upsert updates an existing account", func(t *testing.T) {
		account := defaults[0]
		account.Balance = decimal.RequireFromString("99.5")
		account.Name = "Rainy day"
		if err := repo.Upsert(ctx, account); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.FindByID(ctx, userID, account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "Rainy day" || !got.Balance.Equal(decimal.RequireFromString("99.5")) {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("Upsert inserts a new account", func(t *testing.T) {
		cash := entity.NewAccount(userID, "Wallet", decimal.NewFromInt(20), entity.AccountTypeCash, "#10B981")
		cash.CreatedAt = defaults[1].CreatedAt.Add(time.Second)
		if err := repo.Upsert(ctx, cash); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		accounts, _ := repo.FindByUser(ctx, userID)
		if len(accounts) != 3 || accounts[2].ID != cash.ID {
			t.Errorf("expected new account last, got %d accounts", len(accounts))
		}
	})

	t.Run("accounts are scoped to their user", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, otherUser, defaults[0].ID); !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
		if err := repo.Delete(ctx, otherUser, defaults[0].ID); !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("malformed rows are skipped", func(t *testing.T) {
		bad := &model.AccountModel{
			ID: uuid.New(), UserID: userID, Name: "Broken", Balance: decimal.Zero,
			Type: "crypto", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}
		if err := db.Create(bad).Error; err != nil {
			t.Fatalf("failed to insert raw row: %v", err)
		}

		accounts, err := repo.FindByUser(ctx, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, a := range accounts {
			if a.ID == bad.ID {
				t.Error("malformed account leaked through")
			}
		}
	})

	t.Run("Delete removes the account", func(t *testing.T) {
		if err := repo.Delete(ctx, userID, defaults[1].ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByID(ctx, userID, defaults[1].ID); !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound after delete, got %v", err)
		}
	})
}
