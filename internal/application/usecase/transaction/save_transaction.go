package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// MaxNoteLength is the maximum allowed length for transaction notes, in characters.
const MaxNoteLength = 500

// SaveTransactionInput represents the input for creating or updating a transaction.
// A nil TransactionID creates a new transaction; an empty Type is taken from the category.
type SaveTransactionInput struct {
	UserID        uuid.UUID
	TransactionID *uuid.UUID
	AccountID     uuid.UUID
	CategoryID    string
	Amount        decimal.Decimal
	Type          entity.TransactionType
	Date          time.Time
	Note          string
}

// SaveTransactionOutput represents the output of saving a transaction.
type SaveTransactionOutput struct {
	Transaction *TransactionOutput
	Created     bool
}

// SaveTransactionUseCase creates a transaction or replaces an existing one.
type SaveTransactionUseCase struct {
	store adapter.EntityStore
	clock adapter.Clock
}

// NewSaveTransactionUseCase creates a new SaveTransactionUseCase instance.
func NewSaveTransactionUseCase(store adapter.EntityStore, clock adapter.Clock) *SaveTransactionUseCase {
	return &SaveTransactionUseCase{store: store, clock: clock}
}

// Execute validates and stores the transaction.
func (uc *SaveTransactionUseCase) Execute(ctx context.Context, input SaveTransactionInput) (*SaveTransactionOutput, error) {
	if input.Amount.IsNegative() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	note := strings.TrimSpace(input.Note)
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", MaxNoteLength),
			domainerror.ErrNoteTooLong,
		)
	}

	category, err := uc.store.Categories().FindByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	txType := input.Type
	if txType == "" {
		txType = entity.TransactionType(category.Type)
	}
	if !txType.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !category.Type.Matches(txType) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionTypeMismatch,
			fmt.Sprintf("category %s only accepts %s transactions", category.Name, category.Type),
			domainerror.ErrTransactionTypeMismatch,
		)
	}

	account, err := uc.store.Accounts().FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	var transaction *entity.Transaction
	now := uc.clock.Now().UTC()
	created := input.TransactionID == nil
	if created {
		transaction = entity.NewTransaction(input.UserID, input.AccountID, category.ID, input.Amount, txType, input.Date, note)
		transaction.CreatedAt = now
		transaction.UpdatedAt = now
	} else {
		transaction, err = uc.store.Transactions().FindByID(ctx, input.UserID, *input.TransactionID)
		if err != nil {
			return nil, notFoundOr(err)
		}
		transaction.AccountID = input.AccountID
		transaction.CategoryID = category.ID
		transaction.Amount = input.Amount
		transaction.Type = txType
		transaction.Date = input.Date
		transaction.Note = note
		transaction.UpdatedAt = now
	}

	if err := uc.store.Transactions().Upsert(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	lookup := metrics.NewLookup([]*entity.Account{account}, []entity.Category{*category})
	return &SaveTransactionOutput{
		Transaction: resolve(transaction, lookup),
		Created:     created,
	}, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return fmt.Errorf("failed to find transaction: %w", err)
}
