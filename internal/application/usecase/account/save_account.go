package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names, in characters.
const MaxAccountNameLength = 100

// SaveAccountInput represents the input for creating or updating an account.
// A nil AccountID creates a new account.
type SaveAccountInput struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID
	Name      string
	Balance   decimal.Decimal
	Type      entity.AccountType
	Color     string
}

// SaveAccountOutput represents the output of saving an account.
type SaveAccountOutput struct {
	Account *entity.Account
	Created bool
}

// SaveAccountUseCase creates an account or replaces an existing one.
type SaveAccountUseCase struct {
	accountRepo adapter.AccountRepository
	clock       adapter.Clock
}

// NewSaveAccountUseCase creates a new SaveAccountUseCase instance.
func NewSaveAccountUseCase(accountRepo adapter.AccountRepository, clock adapter.Clock) *SaveAccountUseCase {
	return &SaveAccountUseCase{accountRepo: accountRepo, clock: clock}
}

// Execute validates and stores the account.
func (uc *SaveAccountUseCase) Execute(ctx context.Context, input SaveAccountInput) (*SaveAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			"account name is required",
			domainerror.ErrAccountNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxAccountNameLength {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameTooLong,
			fmt.Sprintf("account name must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrAccountNameTooLong,
		)
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be one of savings, payroll, credit_card, cash, investment",
			domainerror.ErrInvalidAccountType,
		)
	}

	if input.AccountID == nil {
		return uc.create(ctx, input, name)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.UserID, *input.AccountID)
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

	account.Name = name
	account.Balance = input.Balance
	account.Type = input.Type
	if input.Color != "" {
		account.Color = input.Color
	}
	account.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.accountRepo.Upsert(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &SaveAccountOutput{Account: account}, nil
}

func (uc *SaveAccountUseCase) create(ctx context.Context, input SaveAccountInput, name string) (*SaveAccountOutput, error) {
	color := input.Color
	if color == "" {
		existing, err := uc.accountRepo.FindByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		color = entity.NextAccountColor(len(existing))
	}

	account := entity.NewAccount(input.UserID, name, input.Balance, input.Type, color)
	account.CreatedAt = uc.clock.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	if err := uc.accountRepo.Upsert(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &SaveAccountOutput{Account: account, Created: true}, nil
}
