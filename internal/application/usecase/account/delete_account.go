package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// DeleteAccountUseCase removes an account. Its transactions are kept and show
// the account as unknown afterwards.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if err := uc.accountRepo.Delete(ctx, input.UserID, input.AccountID); err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
