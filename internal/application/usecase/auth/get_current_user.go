package auth

import (
	"context"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// GetCurrentUserUseCase loads the user behind a session.
type GetCurrentUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetCurrentUserUseCase creates a new GetCurrentUserUseCase instance.
func NewGetCurrentUserUseCase(userRepo adapter.UserRepository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo}
}

// Execute returns the session's user.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, session *entity.Session) (*entity.User, error) {
	return uc.userRepo.FindByID(ctx, session.UserID)
}
