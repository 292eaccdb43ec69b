package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	Session *entity.Session
}

// LogoutUserUseCase ends the session: every refresh token of the user is revoked.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the user logout.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if err := uc.tokenService.RevokeUserSessions(ctx, input.Session.UserID); err != nil {
		return fmt.Errorf("failed to invalidate tokens: %w", err)
	}

	slog.Info("User logged out", "user_id", input.Session.UserID)
	return nil
}
