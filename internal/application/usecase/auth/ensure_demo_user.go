package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// EnsureDemoUserInput describes the demo account.
type EnsureDemoUserInput struct {
	Email    string
	Name     string
	Password string
}

// EnsureDemoUserUseCase creates the demo user with its starter accounts when it does not exist.
type EnsureDemoUserUseCase struct {
	userRepo        adapter.UserRepository
	accountRepo     adapter.AccountRepository
	passwordService adapter.PasswordService
}

// NewEnsureDemoUserUseCase creates a new EnsureDemoUserUseCase instance.
func NewEnsureDemoUserUseCase(
	userRepo adapter.UserRepository,
	accountRepo adapter.AccountRepository,
	passwordService adapter.PasswordService,
) *EnsureDemoUserUseCase {
	return &EnsureDemoUserUseCase{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		passwordService: passwordService,
	}
}

// Execute returns the demo user, creating it on first run. The boolean reports creation.
func (uc *EnsureDemoUserUseCase) Execute(ctx context.Context, input EnsureDemoUserInput) (*entity.User, bool, error) {
	email := normalizeEmail(input.Email)

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up demo user: %w", err)
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := entity.NewUser(email, input.Name, hash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create demo user: %w", err)
	}
	if err := uc.accountRepo.CreateMany(ctx, entity.DefaultAccounts(user.ID)); err != nil {
		return nil, false, fmt.Errorf("failed to seed demo accounts: %w", err)
	}

	slog.Info("Demo user created", "email", email)
	return user, true, nil
}
