package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ListAll returns every registered user, oldest first.
	ListAll(ctx context.Context) ([]*entity.User, error)
}

// RefreshTokenRepository stores issued refresh tokens so they can be revoked on logout.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	IsValid(ctx context.Context, token string) (bool, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error
	// DeleteExpired purges expired tokens and invalidated ones issued before the instant.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
