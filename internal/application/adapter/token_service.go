package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenClaims are the verified contents of a token. TokenID is unique per issued token.
type TokenClaims struct {
	TokenID   string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies session tokens. Refresh tokens are single use: a refresh
// revokes the presented token and issues a new pair.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken also fails for revoked or expired tokens.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeUserSessions(ctx context.Context, userID uuid.UUID) error
}
