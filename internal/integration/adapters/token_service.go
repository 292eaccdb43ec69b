// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	tokenIssuer = "pocket-ledger"
)

// TokenDurations configures how long issued tokens live.
type TokenDurations struct {
	Access            time.Duration
	Refresh           time.Duration
	RememberMeAccess  time.Duration
	RememberMeRefresh time.Duration
}

// DefaultTokenDurations returns 15 minutes / 7 days, extended to 7 / 30 days with "remember me".
func DefaultTokenDurations() TokenDurations {
	return TokenDurations{
		Access:            15 * time.Minute,
		Refresh:           7 * 24 * time.Hour,
		RememberMeAccess:  7 * 24 * time.Hour,
		RememberMeRefresh: 30 * 24 * time.Hour,
	}
}

// ledgerClaims are the JWT claims issued by the token service.
type ledgerClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret    []byte
	durations TokenDurations
	tokens    adapter.RefreshTokenRepository
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, durations TokenDurations, tokens adapter.RefreshTokenRepository) adapter.TokenService {
	return &tokenService{
		secret:    []byte(secret),
		durations: durations,
		tokens:    tokens,
	}
}

// GenerateTokenPair issues an access and a refresh token and records the refresh token.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	accessDuration := s.durations.Access
	refreshDuration := s.durations.Refresh
	if rememberMe {
		accessDuration = s.durations.RememberMeAccess
		refreshDuration = s.durations.RememberMeRefresh
	}

	now := time.Now().UTC()

	accessToken, err := s.sign(userID, email, tokenTypeAccess, now, accessDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.sign(userID, email, tokenTypeRefresh, now, refreshDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokens.Save(ctx, refreshToken, userID, now.Add(refreshDuration)); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(accessDuration),
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate(token, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token, including that it was not revoked.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.validate(token, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	valid, err := s.tokens.IsValid(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("refresh token has been revoked")
	}

	return claims, nil
}

// RevokeRefreshToken marks a single refresh token as used.
func (s *tokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.tokens.Invalidate(ctx, token)
}

// RevokeUserSessions invalidates every refresh token of the user.
func (s *tokenService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.InvalidateAllForUser(ctx, userID)
}

func (s *tokenService) validate(token, expectedType string) (*adapter.TokenClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s token", expectedType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	return &adapter.TokenClaims{
		TokenID:   claims.ID,
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *tokenService) sign(userID uuid.UUID, email, tokenType string, now time.Time, duration time.Duration) (string, error) {
	claims := ledgerClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) parse(tokenString string) (*ledgerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ledgerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*ledgerClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
