package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

// refreshTokenRepository implements the adapter.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository instance.
func NewRefreshTokenRepository(db *gorm.DB) adapter.RefreshTokenRepository {
	return &refreshTokenRepository{
		db: db,
	}
}

// Save records an issued refresh token.
func (r *refreshTokenRepository) Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}).Error
}

// IsValid checks that the token exists, is not invalidated and has not expired.
func (r *refreshTokenRepository) IsValid(ctx context.Context, token string) (bool, error) {
	var refreshToken model.RefreshTokenModel
	result := r.db.WithContext(ctx).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, time.Now().UTC()).
		First(&refreshToken)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// Invalidate marks a refresh token as invalidated.
func (r *refreshTokenRepository) Invalidate(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true).Error
}

// InvalidateAllForUser invalidates every refresh token of a user.
func (r *refreshTokenRepository) InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ?", userID).
		Update("invalidated", true).Error
}

// DeleteExpired removes tokens that expired or were invalidated before the given instant.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ? OR (invalidated = ? AND created_at <= ?)", before.UTC(), true, before.UTC()).
		Delete(&model.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}
