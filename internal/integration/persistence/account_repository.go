package persistence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// FindByUser returns the user's accounts in creation order. Malformed rows are skipped.
func (r *accountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var rows []model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.Account, 0, len(rows))
	for i := range rows {
		account, err := rows[i].ToEntity()
		if err != nil {
			slog.Warn("Skipping malformed account row", "user_id", userID, "error", err)
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// FindByID retrieves one account of the user.
func (r *accountRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	var row model.AccountModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}

	account, err := row.ToEntity()
	if err != nil {
		slog.Warn("Malformed account row", "account_id", id, "error", err)
		return nil, domainerror.ErrAccountNotFound
	}
	return account, nil
}

// Upsert inserts the account or replaces the stored row with the same ID.
func (r *accountRepository) Upsert(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Save(model.AccountFromEntity(account)).Error
}

// CreateMany inserts several accounts in one statement.
func (r *accountRepository) CreateMany(ctx context.Context, accounts []*entity.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	rows := make([]*model.AccountModel, len(accounts))
	for i, a := range accounts {
		rows[i] = model.AccountFromEntity(a)
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

// Delete removes the account of the user.
func (r *accountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.AccountModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}
