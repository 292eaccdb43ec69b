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

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// FindByUser returns the user's transactions matching the filter, newest first.
// Rows that fail validation are logged and left out.
func (r *transactionRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.From != nil {
		query = query.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("date < ?", filter.To.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []model.TransactionModel
	if err := query.Order("date DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		t, err := rows[i].ToEntity()
		if err != nil {
			slog.Warn("Skipping malformed transaction row", "user_id", userID, "error", err)
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// FindByID retrieves one transaction of the user.
func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	var row model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}

	t, err := row.ToEntity()
	if err != nil {
		slog.Warn("Malformed transaction row", "transaction_id", id, "error", err)
		return nil, domainerror.ErrTransactionNotFound
	}
	return t, nil
}

// Upsert inserts the transaction or replaces the stored row with the same ID.
func (r *transactionRepository) Upsert(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(model.TransactionFromEntity(transaction)).Error
}

// Delete removes the transaction of the user.
func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
