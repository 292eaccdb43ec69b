package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// FindByUser returns the budget set of the user, empty when none was saved yet.
func (r *budgetRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.BudgetSet, error) {
	var row model.BudgetSetModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.NewBudgetSet(userID), nil
		}
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

// Replace overwrites the whole budget set of the user.
func (r *budgetRepository) Replace(ctx context.Context, set *entity.BudgetSet) error {
	if set.UpdatedAt.IsZero() {
		set.UpdatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Save(model.BudgetSetFromEntity(set)).Error
}

// Update runs fn on the user's set inside a database transaction. The row is created empty
// first when missing so that it can be locked on PostgreSQL.
func (r *budgetRepository) Update(ctx context.Context, userID uuid.UUID, fn func(set *entity.BudgetSet) error) (*entity.BudgetSet, error) {
	var set *entity.BudgetSet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		empty := model.BudgetSetFromEntity(entity.NewBudgetSet(userID))
		empty.UpdatedAt = time.Now().UTC()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(empty).Error; err != nil {
			return err
		}

		query := tx.Where("user_id = ?", userID)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var row model.BudgetSetModel
		if err := query.First(&row).Error; err != nil {
			return err
		}

		set = row.ToEntity()
		if err := fn(set); err != nil {
			return err
		}
		if set.UpdatedAt.IsZero() {
			set.UpdatedAt = time.Now().UTC()
		}
		return tx.Save(model.BudgetSetFromEntity(set)).Error
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}
