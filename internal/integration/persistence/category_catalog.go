package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// categoryCatalog serves the seeded categories. Every user shares the same catalog, so nothing
// is stored.
type categoryCatalog struct{}

// NewCategoryCatalog creates the seeded category repository.
func NewCategoryCatalog() adapter.CategoryRepository {
	return categoryCatalog{}
}

// FindByUser returns the full catalog.
func (categoryCatalog) FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	return entity.DefaultCategories(), nil
}

// FindByID returns one category of the catalog.
func (categoryCatalog) FindByID(ctx context.Context, userID uuid.UUID, id string) (*entity.Category, error) {
	c, ok := entity.FindCategory(entity.DefaultCategories(), id)
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return &c, nil
}
