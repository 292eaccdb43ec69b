package category

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter/memstore"
	"github.com/pocketledger/backend/internal/domain/entity"
)

func TestListCategoriesUseCase(t *testing.T) {
	uc := NewListCategoriesUseCase(memstore.New().Categories())

	tests := []struct {
		name string
		typ  entity.CategoryType
		want int
	}{
		{"all", "", 9},
		{"expense", entity.CategoryTypeExpense, 6},
		{"income", entity.CategoryTypeIncome, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), ListCategoriesInput{UserID: uuid.New(), Type: tt.typ})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out.Categories) != tt.want {
				t.Errorf("expected %d categories, got %d", tt.want, len(out.Categories))
			}
		})
	}
}
