package dto

import "github.com/pocketledger/backend/internal/domain/entity"

// ListCategoriesQuery represents the query parameters of the categories listing.
type ListCategoriesQuery struct {
	Type string `form:"type" binding:"omitempty,oneof=expense income"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoryListResponse represents the categories listing.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category to its response DTO.
func ToCategoryResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Type:  string(c.Type),
		Icon:  c.Icon,
		Color: c.Color,
	}
}

// ToCategoryListResponse converts a list of categories.
func ToCategoryListResponse(categories []entity.Category) CategoryListResponse {
	out := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		out.Categories = append(out.Categories, ToCategoryResponse(c))
	}
	return out
}
