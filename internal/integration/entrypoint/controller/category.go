package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/category"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{listUseCase: listUseCase}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.ListCategoriesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters", "", err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		UserID: session.UserID,
		Type:   entity.CategoryType(query.Type),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}
