package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/budget"
	"github.com/pocketledger/backend/internal/application/usecase/category"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	listUseCase       *budget.ListBudgetsUseCase
	setUseCase        *budget.SetBudgetUseCase
	deleteUseCase     *budget.DeleteBudgetUseCase
	categoriesUseCase *category.ListCategoriesUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetsUseCase,
	setUseCase *budget.SetBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	categoriesUseCase *category.ListCategoriesUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:       listUseCase,
		setUseCase:        setUseCase,
		deleteUseCase:     deleteUseCase,
		categoriesUseCase: categoriesUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}
	categories, err := c.categoriesUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets, categories.Categories))
}

// Set handles PUT /budgets/:categoryId requests and responds with the whole budget set.
func (c *BudgetController) Set(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.SetBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidBudgetAmount), err)
		return
	}

	output, err := c.setUseCase.Execute(ctx.Request.Context(), budget.SetBudgetInput{
		UserID:     session.UserID,
		CategoryID: ctx.Param("categoryId"),
		Amount:     *req.Amount,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	categories, err := c.categoriesUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets, categories.Categories))
}

// Delete handles DELETE /budgets/:categoryId requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		UserID:     session.UserID,
		CategoryID: ctx.Param("categoryId"),
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
