package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/dashboard"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	summaryUseCase *dashboard.GetSummaryUseCase
	boardUseCase   *dashboard.GetBudgetBoardUseCase
	trendsUseCase  *dashboard.GetTrendsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	summaryUseCase *dashboard.GetSummaryUseCase,
	boardUseCase *dashboard.GetBudgetBoardUseCase,
	trendsUseCase *dashboard.GetTrendsUseCase,
) *DashboardController {
	return &DashboardController{
		summaryUseCase: summaryUseCase,
		boardUseCase:   boardUseCase,
		trendsUseCase:  trendsUseCase,
	}
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(output.Summary, output.Lookup))
}

// Budgets handles GET /dashboard/budgets requests.
func (c *DashboardController) Budgets(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.boardUseCase.Execute(ctx.Request.Context(), dashboard.GetBudgetBoardInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetBoardResponse(output.Board, output.Window))
}

// Trends handles GET /dashboard/trends requests.
func (c *DashboardController) Trends(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.TrendsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid year", string(domainerror.ErrCodeInvalidReportYear), err)
		return
	}

	output, err := c.trendsUseCase.Execute(ctx.Request.Context(), dashboard.GetTrendsInput{
		UserID: session.UserID,
		Year:   query.Year,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendReportResponse(output.Report))
}
