package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/application/usecase/report"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController handles advice, export and digest endpoints.
type ReportController struct {
	adviceUseCase *report.GetAdviceUseCase
	exportUseCase *report.ExportTransactionsUseCase
	digestUseCase *report.SendDigestUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	adviceUseCase *report.GetAdviceUseCase,
	exportUseCase *report.ExportTransactionsUseCase,
	digestUseCase *report.SendDigestUseCase,
) *ReportController {
	return &ReportController{
		adviceUseCase: adviceUseCase,
		exportUseCase: exportUseCase,
		digestUseCase: digestUseCase,
	}
}

// Advice handles GET /reports/advice requests.
func (c *ReportController) Advice(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.adviceUseCase.Execute(ctx.Request.Context(), report.GetAdviceInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AdviceResponse{
		Advice:    output.Advice,
		Available: output.Available,
		Cached:    output.Cached,
	})
}

// Export handles GET /reports/transactions/export requests.
func (c *ReportController) Export(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.ExportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid year", string(domainerror.ErrCodeInvalidReportYear), err)
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), report.ExportTransactionsInput{
		UserID: session.UserID,
		Year:   query.Year,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, xlsxContentType, output.Content)
}

// Digest handles POST /reports/digest requests, emailing the previous month to the caller.
func (c *ReportController) Digest(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.digestUseCase.Execute(ctx.Request.Context(), report.SendDigestInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.DigestResponse{
		Message:     "Digest sent",
		PeriodStart: output.Period.Start.Format(dto.DateLayout),
		PeriodEnd:   output.Period.End.Format(dto.DateLayout),
	})
}
