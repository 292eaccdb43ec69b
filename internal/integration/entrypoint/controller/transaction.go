package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	saveUseCase   *transaction.SaveTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	location      *time.Location
}

// NewTransactionController creates a new transaction controller instance. Calendar dates in
// requests are read in loc.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	saveUseCase *transaction.SaveTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	loc *time.Location,
) *TransactionController {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionController{
		listUseCase:   listUseCase,
		saveUseCase:   saveUseCase,
		deleteUseCase: deleteUseCase,
		location:      loc,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters", "", err)
		return
	}

	filter := adapter.TransactionFilter{
		CategoryID: query.CategoryID,
		Type:       entity.TransactionType(query.Type),
		Limit:      query.Limit,
	}
	if query.AccountID != "" {
		id := uuid.MustParse(query.AccountID)
		filter.AccountID = &id
	}
	for _, bound := range []struct {
		value  string
		target **time.Time
	}{{query.From, &filter.From}, {query.To, &filter.To}} {
		if bound.value == "" {
			continue
		}
		t, err := dto.ParseDate(bound.value, c.location)
		if err != nil {
			badRequest(ctx, "Invalid date filter", string(domainerror.ErrCodeInvalidTransactionDate), err)
			return
		}
		*bound.target = &t
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: session.UserID,
		Filter: filter,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	c.save(ctx, nil)
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := parseTransactionID(ctx)
	if !ok {
		return
	}
	c.save(ctx, &id)
}

func (c *TransactionController) save(ctx *gin.Context, id *uuid.UUID) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.SaveTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", "", err)
		return
	}

	date, err := dto.ParseDate(req.Date, c.location)
	if err != nil {
		badRequest(ctx, "Invalid transaction date", string(domainerror.ErrCodeInvalidTransactionDate), err)
		return
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), transaction.SaveTransactionInput{
		UserID:        session.UserID,
		TransactionID: id,
		AccountID:     uuid.MustParse(req.AccountID),
		CategoryID:    req.CategoryID,
		Amount:        *req.Amount,
		Type:          entity.TransactionType(req.Type),
		Date:          date,
		Note:          req.Note,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        session.UserID,
		TransactionID: id,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseTransactionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid transaction ID", string(domainerror.ErrCodeTransactionNotFound), nil)
		return uuid.Nil, false
	}
	return id, true
}
