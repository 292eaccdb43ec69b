package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/usecase/account"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

// AccountController handles bank account endpoints.
type AccountController struct {
	listUseCase   *account.ListAccountsUseCase
	saveUseCase   *account.SaveAccountUseCase
	deleteUseCase *account.DeleteAccountUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	listUseCase *account.ListAccountsUseCase,
	saveUseCase *account.SaveAccountUseCase,
	deleteUseCase *account.DeleteAccountUseCase,
) *AccountController {
	return &AccountController{
		listUseCase:   listUseCase,
		saveUseCase:   saveUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{UserID: session.UserID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output.Accounts, output.TotalBalance))
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	c.save(ctx, nil)
}

// Update handles PUT /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	id, ok := parseAccountID(ctx)
	if !ok {
		return
	}
	c.save(ctx, &id)
}

func (c *AccountController) save(ctx *gin.Context, id *uuid.UUID) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.SaveAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeAccountNameRequired), err)
		return
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), account.SaveAccountInput{
		UserID:    session.UserID,
		AccountID: id,
		Name:      req.Name,
		Balance:   *req.Balance,
		Type:      entity.AccountType(req.Type),
		Color:     req.Color,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToAccountResponse(output.Account))
}

// Delete handles DELETE /accounts/:id requests.
func (c *AccountController) Delete(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	id, ok := parseAccountID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), account.DeleteAccountInput{
		UserID:    session.UserID,
		AccountID: id,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseAccountID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid account ID", string(domainerror.ErrCodeAccountNotFound), nil)
		return uuid.Nil, false
	}
	return id, true
}
