// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// handleError maps domain errors to HTTP responses. Anything unrecognized is a 500.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr   *domainerror.AuthError
		accErr    *domainerror.AccountError
		txnErr    *domainerror.TransactionError
		budgetErr *domainerror.BudgetError
		reportErr *domainerror.ReportError
		emailErr  *domainerror.EmailError
	)

	switch {
	case errors.As(err, &authErr):
		respond(ctx, getStatusCodeForAuthError(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &accErr):
		respond(ctx, getStatusCodeForAccountError(accErr.Code), accErr.Message, string(accErr.Code))
	case errors.As(err, &txnErr):
		respond(ctx, getStatusCodeForTransactionError(txnErr.Code), txnErr.Message, string(txnErr.Code))
	case errors.As(err, &budgetErr):
		respond(ctx, getStatusCodeForBudgetError(budgetErr.Code), budgetErr.Message, string(budgetErr.Code))
	case errors.As(err, &reportErr):
		if errors.As(err, &emailErr) {
			respond(ctx, getStatusCodeForEmailError(emailErr.Code), emailErr.Message, string(emailErr.Code))
			return
		}
		status := getStatusCodeForReportError(reportErr.Code)
		if status >= http.StatusInternalServerError {
			slog.Error("Report request failed", "path", ctx.FullPath(), "error", err)
		}
		respond(ctx, status, reportErr.Message, string(reportErr.Code))
	case errors.Is(err, domainerror.ErrUserNotFound):
		respond(ctx, http.StatusNotFound, "user not found", string(domainerror.ErrCodeUserNotFound))
	default:
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func respond(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func badRequest(ctx *gin.Context, message, code string, err error) {
	resp := dto.ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, resp)
}

// requireSession returns the authenticated session or writes a 401.
func requireSession(ctx *gin.Context) (*entity.Session, bool) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return nil, false
	}
	return session, true
}

func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForAccountError(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAccountNameRequired,
		domainerror.ErrCodeAccountNameTooLong,
		domainerror.ErrCodeInvalidAccountType,
		domainerror.ErrCodeInvalidBalance:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeTransactionTypeMismatch,
		domainerror.ErrCodeNoteTooLong,
		domainerror.ErrCodeCategoryNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeBudgetCategoryNotExpense,
		domainerror.ErrCodeBudgetCategoryNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidReportYear:
		return http.StatusBadRequest
	case domainerror.ErrCodeSnapshotUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForEmailError(code domainerror.EmailErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
