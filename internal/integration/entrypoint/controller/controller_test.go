package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter/memstore"
	"github.com/pocketledger/backend/internal/application/usecase/account"
	"github.com/pocketledger/backend/internal/application/usecase/budget"
	"github.com/pocketledger/backend/internal/application/usecase/category"
	"github.com/pocketledger/backend/internal/application/usecase/dashboard"
	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var refNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	engine  *gin.Engine
	store   *memstore.Store
	userID  uuid.UUID
	account *entity.Account
}

// newTestServer wires the controllers over an in-memory store. Requests are authenticated as
// userID unless the X-Anonymous header is set.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	userID := uuid.New()
	accounts := entity.DefaultAccounts(userID)
	store.AddAccounts(accounts...)

	loader := dashboard.NewSnapshotLoader(store)
	clock := fixedClock(refNow)
	categories := category.NewListCategoriesUseCase(store.Categories())

	accountCtl := NewAccountController(
		account.NewListAccountsUseCase(store.Accounts()),
		account.NewSaveAccountUseCase(store.Accounts(), clock),
		account.NewDeleteAccountUseCase(store.Accounts()),
	)
	transactions := NewTransactionController(
		transaction.NewListTransactionsUseCase(store),
		transaction.NewSaveTransactionUseCase(store, clock),
		transaction.NewDeleteTransactionUseCase(store.Transactions()),
		time.UTC,
	)
	budgets := NewBudgetController(
		budget.NewListBudgetsUseCase(store.Budgets()),
		budget.NewSetBudgetUseCase(store.Budgets(), store.Categories(), clock),
		budget.NewDeleteBudgetUseCase(store.Budgets(), clock),
		categories,
	)
	dash := NewDashboardController(
		dashboard.NewGetSummaryUseCase(loader, clock),
		dashboard.NewGetBudgetBoardUseCase(loader, clock),
		dashboard.NewGetTrendsUseCase(loader, clock),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			c.Set(string(middleware.SessionKey), &entity.Session{UserID: userID})
		}
		c.Next()
	})
	r.GET("/accounts", accountCtl.List)
	r.POST("/accounts", accountCtl.Create)
	r.PUT("/accounts/:id", accountCtl.Update)
	r.DELETE("/accounts/:id", accountCtl.Delete)
	r.GET("/transactions", transactions.List)
	r.POST("/transactions", transactions.Create)
	r.PUT("/transactions/:id", transactions.Update)
	r.DELETE("/transactions/:id", transactions.Delete)
	r.GET("/categories", NewCategoryController(categories).List)
	r.GET("/budgets", budgets.List)
	r.PUT("/budgets/:categoryId", budgets.Set)
	r.DELETE("/budgets/:categoryId", budgets.Delete)
	r.GET("/dashboard/summary", dash.Summary)
	r.GET("/dashboard/budgets", dash.Budgets)
	r.GET("/dashboard/trends", dash.Trends)

	return &testServer{engine: r, store: store, userID: userID, account: accounts[0]}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestAccountController(t *testing.T) {
	t.Run("lists the seeded accounts", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodGet, "/accounts", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		resp := decode[dto.AccountListResponse](t, w)
		if len(resp.Accounts) != len(entity.DefaultAccounts(s.userID)) {
			t.Errorf("expected seeded accounts, got %d", len(resp.Accounts))
		}
	})

	t.Run("creates then renames an account", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/accounts", map[string]any{"name": "Travel", "balance": "250.5", "type": "savings"})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		created := decode[dto.AccountResponse](t, w)
		if created.Balance != "250.50" {
			t.Errorf("expected balance 250.50, got %s", created.Balance)
		}

		w = s.do(t, http.MethodPut, "/accounts/"+created.ID, map[string]any{"name": "Trips", "balance": "250.5", "type": "savings"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		updated := decode[dto.AccountResponse](t, w)
		if updated.Name != "Trips" || updated.Color != created.Color {
			t.Errorf("unexpected update result: %+v", updated)
		}
	})

	t.Run("rejects an unknown account type", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/accounts", map[string]any{"name": "X", "balance": "1", "type": "crypto"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 when updating a missing account", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPut, "/accounts/"+uuid.NewString(), map[string]any{"name": "X", "balance": "1", "type": "cash"})
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodDelete, "/accounts/not-a-uuid", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("deletes an account", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodDelete, "/accounts/"+s.account.ID.String(), nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		w = s.do(t, http.MethodDelete, "/accounts/"+s.account.ID.String(), nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 on second delete, got %d", w.Code)
		}
	})

	t.Run("requires a session", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodGet, "/accounts", nil, "X-Anonymous", "1")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestTransactionController(t *testing.T) {
	t.Run("creates a transaction and derives its type", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/transactions", map[string]any{
			"account_id":  s.account.ID.String(),
			"category_id": "cat1",
			"amount":      "42.10",
			"date":        "2026-03-10",
			"note":        "lunch",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dto.TransactionResponse](t, w)
		if resp.Type != string(entity.TransactionTypeExpense) {
			t.Errorf("expected expense, got %s", resp.Type)
		}
		if resp.CategoryName != "Food & Dining" {
			t.Errorf("expected category name, got %s", resp.CategoryName)
		}
	})

	t.Run("rejects a type that contradicts the category", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/transactions", map[string]any{
			"account_id":  s.account.ID.String(),
			"category_id": "cat7",
			"amount":      "10",
			"type":        "expense",
			"date":        "2026-03-10",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if resp := decode[dto.ErrorResponse](t, w); resp.Code != "TRX-010004" {
			t.Errorf("expected TRX-010004, got %s", resp.Code)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/transactions", map[string]any{
			"account_id":  s.account.ID.String(),
			"category_id": "cat1",
			"amount":      "10",
			"date":        "10/03/2026",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("filters the listing by date range", func(t *testing.T) {
		s := newTestServer(t)
		s.store.AddTransactions(
			entity.NewTransaction(s.userID, s.account.ID, "cat1", decimal.NewFromInt(5), entity.TransactionTypeExpense, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), ""),
			entity.NewTransaction(s.userID, s.account.ID, "cat1", decimal.NewFromInt(7), entity.TransactionTypeExpense, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), ""),
		)

		w := s.do(t, http.MethodGet, "/transactions?from=2026-03-01&to=2026-04-01", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dto.TransactionListResponse](t, w)
		if len(resp.Transactions) != 1 || resp.Transactions[0].Amount != "7.00" {
			t.Errorf("unexpected listing: %+v", resp.Transactions)
		}

		w = s.do(t, http.MethodGet, "/transactions?from=yesterday", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for a bad filter, got %d", w.Code)
		}
	})

	t.Run("deletes a transaction", func(t *testing.T) {
		s := newTestServer(t)
		txn := entity.NewTransaction(s.userID, s.account.ID, "cat1", decimal.NewFromInt(5), entity.TransactionTypeExpense, refNow, "")
		s.store.AddTransactions(txn)

		if w := s.do(t, http.MethodDelete, "/transactions/"+txn.ID.String(), nil); w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if w := s.do(t, http.MethodDelete, "/transactions/"+txn.ID.String(), nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}

func TestCategoryController(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/categories?type=income", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[dto.CategoryListResponse](t, w)
	if len(resp.Categories) != 3 {
		t.Errorf("expected 3 income categories, got %d", len(resp.Categories))
	}

	if w := s.do(t, http.MethodGet, "/categories?type=transfer", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBudgetController(t *testing.T) {
	t.Run("sets lists and deletes a budget", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPut, "/budgets/cat1", map[string]any{"amount": "300"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dto.BudgetListResponse](t, w)
		if len(resp.Budgets) != 1 || resp.Budgets[0].CategoryName != "Food & Dining" {
			t.Errorf("unexpected budgets: %+v", resp.Budgets)
		}

		if w := s.do(t, http.MethodDelete, "/budgets/cat1", nil); w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		list := decode[dto.BudgetListResponse](t, s.do(t, http.MethodGet, "/budgets", nil))
		if len(list.Budgets) != 0 {
			t.Errorf("expected no budgets, got %d", len(list.Budgets))
		}
	})

	t.Run("rejects income categories", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPut, "/budgets/cat7", map[string]any{"amount": "300"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestDashboardController(t *testing.T) {
	t.Run("summary reports null budgets when none are set", func(t *testing.T) {
		s := newTestServer(t)
		s.store.AddTransactions(
			entity.NewTransaction(s.userID, s.account.ID, "cat1", decimal.NewFromInt(20), entity.TransactionTypeExpense, refNow.AddDate(0, 0, -1), ""),
		)

		w := s.do(t, http.MethodGet, "/dashboard/summary", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dto.DashboardSummaryResponse](t, w)
		if resp.Budgets != nil {
			t.Errorf("expected null budgets, got %+v", resp.Budgets)
		}
		if resp.RecentFlows.Expense != "20.00" {
			t.Errorf("expected expense 20.00, got %s", resp.RecentFlows.Expense)
		}
	})

	t.Run("trends rejects an out of range year", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodGet, "/dashboard/trends?year=10000", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("trends defaults to the current year", func(t *testing.T) {
		s := newTestServer(t)

		resp := decode[dto.TrendReportResponse](t, s.do(t, http.MethodGet, "/dashboard/trends", nil))
		if resp.Year != 2026 || len(resp.Months) != 12 {
			t.Errorf("unexpected report: year=%d months=%d", resp.Year, len(resp.Months))
		}
	})

	t.Run("store failure maps to 503", func(t *testing.T) {
		s := newTestServer(t)
		s.store.Err = errors.New("connection refused")

		w := s.do(t, http.MethodGet, "/dashboard/budgets", nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", w.Code)
		}
	})
}
