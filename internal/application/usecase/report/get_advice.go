// Package report contains report-related use cases: AI advice, exports and the monthly digest.
package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/usecase/dashboard"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

const (
	// AdviceUnavailableMessage replaces the advice when the advisor is not configured or fails.
	AdviceUnavailableMessage = "AI analysis is temporarily unavailable. Check your network connection or API key and try again later."

	// AdviceEmptyMessage replaces an empty answer from the advisor.
	AdviceEmptyMessage = "No analysis could be generated, please try again later."
)

// GetAdviceInput represents the input for the financial advice.
type GetAdviceInput struct {
	UserID uuid.UUID
}

// GetAdviceOutput carries the advisory prose. Available is false when a fallback message was used.
type GetAdviceOutput struct {
	Advice    string
	Available bool
	Cached    bool
}

// GetAdviceUseCase asks the financial advisor about the user's whole history.
type GetAdviceUseCase struct {
	loader   *dashboard.SnapshotLoader
	advisor  adapter.FinancialAdvisor
	cache    adapter.AdviceCache
	language string
}

// NewGetAdviceUseCase creates a new GetAdviceUseCase instance.
func NewGetAdviceUseCase(
	loader *dashboard.SnapshotLoader,
	advisor adapter.FinancialAdvisor,
	cache adapter.AdviceCache,
	language string,
) *GetAdviceUseCase {
	return &GetAdviceUseCase{
		loader:   loader,
		advisor:  advisor,
		cache:    cache,
		language: language,
	}
}

// Execute returns cached advice for an unchanged snapshot, otherwise asks the advisor.
// Advisor failures never surface as errors.
func (uc *GetAdviceUseCase) Execute(ctx context.Context, input GetAdviceInput) (*GetAdviceOutput, error) {
	snapshot, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	req := BuildAdviceRequest(snapshot, uc.language)
	key := input.UserID.String() + ":" + Fingerprint(req)

	if cached, ok, err := uc.cache.Get(ctx, key); err != nil {
		slog.Warn("Advice cache read failed", "user_id", input.UserID, "error", err)
	} else if ok {
		return &GetAdviceOutput{Advice: cached, Available: true, Cached: true}, nil
	}

	if uc.advisor == nil || !uc.advisor.IsAvailable() {
		return &GetAdviceOutput{Advice: AdviceUnavailableMessage}, nil
	}

	advice, err := uc.advisor.Advise(ctx, req)
	if err != nil {
		slog.Error("Financial advisor failed", "user_id", input.UserID, "error", err)
		return &GetAdviceOutput{Advice: AdviceUnavailableMessage}, nil
	}
	advice = strings.TrimSpace(advice)
	if advice == "" {
		return &GetAdviceOutput{Advice: AdviceEmptyMessage}, nil
	}

	if err := uc.cache.Set(ctx, key, advice); err != nil {
		slog.Warn("Advice cache write failed", "user_id", input.UserID, "error", err)
	}

	return &GetAdviceOutput{Advice: advice, Available: true}, nil
}

// BuildAdviceRequest summarizes a snapshot for the advisor: all-time flows, spending per
// expense category and every account balance.
func BuildAdviceRequest(s metrics.Snapshot, language string) adapter.AdviceRequest {
	flows := metrics.TotalFlows(s.Transactions)

	breakdown := metrics.CategoryBreakdown(s.Transactions, s.Categories, entity.CategoryTypeExpense)
	expenses := make([]adapter.NamedAmount, 0, len(breakdown))
	for _, c := range breakdown {
		expenses = append(expenses, adapter.NamedAmount{Name: c.Category.Name, Amount: c.Total})
	}

	balances := make([]adapter.NamedAmount, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		if a == nil {
			continue
		}
		balances = append(balances, adapter.NamedAmount{Name: a.Name, Amount: a.Balance})
	}

	return adapter.AdviceRequest{
		TotalBalance:    metrics.TotalBalance(s.Accounts),
		TotalIncome:     flows.Income,
		TotalExpense:    flows.Expense,
		ExpenseByName:   expenses,
		AccountBalances: balances,
		Language:        language,
	}
}

// Fingerprint hashes every figure the advisor sees, so the cache key changes with the data.
func Fingerprint(req adapter.AdviceRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s\n", req.TotalBalance.String(), req.TotalIncome.String(), req.TotalExpense.String(), req.Language)
	for _, e := range req.ExpenseByName {
		fmt.Fprintf(h, "e|%s|%s\n", e.Name, e.Amount.String())
	}
	for _, a := range req.AccountBalances {
		fmt.Fprintf(h, "a|%s|%s\n", a.Name, a.Amount.String())
	}
	return hex.EncodeToString(h.Sum(nil))
}
