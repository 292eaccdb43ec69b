package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/usecase/dashboard"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// DigestTopCategories is the number of expense categories listed in a digest.
const DigestTopCategories = 3

// DigestData is the content of a monthly digest email. Amounts are preformatted.
type DigestData struct {
	UserName      string
	PeriodLabel   string
	Income        string
	Expense       string
	Net           string
	NetNegative   bool
	TopCategories []DigestCategory
	Budgets       []DigestBudget
}

// DigestCategory is one line of the top spending list.
type DigestCategory struct {
	Name   string
	Amount string
}

// DigestBudget is the status of one budget over the digest month.
type DigestBudget struct {
	Name        string
	Budgeted    string
	Spent       string
	Remaining   string
	PercentUsed string
	Overspent   bool
}

// SendDigestInput represents the input for sending a digest to one user.
type SendDigestInput struct {
	UserID uuid.UUID
}

// SendDigestOutput represents the output of sending a digest.
type SendDigestOutput struct {
	ProviderID string
	Period     metrics.Window
}

// SendDigestUseCase emails users the summary of the previous calendar month.
type SendDigestUseCase struct {
	loader   *dashboard.SnapshotLoader
	userRepo adapter.UserRepository
	renderer adapter.DigestRenderer
	sender   adapter.EmailSender
	clock    adapter.Clock
}

// NewSendDigestUseCase creates a new SendDigestUseCase instance.
func NewSendDigestUseCase(
	loader *dashboard.SnapshotLoader,
	userRepo adapter.UserRepository,
	renderer adapter.DigestRenderer,
	sender adapter.EmailSender,
	clock adapter.Clock,
) *SendDigestUseCase {
	return &SendDigestUseCase{
		loader:   loader,
		userRepo: userRepo,
		renderer: renderer,
		sender:   sender,
		clock:    clock,
	}
}

// Execute sends the digest to one user.
func (uc *SendDigestUseCase) Execute(ctx context.Context, input SendDigestInput) (*SendDigestOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return uc.send(ctx, user, uc.clock.Now())
}

// ExecuteAll sends the digest to every user. Failures are logged per user and do not stop the run.
func (uc *SendDigestUseCase) ExecuteAll(ctx context.Context) (int, error) {
	users, err := uc.userRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	now := uc.clock.Now()
	sent := 0
	for _, user := range users {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		if _, err := uc.send(ctx, user, now); err != nil {
			slog.Error("Failed to send monthly digest",
				"user_id", user.ID,
				"temporary", domainerror.IsTemporaryEmailFailure(err),
				"error", err,
			)
			continue
		}
		sent++
	}
	return sent, nil
}

func (uc *SendDigestUseCase) send(ctx context.Context, user *entity.User, now time.Time) (*SendDigestOutput, error) {
	snapshot, err := uc.loader.Load(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	period := metrics.PreviousMonth(now)
	data := BuildDigest(snapshot, user.Name, period)

	html, text, err := uc.renderer.RenderDigest(data)
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeDigestFailed,
			"failed to render digest",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	result, err := uc.sender.Send(ctx, adapter.SendEmailInput{
		To:      user.Email,
		Name:    user.Name,
		Subject: "Your Pocket Ledger summary for " + data.PeriodLabel,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeDigestFailed,
			"failed to send digest",
			err,
		)
	}

	slog.Info("Monthly digest sent", "user_id", user.ID, "period", data.PeriodLabel)
	return &SendDigestOutput{ProviderID: result.ProviderID, Period: period}, nil
}

// BuildDigest computes the digest figures of one calendar month.
func BuildDigest(s metrics.Snapshot, userName string, period metrics.Window) DigestData {
	inPeriod := make([]*entity.Transaction, 0)
	for _, t := range s.Transactions {
		if t != nil && period.Contains(t.Date) {
			inPeriod = append(inPeriod, t)
		}
	}

	flows := metrics.WindowedFlows(inPeriod, period)
	data := DigestData{
		UserName:      userName,
		PeriodLabel:   period.Start.Format("January 2006"),
		Income:        flows.Income.StringFixed(2),
		Expense:       flows.Expense.StringFixed(2),
		Net:           flows.Net().StringFixed(2),
		NetNegative:   flows.Net().IsNegative(),
		TopCategories: make([]DigestCategory, 0, DigestTopCategories),
		Budgets:       make([]DigestBudget, 0, len(s.Budgets)),
	}

	for i, c := range metrics.CategoryBreakdown(inPeriod, s.Categories, entity.CategoryTypeExpense) {
		if i == DigestTopCategories {
			break
		}
		data.TopCategories = append(data.TopCategories, DigestCategory{Name: c.Category.Name, Amount: c.Total.StringFixed(2)})
	}

	// Budget status is month-to-date relative to its reference, so the reference is the
	// last instant of the period.
	lookup := metrics.NewLookup(s.Accounts, s.Categories)
	for _, line := range metrics.BudgetStatus(s.Budgets, inPeriod, s.Categories, period.End.Add(-time.Nanosecond)) {
		data.Budgets = append(data.Budgets, DigestBudget{
			Name:        lookup.CategoryName(line.CategoryID),
			Budgeted:    line.Budgeted.StringFixed(2),
			Spent:       line.Spent.StringFixed(2),
			Remaining:   line.Remaining.StringFixed(2),
			PercentUsed: fmt.Sprintf("%.1f", line.PercentUsed),
			Overspent:   line.Overspent(),
		})
	}

	return data
}
