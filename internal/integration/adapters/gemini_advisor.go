package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiAdvisor implements adapter.FinancialAdvisor using Google Gemini.
type GeminiAdvisor struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

// NewGeminiAdvisor creates a new Gemini advisor. An empty API key yields an advisor that
// reports itself unavailable.
func NewGeminiAdvisor(apiKey, modelName string) *GeminiAdvisor {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiAdvisor{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// WithTimeout bounds each Advise call. Zero leaves the caller's deadline in charge.
func (a *GeminiAdvisor) WithTimeout(d time.Duration) *GeminiAdvisor {
	a.timeout = d
	return a
}

// IsAvailable checks if the Gemini advisor is configured.
func (a *GeminiAdvisor) IsAvailable() bool {
	return a.apiKey != ""
}

// Advise asks Gemini for a short assessment of the snapshot and returns the raw text.
func (a *GeminiAdvisor) Advise(ctx context.Context, req adapter.AdviceRequest) (string, error) {
	if !a.IsAvailable() {
		return "", fmt.Errorf("gemini advisor is not configured")
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(a.modelName)
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(buildAdvicePrompt(req)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractText(resp)
}

func buildAdvicePrompt(req adapter.AdviceRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a friendly personal finance coach. Review the user's finances below.\n\n")

	fmt.Fprintf(&sb, "Total balance across accounts: %s\n", req.TotalBalance.StringFixed(2))
	fmt.Fprintf(&sb, "Total recorded income: %s\n", req.TotalIncome.StringFixed(2))
	fmt.Fprintf(&sb, "Total recorded expenses: %s\n", req.TotalExpense.StringFixed(2))

	sb.WriteString("\nSpending by category:\n")
	if len(req.ExpenseByName) == 0 {
		sb.WriteString("- no expenses recorded\n")
	}
	for _, c := range req.ExpenseByName {
		fmt.Fprintf(&sb, "- %s: %s\n", c.Name, c.Amount.StringFixed(2))
	}

	sb.WriteString("\nAccounts:\n")
	if len(req.AccountBalances) == 0 {
		sb.WriteString("- no accounts\n")
	}
	for _, acc := range req.AccountBalances {
		fmt.Fprintf(&sb, "- %s: %s\n", acc.Name, acc.Amount.StringFixed(2))
	}

	sb.WriteString(`
Reply with:
1. A short assessment of the user's financial health (two sentences at most).
2. Exactly three concrete, actionable tips.
3. One short encouraging closing line.
Keep it under 200 words and use plain text without markdown headings.`)

	if req.Language != "" {
		fmt.Fprintf(&sb, "\nAnswer in %s.", req.Language)
	}

	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

var _ adapter.FinancialAdvisor = (*GeminiAdvisor)(nil)
