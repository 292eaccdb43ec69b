package adapters

import (
	"context"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
)

func TestGeminiAdvisor_Unconfigured(t *testing.T) {
	advisor := NewGeminiAdvisor("", "")

	if advisor.IsAvailable() {
		t.Error("expected advisor without key to be unavailable")
	}
	if advisor.modelName != DefaultGeminiModel {
		t.Errorf("expected default model, got %s", advisor.modelName)
	}
	if _, err := advisor.Advise(context.Background(), adapter.AdviceRequest{}); err == nil {
		t.Error("expected error from unconfigured advisor")
	}
}

func TestBuildAdvicePrompt(t *testing.T) {
	prompt := buildAdvicePrompt(adapter.AdviceRequest{
		TotalBalance: decimal.NewFromInt(53500),
		TotalIncome:  decimal.NewFromInt(45000),
		TotalExpense: decimal.RequireFromString("12150.5"),
		ExpenseByName: []adapter.NamedAmount{
			{Name: "Housing", Amount: decimal.NewFromInt(12000)},
		},
		Language: "Portuguese",
	})

	for _, want := range []string{"53500.00", "45000.00", "12150.50", "- Housing: 12000.00", "- no accounts", "three", "Answer in Portuguese."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestExtractText(t *testing.T) {
	t.Run("joins text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("Spend less. "), genai.Text("Save more.")}}},
			},
		}
		got, err := extractText(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Spend less. Save more." {
			t.Errorf("unexpected text %q", got)
		}
	})

	t.Run("empty response", func(t *testing.T) {
		if _, err := extractText(&genai.GenerateContentResponse{}); err == nil {
			t.Error("expected error for empty response")
		}
	})
}
