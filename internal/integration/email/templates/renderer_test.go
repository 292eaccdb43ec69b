package templates

import (
	"strings"
	"testing"

	"github.com/pocketledger/backend/internal/application/usecase/report"
)

func TestRenderDigest(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	data := report.DigestData{
		UserName:    "Ana <script>",
		PeriodLabel: "February 2026",
		Income:      "45000.00",
		Expense:     "12160.00",
		Net:         "32840.00",
		TopCategories: []report.DigestCategory{
			{Name: "Food & Dining", Amount: "8500.00"},
		},
		Budgets: []report.DigestBudget{
			{Name: "Food & Dining", Budgeted: "8000.00", Spent: "8500.00", Remaining: "-500.00", PercentUsed: "106.3", Overspent: true},
		},
	}

	html, text, err := r.RenderDigest(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("html escapes user input", func(t *testing.T) {
		if strings.Contains(html, "<script>") {
			t.Error("expected user name to be escaped")
		}
		if !strings.Contains(html, "Food &amp; Dining") {
			t.Error("expected escaped category name")
		}
	})

	t.Run("text lists figures", func(t *testing.T) {
		for _, want := range []string{"February 2026", "45000.00", "1. Food & Dining: 8500.00", "OVER BUDGET"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected text to contain %q", want)
			}
		}
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		_, text, err := r.RenderDigest(report.DigestData{UserName: "Bob", PeriodLabel: "January 2026"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(text, "Budgets:") || strings.Contains(text, "Where the money went") {
			t.Error("expected no budget or category section")
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		if _, _, err := r.Render("password_reset", nil); err == nil {
			t.Error("expected an error for an unknown template")
		}
	})
}
