package adapters

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

func TestXLSXExporter_ExportTransactions(t *testing.T) {
	rows := []adapter.ExportRow{
		{Date: "2026-03-02", Account: "Savings", Category: "Food & Dining", Type: "expense", Amount: decimal.RequireFromString("150.25"), Note: "lunch"},
		{Date: "2026-03-01", Account: "Unknown", Category: "Salary", Type: "income", Amount: decimal.NewFromInt(45000)},
	}
	months := metrics.MonthlySeries(nil, 2026, time.UTC)

	data, err := NewXLSXExporter().ExportTransactions(2026, rows, months)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	txRows, err := f.GetRows(transactionsSheet)
	if err != nil {
		t.Fatalf("failed to read transactions sheet: %v", err)
	}
	if len(txRows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(txRows))
	}
	if txRows[0][0] != "Date" || txRows[1][2] != "Food & Dining" || txRows[2][1] != "Unknown" {
		t.Errorf("unexpected transactions sheet: %v", txRows)
	}

	monthRows, err := f.GetRows(monthlySheet)
	if err != nil {
		t.Fatalf("failed to read monthly sheet: %v", err)
	}
	if len(monthRows) != 13 {
		t.Errorf("expected header plus 12 months, got %d", len(monthRows))
	}
	if monthRows[1][0] != "January" || monthRows[12][0] != "December" {
		t.Errorf("unexpected month labels: %v / %v", monthRows[1], monthRows[12])
	}
}
