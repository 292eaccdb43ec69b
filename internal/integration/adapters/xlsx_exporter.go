package adapters

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

const (
	transactionsSheet = "Transactions"
	monthlySheet      = "Monthly"
)

// XLSXExporter writes reports as Excel workbooks.
type XLSXExporter struct{}

// NewXLSXExporter creates a new Excel exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ExportTransactions builds a workbook with a transactions sheet and a monthly summary sheet.
func (e *XLSXExporter) ExportTransactions(year int, rows []adapter.ExportRow, months []metrics.MonthlyFlow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []interface{}{"Date", "Account", "Category", "Type", "Amount", "Note"}
	if err := f.SetSheetRow(transactionsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		amount, _ := r.Amount.Float64()
		values := []interface{}{r.Date, r.Account, r.Category, r.Type, amount, r.Note}
		if err := f.SetSheetRow(transactionsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, fmt.Errorf("failed to create monthly sheet: %w", err)
	}

	title := []interface{}{fmt.Sprintf("Year %d", year), "Income", "Expense", "Net"}
	if err := f.SetSheetRow(monthlySheet, "A1", &title); err != nil {
		return nil, fmt.Errorf("failed to write monthly header: %w", err)
	}

	for i, m := range months {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		income, _ := m.Income.Float64()
		expense, _ := m.Expense.Float64()
		net, _ := m.Income.Sub(m.Expense).Float64()
		values := []interface{}{m.Month.String(), income, expense, net}
		if err := f.SetSheetRow(monthlySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write month %s: %w", m.Month, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var _ adapter.ReportExporter = (*XLSXExporter)(nil)
