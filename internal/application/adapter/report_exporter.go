package adapter

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/domain/metrics"
)

// ExportRow is one transaction line of an exported report with references already resolved.
type ExportRow struct {
	Date     string
	Account  string
	Category string
	Type     string
	Amount   decimal.Decimal
	Note     string
}

// ReportExporter writes a transactions report into a spreadsheet document.
type ReportExporter interface {
	ExportTransactions(year int, rows []ExportRow, months []metrics.MonthlyFlow) ([]byte, error)
}
