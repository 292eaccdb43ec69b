package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/usecase/dashboard"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// ExportDateLayout is the date format used in exported rows.
const ExportDateLayout = "2006-01-02"

// ExportTransactionsInput represents the input for the yearly export. A zero Year means the current year.
type ExportTransactionsInput struct {
	UserID uuid.UUID
	Year   int
}

// ExportTransactionsOutput is the produced document.
type ExportTransactionsOutput struct {
	Filename string
	Content  []byte
	Rows     int
}

// ExportTransactionsUseCase writes one year of transactions into a spreadsheet.
type ExportTransactionsUseCase struct {
	loader   *dashboard.SnapshotLoader
	exporter adapter.ReportExporter
	clock    adapter.Clock
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(loader *dashboard.SnapshotLoader, exporter adapter.ReportExporter, clock adapter.Clock) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		loader:   loader,
		exporter: exporter,
		clock:    clock,
	}
}

// Execute produces the export, oldest transaction first.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	if err := dashboard.ValidateYear(input.Year); err != nil {
		return nil, err
	}

	snapshot, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	loc := now.Location()
	year := input.Year
	if year == 0 {
		year = now.Year()
	}
	window := metrics.CalendarYear(year, loc)

	inYear := make([]*entity.Transaction, 0)
	for _, t := range snapshot.Transactions {
		if t != nil && window.Contains(t.Date) {
			inYear = append(inYear, t)
		}
	}
	sort.SliceStable(inYear, func(i, j int) bool { return inYear[i].Date.Before(inYear[j].Date) })

	lookup := metrics.NewLookup(snapshot.Accounts, snapshot.Categories)
	rows := make([]adapter.ExportRow, 0, len(inYear))
	for _, t := range inYear {
		rows = append(rows, adapter.ExportRow{
			Date:     t.Date.In(loc).Format(ExportDateLayout),
			Account:  lookup.AccountName(t.AccountID),
			Category: lookup.CategoryName(t.CategoryID),
			Type:     string(t.Type),
			Amount:   t.Amount,
			Note:     t.Note,
		})
	}

	content, err := uc.exporter.ExportTransactions(year, rows, metrics.MonthlySeries(inYear, year, loc))
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeExportFailed,
			"failed to export transactions",
			fmt.Errorf("%w: %w", domainerror.ErrExportFailed, err),
		)
	}

	return &ExportTransactionsOutput{
		Filename: fmt.Sprintf("transactions-%d.xlsx", year),
		Content:  content,
		Rows:     len(rows),
	}, nil
}
