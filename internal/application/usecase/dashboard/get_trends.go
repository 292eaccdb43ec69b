package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/metrics"
)

// MinReportYear and MaxReportYear bound the years a trend or export can be requested for.
const (
	MinReportYear = 1970
	MaxReportYear = 9999
)

var monthAbbreviations = map[time.Month]string{
	time.January: "Jan", time.February: "Feb", time.March: "Mar", time.April: "Apr",
	time.May: "May", time.June: "Jun", time.July: "Jul", time.August: "Aug",
	time.September: "Sep", time.October: "Oct", time.November: "Nov", time.December: "Dec",
}

// MonthLabel returns a short label such as "Mar 2026".
func MonthLabel(month time.Month, year int) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[month], year)
}

// GetTrendsInput represents the input for the trend report. A zero Year means the current year.
type GetTrendsInput struct {
	UserID uuid.UUID
	Year   int
}

// GetTrendsOutput represents the output of the trend report.
type GetTrendsOutput struct {
	Report metrics.TrendReport
}

// GetTrendsUseCase builds the monthly income and expense series of one year.
type GetTrendsUseCase struct {
	loader *SnapshotLoader
	clock  adapter.Clock
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(loader *SnapshotLoader, clock adapter.Clock) *GetTrendsUseCase {
	return &GetTrendsUseCase{loader: loader, clock: clock}
}

// Execute computes the trend report.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	if err := ValidateYear(input.Year); err != nil {
		return nil, err
	}

	snapshot, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if input.Year == 0 || input.Year == now.Year() {
		return &GetTrendsOutput{Report: metrics.BuildTrendReport(snapshot, now)}, nil
	}

	loc := now.Location()
	return &GetTrendsOutput{Report: metrics.TrendReport{
		Year:   input.Year,
		Months: metrics.MonthlySeries(snapshot.Transactions, input.Year, loc),
		Totals: metrics.WindowedFlows(snapshot.Transactions, metrics.CalendarYear(input.Year, loc)),
	}}, nil
}

// ValidateYear accepts zero (current year) or a year within the supported range.
func ValidateYear(year int) error {
	if year == 0 || (year >= MinReportYear && year <= MaxReportYear) {
		return nil
	}
	return domainerror.NewReportError(
		domainerror.ErrCodeInvalidReportYear,
		fmt.Sprintf("year must be between %d and %d", MinReportYear, MaxReportYear),
		domainerror.ErrInvalidReportYear,
	)
}
