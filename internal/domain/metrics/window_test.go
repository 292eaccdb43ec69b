package metrics

import (
	"testing"
	"time"
)

func TestWindows(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		window    Window
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "rolling 30 days",
			window:    RollingWindow(now, 30),
			wantStart: time.Date(2026, time.February, 13, 12, 30, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:      "month to date",
			window:    MonthToDate(now),
			wantStart: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:      "calendar month",
			window:    CalendarMonth(2026, time.December, time.UTC),
			wantStart: time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "calendar year",
			window:    CalendarYear(2026, time.UTC),
			wantStart: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "previous month across year boundary",
			window:    PreviousMonth(time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)),
			wantStart: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.window.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %s, got %s", tt.wantStart, tt.window.Start)
			}
			if !tt.window.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %s, got %s", tt.wantEnd, tt.window.End)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{
		Start: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
	}

	if !w.Contains(w.Start) {
		t.Error("start must be inside the window")
	}
	if w.Contains(w.End) {
		t.Error("end must be outside the window")
	}
	if w.Contains(w.Start.Add(-time.Second)) {
		t.Error("instant before start must be outside the window")
	}
}
