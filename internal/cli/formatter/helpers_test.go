package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2.50 h", FormatHours(2.5))
	assert.Equal(t, "0.00 h", FormatHours(0))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "600.00 EUR", FormatMoney(600, "EUR"))
	assert.Equal(t, "12.34", FormatMoney(12.34, ""))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(0))
	assert.Equal(t, "00:00:59", FormatElapsed(59))
	assert.Equal(t, "01:30:05", FormatElapsed(5405))
	assert.Equal(t, "00:00:00", FormatElapsed(-3))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable([]string{"NAME", "HOURS"}, [][]string{
		{"Development", "4.00 h"},
		{"QA", "2.00 h"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Development")
	assert.Contains(t, lines[3], "QA")
}

func TestRenderReport(t *testing.T) {
	cost := 600.0
	summary := &domain.ReportSummary{
		CustomerName: "Acme",
		ReportType:   domain.ReportInvoice,
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
		TotalDays:    31,
		TotalHours:   6,
		TotalCost:    &cost,
		Contracts: []domain.ContractTimeData{{
			ContractID:   "ct1",
			ContractName: "Retainer",
			DailyRate:    800,
			Currency:     "EUR",
			TotalHours:   6,
			TotalCost:    &cost,
			Projects: []domain.ProjectTimeData{{
				ProjectName: "Website",
				TotalHours:  6,
				Tasks:       []domain.TaskTimeData{{TaskName: "Development", TotalHours: 6}},
			}},
		}},
	}

	out := RenderReport(summary)
	assert.Contains(t, out, "Retainer")
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "Development")
	assert.Contains(t, out, "600.00 EUR")

	summary.ReportType = domain.ReportTimesheet
	summary.TotalCost = nil
	summary.Contracts[0].TotalCost = nil
	out = RenderReport(summary)
	assert.NotContains(t, out, "600.00 EUR")
}

func TestRenderReportEmpty(t *testing.T) {
	summary := &domain.ReportSummary{
		CustomerName: "Acme",
		ReportType:   domain.ReportTimesheet,
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
		TotalDays:    31,
	}
	assert.Contains(t, RenderReport(summary), "No time recorded")
}
