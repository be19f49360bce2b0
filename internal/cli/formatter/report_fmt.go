package formatter

import (
	"fmt"
	"strings"

	"github.com/andersvik/timetrack/internal/domain"
)

// RenderReport renders a report summary as an indented contract tree with
// per-level subtotals. Cost lines only appear on invoice summaries.
func RenderReport(summary *domain.ReportSummary) string {
	var b strings.Builder
	invoice := summary.ReportType == domain.ReportInvoice

	title := fmt.Sprintf("%s %s", summary.CustomerName, summary.ReportType)
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s - %s (%d days)",
		summary.StartDate.Format("2006-01-02"),
		summary.EndDate.Format("2006-01-02"),
		summary.TotalDays,
	)))
	b.WriteString("\n\n")

	if len(summary.Contracts) == 0 {
		b.WriteString(Dim("No time recorded in this period.\n"))
		return b.String()
	}

	for _, contract := range summary.Contracts {
		b.WriteString(Bold(contract.ContractName))
		if invoice && contract.ContractID != "" {
			b.WriteString(Dim(fmt.Sprintf("  (%s/day)", FormatMoney(contract.DailyRate, contract.Currency))))
		}
		b.WriteString("\n")

		for _, project := range contract.Projects {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleBlue.Render(project.ProjectName), Dim(FormatHours(project.TotalHours))))
			for _, task := range project.Tasks {
				b.WriteString(fmt.Sprintf("    %s  %s\n", task.TaskName, FormatHours(task.TotalHours)))
			}
		}

		subtotal := FormatHours(contract.TotalHours)
		if invoice && contract.TotalCost != nil {
			subtotal = fmt.Sprintf("%s, %s", subtotal, FormatMoney(*contract.TotalCost, contract.Currency))
		}
		b.WriteString(fmt.Sprintf("  %s %s\n\n", Dim("subtotal:"), subtotal))
	}

	total := FormatHours(summary.TotalHours)
	if invoice && summary.TotalCost != nil {
		total = fmt.Sprintf("%s, %.2f", total, *summary.TotalCost)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Total:"), total))
	return b.String()
}
