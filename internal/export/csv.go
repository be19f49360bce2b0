package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/andersvik/timetrack/internal/domain"
)

type csvExporter struct{}

func NewCSVExporter() Exporter {
	return csvExporter{}
}

func (csvExporter) Format() Format { return FormatCSV }

// Write renders one row per task plus subtotal and total rows. Invoice
// summaries carry rate and cost columns; timesheets stop at hours.
func (csvExporter) Write(summary *domain.ReportSummary, w io.Writer) error {
	cw := csv.NewWriter(w)
	invoice := summary.ReportType == domain.ReportInvoice

	preamble := [][]string{
		{"Customer", summary.CustomerName},
		{"Report", string(summary.ReportType)},
		{"From", summary.StartDate.Format("2006-01-02")},
		{"To", summary.EndDate.Format("2006-01-02")},
		{},
	}
	for _, row := range preamble {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv preamble: %w", err)
		}
	}

	header := []string{"Contract", "Project", "Task", "Hours"}
	if invoice {
		header = append(header, "Daily Rate", "Currency", "Cost")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, contract := range summary.Contracts {
		for _, project := range contract.Projects {
			for _, task := range project.Tasks {
				row := []string{contract.ContractName, project.ProjectName, task.TaskName, formatHours(task.TotalHours)}
				if invoice {
					row = append(row, "", "", "")
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("writing csv row: %w", err)
				}
			}
		}

		subtotal := []string{contract.ContractName, "", "Subtotal", formatHours(contract.TotalHours)}
		if invoice {
			subtotal = append(subtotal,
				formatMoney(contract.DailyRate),
				contract.Currency,
				formatMoney(domain.Float64FromPtrWithDefault(0, contract.TotalCost)),
			)
		}
		if err := cw.Write(subtotal); err != nil {
			return fmt.Errorf("writing csv subtotal: %w", err)
		}
	}

	total := []string{"", "", "Total", formatHours(summary.TotalHours)}
	if invoice {
		total = append(total, "", "", formatMoney(domain.Float64FromPtrWithDefault(0, summary.TotalCost)))
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing csv total: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
