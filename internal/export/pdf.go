package export

import (
	"fmt"
	"io"

	"github.com/andersvik/timetrack/internal/domain"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

type pdfExporter struct{}

func NewPDFExporter() Exporter {
	return pdfExporter{}
}

func (pdfExporter) Format() Format { return FormatPDF }

func (pdfExporter) Write(summary *domain.ReportSummary, w io.Writer) error {
	invoice := summary.ReportType == domain.ReportInvoice

	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(reportTitle(summary.ReportType), props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				subtitle := fmt.Sprintf("%s, %s - %s",
					summary.CustomerName,
					summary.StartDate.Format("2006-01-02"),
					summary.EndDate.Format("2006-01-02"),
				)
				m.Text(subtitle, props.Text{
					Top:   3,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	headers := []string{"Project", "Task", "Hours"}
	grid := []uint{5, 5, 2}

	for _, contract := range summary.Contracts {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(contract.ContractName, props.Text{
					Top:   5,
					Style: consts.Bold,
					Size:  13,
				})
			})
		})

		var rows [][]string
		for _, project := range contract.Projects {
			for _, task := range project.Tasks {
				rows = append(rows, []string{project.ProjectName, task.TaskName, formatHours(task.TotalHours)})
			}
		}

		m.TableList(headers, rows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      10,
				GridSizes: grid,
			},
			ContentProp: props.TableListContent{
				Size:      10,
				GridSizes: grid,
			},
			Align:                consts.Left,
			AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
			HeaderContentSpace:   1,
			Line:                 false,
		})

		subtotal := fmt.Sprintf("Subtotal: %s h", formatHours(contract.TotalHours))
		if invoice {
			subtotal = fmt.Sprintf("Subtotal: %s h at %s %s/day = %s %s",
				formatHours(contract.TotalHours),
				formatMoney(contract.DailyRate),
				contract.Currency,
				formatMoney(domain.Float64FromPtrWithDefault(0, contract.TotalCost)),
				contract.Currency,
			)
		}
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(subtotal, props.Text{
					Style: consts.Bold,
					Align: consts.Right,
					Size:  10,
				})
			})
		})
		m.Row(5, func() {})
	}

	total := fmt.Sprintf("Total: %s h", formatHours(summary.TotalHours))
	if invoice {
		total = fmt.Sprintf("Total: %s h, %s", formatHours(summary.TotalHours),
			formatMoney(domain.Float64FromPtrWithDefault(0, summary.TotalCost)))
	}
	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(total, props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func reportTitle(reportType domain.ReportType) string {
	switch reportType {
	case domain.ReportInvoice:
		return "Invoice Report"
	case domain.ReportTimesheet:
		return "Timesheet"
	default:
		return "Report"
	}
}
