package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/cli/formatter"
	"github.com/andersvik/timetrack/internal/domain"
	"github.com/andersvik/timetrack/internal/export"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build invoice and timesheet reports",
	}

	cmd.AddCommand(
		newReportShowCmd(app),
		newReportExportCmd(app),
	)

	return cmd
}

func reportFlags(cmd *cobra.Command, customerID, month, reportType *string) {
	cmd.Flags().StringVar(customerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(month, "month", "", "Report month as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(reportType, "type", string(domain.ReportTimesheet), "Report type: invoice or timesheet")
	_ = cmd.MarkFlagRequired("customer")
}

func parseMonth(month string) (int, time.Month, error) {
	if month == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return t.Year(), t.Month(), nil
}

func newReportShowCmd(app *App) *cobra.Command {
	var customerID, month, reportType string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a monthly report",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			summary, err := app.Reports.GenerateMonthly(context.Background(), customerID, year, m, domain.ReportType(reportType))
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderReport(summary))
			return nil
		},
	}

	reportFlags(cmd, &customerID, &month, &reportType)
	return cmd
}

func newReportExportCmd(app *App) *cobra.Command {
	var customerID, month, reportType, format, outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a monthly report to CSV or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			exporter, err := export.ForFormat(export.Format(format))
			if err != nil {
				return err
			}

			summary, err := app.Reports.GenerateMonthly(context.Background(), customerID, year, m, domain.ReportType(reportType))
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = app.ExportDir
			}
			ref, err := export.ToFile(exporter, summary, dir)
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", ref.Path)
			return nil
		},
	}

	reportFlags(cmd, &customerID, &month, &reportType)
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "Export format: csv or pdf")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: configured export dir)")
	return cmd
}
