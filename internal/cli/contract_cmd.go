package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andersvik/timetrack/internal/cli/formatter"
	"github.com/andersvik/timetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage customer contracts",
	}

	cmd.AddCommand(
		newContractAddCmd(app),
		newContractListCmd(app),
		newContractRemoveCmd(app),
	)

	return cmd
}

func newContractAddCmd(app *App) *cobra.Command {
	var customerID, name, currency, from, to string
	var dailyRate float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			endDate, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}

			if currency == "" {
				currency = app.DefaultCurrency
			}
			contract := &domain.Contract{
				CustomerID: customerID,
				Name:       name,
				DailyRate:  dailyRate,
				Currency:   currency,
				StartDate:  startDate,
				EndDate:    endDate,
			}
			if err := app.Contracts.Create(context.Background(), contract); err != nil {
				return err
			}
			fmt.Printf("Added contract %s (%s)\n", contract.Name, contract.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(&name, "name", "", "Contract name")
	cmd.Flags().Float64Var(&dailyRate, "rate", 0, "Daily rate for an eight-hour day")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (default from config)")
	cmd.Flags().StringVar(&from, "from", "", "Validity start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Validity end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newContractListCmd(app *App) *cobra.Command {
	var customerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts for a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			contracts, err := app.Contracts.ListByCustomer(context.Background(), customerID)
			if err != nil {
				return err
			}
			if len(contracts) == 0 {
				fmt.Println("No contracts found.")
				return nil
			}

			headers := []string{"ID", "NAME", "RATE", "VALID"}
			rows := make([][]string, 0, len(contracts))
			for _, c := range contracts {
				rows = append(rows, []string{
					formatter.TruncID(c.ID),
					c.Name,
					formatter.FormatMoney(c.DailyRate, c.Currency),
					formatter.Dim(fmt.Sprintf("%s - %s", c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))),
				})
			}
			fmt.Print(formatter.RenderBox("Contracts", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "Customer ID")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}

func newContractRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a contract, detaching its projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.confirm("Delete this contract? Its projects stay, but become unbilled.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := app.Contracts.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed contract %s\n", args[0])
			return nil
		},
	}
}
