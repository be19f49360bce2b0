package cli

import (
	"context"
	"fmt"

	"github.com/andersvik/timetrack/internal/cli/formatter"
	"github.com/andersvik/timetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	cmd.AddCommand(
		newCustomerAddCmd(app),
		newCustomerListCmd(app),
		newCustomerArchiveCmd(app),
		newCustomerRemoveCmd(app),
	)

	return cmd
}

func newCustomerAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customer := &domain.Customer{Name: args[0]}
			if err := app.Customers.Create(context.Background(), customer); err != nil {
				return err
			}
			fmt.Printf("Added customer %s (%s)\n", customer.Name, customer.ID)
			return nil
		},
	}
}

func newCustomerListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.Customers.List(context.Background(), includeArchived)
			if err != nil {
				return err
			}
			if len(customers) == 0 {
				fmt.Println("No customers found.")
				return nil
			}

			headers := []string{"ID", "NAME", "STATUS"}
			rows := make([][]string, 0, len(customers))
			for _, c := range customers {
				rows = append(rows, []string{
					formatter.TruncID(c.ID),
					c.Name,
					formatter.ArchivedPill(c.ArchivedAt != nil),
				})
			}
			fmt.Print(formatter.RenderBox("Customers", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived customers")
	return cmd
}

func newCustomerArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Customers.Archive(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Archived customer %s\n", args[0])
			return nil
		},
	}
}

func newCustomerRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a customer and everything underneath it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.confirm("Delete this customer and all its contracts, projects and tasks?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := app.Customers.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed customer %s\n", args[0])
			return nil
		},
	}
}
