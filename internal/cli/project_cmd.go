package cli

import (
	"context"
	"fmt"

	"github.com/andersvik/timetrack/internal/cli/formatter"
	"github.com/andersvik/timetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var customerID, name, contractID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			project := &domain.Project{
				CustomerID: customerID,
				Name:       name,
			}
			if contractID != "" {
				project.ContractID = &contractID
			}
			if err := app.Projects.Create(context.Background(), project); err != nil {
				return err
			}
			fmt.Printf("Added project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&contractID, "contract", "", "Contract funding this project")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var customerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var projects []*domain.Project
			var err error
			if customerID != "" {
				projects, err = app.Projects.ListByCustomer(ctx, customerID)
			} else {
				projects, err = app.Projects.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			headers := []string{"ID", "NAME", "CUSTOMER", "CONTRACT"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				contract := formatter.Dim("--")
				if p.HasContract() {
					contract = formatter.TruncID(*p.ContractID)
				}
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					p.Name,
					formatter.TruncID(p.CustomerID),
					contract,
				})
			}
			fmt.Print(formatter.RenderBox("Projects", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "Filter by customer ID")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.confirm("Delete this project and all its tasks?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := app.Projects.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", args[0])
			return nil
		},
	}
}
