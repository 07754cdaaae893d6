package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mlindner/asmtrack/internal/cli/formatter"
	"github.com/mlindner/asmtrack/internal/domain"
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
	var number, description, delivery, cost string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Number:      strings.ToUpper(number),
				Description: description,
			}
			if delivery != "" {
				d, err := time.Parse("2006-01-02", delivery)
				if err != nil {
					return fmt.Errorf("invalid delivery date %q: %w", delivery, err)
				}
				p.DeliveryDate = &d
			}
			if cost != "" {
				c, err := decimal.NewFromString(cost)
				if err != nil {
					return fmt.Errorf("invalid material cost %q: %w", cost, err)
				}
				p.MaterialCost = c
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", formatter.Bold(p.Number), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Project number, e.g. 2024-001 (required)")
	cmd.Flags().StringVar(&description, "desc", "", "Short description")
	cmd.Flags().StringVar(&delivery, "delivery", "", "Delivery date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&cost, "cost", "", "Budgeted material cost")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println(formatter.Dim("No projects."))
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				status := "open"
				if p.Completed {
					status = "complete"
				}
				due := "—"
				if p.DeliveryDate != nil {
					due = p.DeliveryDate.Format("2006-01-02")
				}
				rows = append(rows, []string{p.Number, p.Description, status, due, formatter.Money(p.MaterialCost)})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"NUMBER", "DESCRIPTION", "STATUS", "DELIVERY", "COST"}, rows))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Delete a project and its whole tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Projects.GetByNumber(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", p.Number)
			return nil
		},
	}
}

// resolveProject looks a project up by its human-facing number.
func resolveProject(ctx context.Context, app *App, number string) (*domain.Project, error) {
	return app.Projects.GetByNumber(ctx, number)
}

// resolveAssembly finds an assembly by number within a project.
func resolveAssembly(ctx context.Context, app *App, projectID, number string) (*domain.Assembly, error) {
	assemblies, err := app.Assemblies.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, a := range assemblies {
		if strings.EqualFold(a.Number, number) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("assembly not found: %q", number)
}
