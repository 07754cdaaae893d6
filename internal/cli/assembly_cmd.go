package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mlindner/asmtrack/internal/domain"
)

func newAssemblyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assembly",
		Short: "Manage assemblies",
	}
	cmd.AddCommand(newAssemblyAddCmd(app))
	return cmd
}

func newAssemblyAddCmd(app *App) *cobra.Command {
	var project, number, description, price, delivery string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an assembly to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}

			a := &domain.Assembly{
				ProjectID:   p.ID,
				Number:      strings.ToUpper(number),
				Description: description,
			}
			if price != "" {
				d, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", price, err)
				}
				a.Price = d
			}
			if delivery != "" {
				d, err := time.Parse("2006-01-02", delivery)
				if err != nil {
					return fmt.Errorf("invalid delivery date %q: %w", delivery, err)
				}
				a.DeliveryDate = &d
			}

			if err := app.Assemblies.Create(ctx, a); err != nil {
				return err
			}
			fmt.Printf("Added assembly %s to %s\n", a.Number, p.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number (required)")
	cmd.Flags().StringVar(&number, "number", "", "Assembly number (required)")
	cmd.Flags().StringVar(&description, "desc", "", "Short description")
	cmd.Flags().StringVar(&price, "price", "", "Assembly price")
	cmd.Flags().StringVar(&delivery, "delivery", "", "Delivery date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newSubCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Manage subassemblies",
	}
	cmd.AddCommand(newSubAddCmd(app))
	return cmd
}

func newSubAddCmd(app *App) *cobra.Command {
	var project, assembly, number string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subassembly to an assembly",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			a, err := resolveAssembly(ctx, app, p.ID, assembly)
			if err != nil {
				return err
			}

			s := &domain.Subassembly{
				AssemblyID: a.ID,
				Number:     strings.ToUpper(number),
			}
			if err := app.Subassemblies.Create(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Added subassembly %s to %s\n", s.Number, a.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number (required)")
	cmd.Flags().StringVar(&assembly, "assembly", "", "Assembly number (required)")
	cmd.Flags().StringVar(&number, "number", "", "Subassembly number (required)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("assembly")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}
