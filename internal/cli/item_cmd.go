package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mlindner/asmtrack/internal/domain"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage purchase items",
	}
	cmd.AddCommand(
		newItemAddCmd(app),
		newItemReceiveCmd(app, true),
		newItemReceiveCmd(app, false),
	)
	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var project, assembly, sub, name, number, supplier, price string
	var qty int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to an assembly or subassembly",
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

			item := &domain.Item{
				Name:        name,
				Number:      strings.ToUpper(number),
				Supplier:    supplier,
				QtyRequired: qty,
				Quantity:    qty,
			}
			if sub != "" {
				subs, err := app.Subassemblies.ListByAssembly(ctx, a.ID)
				if err != nil {
					return err
				}
				var owner *domain.Subassembly
				for _, s := range subs {
					if strings.EqualFold(s.Number, sub) {
						owner = s
						break
					}
				}
				if owner == nil {
					return fmt.Errorf("subassembly not found: %q", sub)
				}
				item.SubassemblyID = &owner.ID
			} else {
				item.AssemblyID = &a.ID
			}
			if price != "" {
				d, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", price, err)
				}
				item.Price = d
			}

			if err := app.Items.Create(ctx, item); err != nil {
				return err
			}
			fmt.Printf("Added item %q (%s)\n", item.Name, item.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number (required)")
	cmd.Flags().StringVar(&assembly, "assembly", "", "Assembly number (required)")
	cmd.Flags().StringVar(&sub, "sub", "", "Subassembly number; omit to attach directly to the assembly")
	cmd.Flags().StringVar(&name, "name", "", "Item name (required)")
	cmd.Flags().StringVar(&number, "number", "", "Item number")
	cmd.Flags().StringVar(&supplier, "supplier", "", "Supplier name")
	cmd.Flags().StringVar(&price, "price", "", "Unit price")
	cmd.Flags().IntVar(&qty, "qty", 1, "Required quantity")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("assembly")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newItemReceiveCmd builds both directions of the received flag flip.
func newItemReceiveCmd(app *App, received bool) *cobra.Command {
	use, short := "receive <item-id>", "Mark an item as received, stamping the arrival date"
	if !received {
		use, short = "unreceive <item-id>", "Mark an item as outstanding, clearing the arrival date"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Items.Receive(ctx, args[0], received); err != nil {
				return err
			}
			item, err := app.Items.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if received {
				fmt.Printf("Received %q\n", item.Name)
			} else {
				fmt.Printf("Marked %q outstanding\n", item.Name)
			}
			return nil
		},
	}
}
