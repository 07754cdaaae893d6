package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlindner/asmtrack/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <number>",
		Short: "Fetch a project tree and print a one-shot status report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Fetcher.Fetch(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderSnapshot(snap))
			return nil
		},
	}
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with a demo project tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Seed.Seed(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Seeded demo project %s — try %s\n",
				formatter.Bold(p.Number),
				formatter.Dim("asmtrack status "+p.Number))
			return nil
		},
	}
}
