package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mlindner/asmtrack/internal/fetch"
	"github.com/mlindner/asmtrack/internal/mutation"
	"github.com/mlindner/asmtrack/internal/service"
)

// App bundles the services and tree machinery the commands and TUI
// run against.
type App struct {
	Projects      service.ProjectService
	Assemblies    service.AssemblyService
	Subassemblies service.SubassemblyService
	Items         service.ItemService
	Users         service.UserService
	Seed          service.SeedService

	Fetcher   *fetch.Fetcher
	Mutations *mutation.Controller

	// Quiet overrides the tree scheduler's debounce window; zero uses
	// the default.
	Quiet time.Duration
	Log   *logrus.Logger

	// IsInteractive reports whether stdin is a terminal; when it is,
	// the bare command opens the TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "asmtrack" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "asmtrack",
		Short: "Procurement tree tracker for manufacturing projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newAssemblyCmd(app),
		newSubCmd(app),
		newItemCmd(app),
		newUserCmd(app),
		newAssignCmd(app),
		newStatusCmd(app),
		newSeedCmd(app),
		newTUICmd(app),
	)

	return root
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive tree browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

func runTUI(app *App) error {
	m := newAppModel(app)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
