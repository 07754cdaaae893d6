package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlindner/asmtrack/internal/cli/formatter"
	"github.com/mlindner/asmtrack/internal/domain"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd(app), newUserListCmd(app))
	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{Name: args[0]}
			if err := app.Users.Create(context.Background(), u); err != nil {
				return err
			}
			fmt.Printf("Created user %q (%s)\n", u.Name, formatter.TruncID(u.ID))
			return nil
		},
	}
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(context.Background())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println(formatter.Dim("No users."))
				return nil
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{u.Name, u.ID[:8]})
			}
			fmt.Print(formatter.RenderTable([]string{"NAME", "ID"}, rows))
			return nil
		},
	}
}

func newAssignCmd(app *App) *cobra.Command {
	var project, user, role string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a user to a project as manager or operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			u, err := app.Users.GetByName(ctx, user)
			if err != nil {
				return err
			}
			a, err := app.Users.Assign(ctx, p.ID, u.ID, domain.AssignmentRole(role))
			if err != nil {
				return err
			}
			fmt.Printf("Assigned %q to %s as %s\n", u.Name, p.Number, a.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number (required)")
	cmd.Flags().StringVar(&user, "user", "", "User name (required)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "Role: manager or operator")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
