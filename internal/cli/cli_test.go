package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/fetch"
	"github.com/mlindner/asmtrack/internal/mutation"
	"github.com/mlindner/asmtrack/internal/repository"
	"github.com/mlindner/asmtrack/internal/service"
	"github.com/mlindner/asmtrack/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI
// integration tests. The scheduler's debounce window is shortened so
// tests stay fast.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	projRepo := repository.NewSQLiteProjectRepo(database)
	assemblyRepo := repository.NewSQLiteAssemblyRepo(database)
	subRepo := repository.NewSQLiteSubassemblyRepo(database)
	itemRepo := repository.NewSQLiteItemRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	source := repository.NewSourceAdapter(projRepo, assemblyRepo, subRepo, itemRepo, assignmentRepo)

	return &App{
		Projects:      service.NewProjectService(projRepo),
		Assemblies:    service.NewAssemblyService(assemblyRepo),
		Subassemblies: service.NewSubassemblyService(subRepo),
		Items:         service.NewItemService(itemRepo),
		Users:         service.NewUserService(userRepo, assignmentRepo),
		Seed:          service.NewSeedService(db.NewSQLiteUnitOfWork(database)),

		Fetcher:   fetch.NewFetcher(source, nil),
		Mutations: mutation.NewController(source),
		Quiet:     10 * time.Millisecond,
	}
}

// seedTree creates a project with one assembly, one subassembly and
// three items for TUI tests.
func seedTree(t *testing.T, app *App) (*domain.Project, *domain.Item) {
	t.Helper()
	ctx := context.Background()

	proj := testutil.NewTestProject("TUI test", testutil.WithProjectNumber("2024-900"))
	require.NoError(t, app.Projects.Create(ctx, proj))

	asm := testutil.NewTestAssembly(proj.ID, "Frame")
	require.NoError(t, app.Assemblies.Create(ctx, asm))
	sub := testutil.NewTestSubassembly(asm.ID)
	require.NoError(t, app.Subassemblies.Create(ctx, sub))

	item := testutil.NewTestItem(asm.ID, "Side plate")
	require.NoError(t, app.Items.Create(ctx, item))
	require.NoError(t, app.Items.Create(ctx, testutil.NewTestItem(asm.ID, "Cross brace")))
	require.NoError(t, app.Items.Create(ctx, testutil.NewTestSubassemblyItem(sub.ID, "Shaft")))

	return proj, item
}

func mustGetItem(t *testing.T, app *App, id string) *domain.Item {
	t.Helper()
	item, err := app.Items.GetByID(context.Background(), id)
	require.NoError(t, err)
	return item
}
