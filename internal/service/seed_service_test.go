package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/fetch"
	"github.com/mlindner/asmtrack/internal/repository"
	"github.com/mlindner/asmtrack/internal/testutil"
	"github.com/mlindner/asmtrack/internal/tree"
)

func TestSeedService_ProducesFetchableTree(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewSeedService(db.NewSQLiteUnitOfWork(database))
	ctx := context.Background()

	proj, err := svc.Seed(ctx)
	require.NoError(t, err)
	require.NotNil(t, proj)

	adapter := repository.NewSourceAdapter(
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteAssemblyRepo(database),
		repository.NewSQLiteSubassemblyRepo(database),
		repository.NewSQLiteItemRepo(database),
		repository.NewSQLiteAssignmentRepo(database),
	)
	snap, err := fetch.NewFetcher(adapter, nil).Fetch(ctx, proj.Number)
	require.NoError(t, err)

	require.Len(t, snap.Assemblies.Nodes, 2)
	require.Len(t, snap.Managers.Assignments, 1)
	require.Len(t, snap.Operators.Assignments, 1)

	received, total := tree.ProjectCounts(snap)
	assert.Equal(t, 3, received)
	assert.Equal(t, 6, total)
	assert.False(t, snap.Project.MaterialCost.IsZero())
}

func TestSeedService_SecondRunFailsCleanly(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewSeedService(db.NewSQLiteUnitOfWork(database))
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	// The demo project number is fixed, so reseeding the same database
	// hits the unique constraint and rolls back.
	_, err = svc.Seed(ctx)
	require.Error(t, err)

	projects, err := repository.NewSQLiteProjectRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}
