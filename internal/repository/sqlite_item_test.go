package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/testutil"
)

type itemFixture struct {
	projects      *SQLiteProjectRepo
	assemblies    *SQLiteAssemblyRepo
	subassemblies *SQLiteSubassemblyRepo
	items         *SQLiteItemRepo

	project *domain.Project
	asm     *domain.Assembly
	sub     *domain.Subassembly
}

func newItemFixture(t *testing.T) (*itemFixture, context.Context) {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &itemFixture{
		projects:      NewSQLiteProjectRepo(db),
		assemblies:    NewSQLiteAssemblyRepo(db),
		subassemblies: NewSQLiteSubassemblyRepo(db),
		items:         NewSQLiteItemRepo(db),
	}
	ctx := context.Background()

	f.project = testutil.NewTestProject("Fixture project")
	require.NoError(t, f.projects.Create(ctx, f.project))
	f.asm = testutil.NewTestAssembly(f.project.ID, "Frame")
	require.NoError(t, f.assemblies.Create(ctx, f.asm))
	f.sub = testutil.NewTestSubassembly(f.asm.ID)
	require.NoError(t, f.subassemblies.Create(ctx, f.sub))
	return f, ctx
}

func TestItemRepo_CreateAndGetByID(t *testing.T) {
	f, ctx := newItemFixture(t)

	arrived := time.Now().UTC().Truncate(time.Second)
	item := testutil.NewTestItem(f.asm.ID, "Side plate",
		testutil.WithItemPrice("310.00", 2),
		testutil.WithSupplier("Lakeside Steel"),
		testutil.WithReceived(arrived))
	require.NoError(t, f.items.Create(ctx, item))

	fetched, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Side plate", fetched.Name)
	assert.Equal(t, "Lakeside Steel", fetched.Supplier)
	assert.Equal(t, 2, fetched.QtyRequired)
	assert.True(t, fetched.Received)
	require.NotNil(t, fetched.ArrivedDate)
	assert.True(t, fetched.ArrivedDate.Equal(arrived))
	require.NotNil(t, fetched.AssemblyID)
	assert.Equal(t, f.asm.ID, *fetched.AssemblyID)
	assert.Nil(t, fetched.SubassemblyID)
}

func TestItemRepo_CreateRejectsAmbiguousOwner(t *testing.T) {
	f, ctx := newItemFixture(t)

	item := testutil.NewTestItem(f.asm.ID, "Orphan")
	item.SubassemblyID = &f.sub.ID
	err := f.items.Create(ctx, item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestItemRepo_ListByProjectAndAssembly(t *testing.T) {
	f, ctx := newItemFixture(t)

	require.NoError(t, f.items.Create(ctx, testutil.NewTestItem(f.asm.ID, "Plate")))
	require.NoError(t, f.items.Create(ctx, testutil.NewTestItem(f.asm.ID, "Brace")))
	// Subassembly items are not direct children of the assembly.
	require.NoError(t, f.items.Create(ctx, testutil.NewTestSubassemblyItem(f.sub.ID, "Shaft")))

	list, err := f.items.ListByProjectAndAssembly(ctx, f.project.ID, f.asm.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Wrong project scopes to nothing.
	list, err = f.items.ListByProjectAndAssembly(ctx, "other-project", f.asm.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemRepo_ListBySubassembly(t *testing.T) {
	f, ctx := newItemFixture(t)

	require.NoError(t, f.items.Create(ctx, testutil.NewTestSubassemblyItem(f.sub.ID, "Shaft")))
	require.NoError(t, f.items.Create(ctx, testutil.NewTestSubassemblyItem(f.sub.ID, "Bearing")))

	list, err := f.items.ListBySubassembly(ctx, f.sub.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestItemRepo_SetReceived(t *testing.T) {
	f, ctx := newItemFixture(t)

	item := testutil.NewTestItem(f.asm.ID, "Bolt kit")
	require.NoError(t, f.items.Create(ctx, item))

	arrived := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, f.items.SetReceived(ctx, item.ID, true, &arrived))

	fetched, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Received)
	require.NotNil(t, fetched.ArrivedDate)
	assert.True(t, fetched.ArrivedDate.Equal(arrived))

	// Unreceive clears the arrival date.
	require.NoError(t, f.items.SetReceived(ctx, item.ID, false, nil))
	fetched, err = f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Received)
	assert.Nil(t, fetched.ArrivedDate)
}

func TestItemRepo_SetReceived_NotFound(t *testing.T) {
	f, ctx := newItemFixture(t)

	err := f.items.SetReceived(ctx, "nonexistent", true, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
