package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindner/asmtrack/internal/testutil"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	delivery := time.Now().UTC().AddDate(0, 3, 0)
	proj := testutil.NewTestProject("Hydraulic press retrofit",
		testutil.WithDeliveryDate(delivery),
		testutil.WithMaterialCost("12400.00"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Hydraulic press retrofit", fetched.Description)
	assert.True(t, fetched.MaterialCost.Equal(decimal.RequireFromString("12400.00")))
	require.NotNil(t, fetched.DeliveryDate)
	assert.Equal(t, delivery.Format("2006-01-02"), fetched.DeliveryDate.Format("2006-01-02"))
}

func TestProjectRepo_GetByNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Conveyor line", testutil.WithProjectNumber("2024-041"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByNumber(ctx, "2024-041")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "2024-041", fetched.Number)
}

func TestProjectRepo_GetByNumber_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	_, err := repo.GetByNumber(ctx, "9999-999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepo_List_OrderedByNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("B", testutil.WithProjectNumber("2024-902"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("A", testutil.WithProjectNumber("2024-901"))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-901", list[0].Number)
	assert.Equal(t, "2024-902", list[1].Number)
}

func TestProjectRepo_DuplicateNumberRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("First", testutil.WithProjectNumber("2024-777"))))
	err := repo.Create(ctx, testutil.NewTestProject("Second", testutil.WithProjectNumber("2024-777")))
	assert.Error(t, err)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Orig")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Description = "Renamed"
	proj.Completed = true
	proj.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Description)
	assert.True(t, fetched.Completed)
}

func TestProjectRepo_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(db)
	assemblies := NewSQLiteAssemblyRepo(db)
	items := NewSQLiteItemRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Doomed")
	require.NoError(t, projects.Create(ctx, proj))
	asm := testutil.NewTestAssembly(proj.ID, "Frame")
	require.NoError(t, assemblies.Create(ctx, asm))
	require.NoError(t, items.Create(ctx, testutil.NewTestItem(asm.ID, "Plate")))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	_, err := assemblies.GetByID(ctx, asm.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	remaining, err := items.ListByAssembly(ctx, asm.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
