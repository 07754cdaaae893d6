package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/repository"
	"github.com/mlindner/asmtrack/internal/testutil"
)

func TestProjectService_CreateValidatesNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewProjectService(repository.NewSQLiteProjectRepo(db))
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Project{Number: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project number")

	good := &domain.Project{Number: "2024-100", Description: "Valid"}
	require.NoError(t, svc.Create(ctx, good))
	assert.NotEmpty(t, good.ID)

	fetched, err := svc.GetByNumber(ctx, "2024-100")
	require.NoError(t, err)
	assert.Equal(t, good.ID, fetched.ID)
}
