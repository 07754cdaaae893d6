package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/testutil"
)

func TestAssignmentRepo_ListByProjectAndRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(db)
	users := NewSQLiteUserRepo(db)
	assignments := NewSQLiteAssignmentRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Assignments")
	require.NoError(t, projects.Create(ctx, proj))

	manager := testutil.NewTestUser("D. Okafor")
	operator := testutil.NewTestUser("M. Reyes")
	require.NoError(t, users.Create(ctx, manager))
	require.NoError(t, users.Create(ctx, operator))

	require.NoError(t, assignments.Create(ctx, testutil.NewTestAssignment(proj.ID, manager.ID, domain.RoleManager)))
	require.NoError(t, assignments.Create(ctx, testutil.NewTestAssignment(proj.ID, operator.ID, domain.RoleOperator)))

	managers, err := assignments.ListByProjectAndRole(ctx, proj.ID, domain.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "D. Okafor", managers[0].UserName)
	assert.Equal(t, domain.RoleManager, managers[0].Role)

	operators, err := assignments.ListByProjectAndRole(ctx, proj.ID, domain.RoleOperator)
	require.NoError(t, err)
	require.Len(t, operators, 1)
	assert.Equal(t, "M. Reyes", operators[0].UserName)
}

func TestAssignmentRepo_DuplicateRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(db)
	users := NewSQLiteUserRepo(db)
	assignments := NewSQLiteAssignmentRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Dup")
	require.NoError(t, projects.Create(ctx, proj))
	u := testutil.NewTestUser("Solo")
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, assignments.Create(ctx, testutil.NewTestAssignment(proj.ID, u.ID, domain.RoleManager)))
	err := assignments.Create(ctx, testutil.NewTestAssignment(proj.ID, u.ID, domain.RoleManager))
	assert.Error(t, err)

	// Same user in the other role is allowed.
	require.NoError(t, assignments.Create(ctx, testutil.NewTestAssignment(proj.ID, u.ID, domain.RoleOperator)))
}

func TestUserRepo_GetByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	ctx := context.Background()

	u := testutil.NewTestUser("Lookup")
	require.NoError(t, users.Create(ctx, u))

	fetched, err := users.GetByName(ctx, "Lookup")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)

	_, err = users.GetByName(ctx, "Missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
