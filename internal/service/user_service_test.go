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

func TestUserService_CreateAndAssign(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(db)
	users := repository.NewSQLiteUserRepo(db)
	assignments := repository.NewSQLiteAssignmentRepo(db)
	svc := NewUserService(users, assignments)
	ctx := context.Background()

	proj := testutil.NewTestProject("Staffing")
	require.NoError(t, projects.Create(ctx, proj))

	u := &domain.User{Name: "R. Chen"}
	require.NoError(t, svc.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	a, err := svc.Assign(ctx, proj.ID, u.ID, domain.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	managers, err := assignments.ListByProjectAndRole(ctx, proj.ID, domain.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "R. Chen", managers[0].UserName)
}

func TestUserService_AssignRejectsUnknownRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(db)
	assignments := repository.NewSQLiteAssignmentRepo(db)
	svc := NewUserService(users, assignments)
	ctx := context.Background()

	_, err := svc.Assign(ctx, "p1", "u1", domain.AssignmentRole("supervisor"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assignment role")
}
