package rbac

import (
	"context"
	"testing"

	"go-workforce/internal/domain"
	"go-workforce/internal/rbac/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	assignments []EmployeeRole
	grants      []grantRow
	roles       map[uuid.UUID]*Role
}

func newRepoFake() *fakeRepo {
	return &fakeRepo{roles: make(map[uuid.UUID]*Role)}
}

func (f *fakeRepo) GetEmployeeRoles(ctx context.Context) ([]EmployeeRole, error) {
	return f.assignments, nil
}

func (f *fakeRepo) GetRoleGrants(ctx context.Context) ([]grantRow, error) {
	return f.grants, nil
}

func (f *fakeRepo) ListRoles(ctx context.Context) ([]Role, error) {
	var out []Role
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) FindRoleByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateRole(ctx context.Context, role *Role) error {
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRepo) UpdateRole(ctx context.Context, role *Role) error {
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRepo) DeleteRole(ctx context.Context, id uuid.UUID) error {
	delete(f.roles, id)
	return nil
}

func (f *fakeRepo) ListPermissions(ctx context.Context) ([]Permission, error) { return nil, nil }

func (f *fakeRepo) GetPermissionsByRoleID(ctx context.Context, roleID uuid.UUID) ([]Permission, error) {
	return nil, nil
}

func (f *fakeRepo) ReplaceRolePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	return nil
}

func (f *fakeRepo) AssignRole(ctx context.Context, employeeID, roleID uuid.UUID) error {
	f.assignments = append(f.assignments, EmployeeRole{EmployeeID: employeeID, RoleID: roleID})
	return nil
}

func (f *fakeRepo) UnassignRole(ctx context.Context, employeeID, roleID uuid.UUID) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.EmployeeID != employeeID || a.RoleID != roleID {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	return nil
}

func newServiceUnderTest(t *testing.T, repo Repository) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	return NewService(repo, enforcer)
}

func TestEnforceGrantsThroughRole(t *testing.T) {
	employeeID := uuid.New()
	roleID := uuid.New()

	repo := newRepoFake()
	repo.assignments = []EmployeeRole{{EmployeeID: employeeID, RoleID: roleID}}
	repo.grants = []grantRow{
		{RoleID: roleID, Resource: "attendance", Action: "create"},
		{RoleID: roleID, Resource: "attendance", Action: "read"},
	}

	svc := newServiceUnderTest(t, repo)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		EmployeeID: employeeID.String(),
		Resource:   "attendance",
		Action:     "create",
	})
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		EmployeeID: employeeID.String(),
		Resource:   "attendance",
		Action:     "delete",
	})
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforceDeniesUnassignedEmployee(t *testing.T) {
	roleID := uuid.New()

	repo := newRepoFake()
	repo.grants = []grantRow{{RoleID: roleID, Resource: "shift", Action: "read"}}

	svc := newServiceUnderTest(t, repo)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		EmployeeID: uuid.New().String(),
		Resource:   "shift",
		Action:     "read",
	})
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforceReloadsAfterAssignmentChange(t *testing.T) {
	employeeID := uuid.New()
	roleID := uuid.New()

	repo := newRepoFake()
	repo.roles[roleID] = &Role{ID: roleID, Name: "scheduler"}
	repo.grants = []grantRow{{RoleID: roleID, Resource: "schedule", Action: "create"}}

	svc := newServiceUnderTest(t, repo)

	req := domain.EnforceRequest{
		EmployeeID: employeeID.String(),
		Resource:   "schedule",
		Action:     "create",
	}

	allowed, err := svc.Enforce(req)
	require.NoError(t, err)
	assert.False(t, allowed)

	err = svc.AssignRole(context.Background(), AssignRoleRequest{
		EmployeeID: employeeID.String(),
		RoleID:     roleID.String(),
	})
	require.NoError(t, err)

	allowed, err = svc.Enforce(req)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestUpdateRolePermissionsRejectsUnknownRole(t *testing.T) {
	svc := newServiceUnderTest(t, newRepoFake())

	err := svc.UpdateRolePermissions(context.Background(), uuid.New().String(), UpdateRolePermissionsRequest{
		PermissionIDs: []string{uuid.New().String()},
	})
	assert.Error(t, err)
}
