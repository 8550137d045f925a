package rbac

//go:generate mockgen -source=rbac_service.go -destination=mocks/rbac_service_mock.go -package=mocks

import (
	"context"
	"sync"

	"go-workforce/internal/domain"
	employeeerrors "go-workforce/internal/employee/errors"
	rbacerrors "go-workforce/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)

	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetRole(ctx context.Context, id string) (*RoleDetailResponse, error)
	CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error

	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
	UpdateRolePermissions(ctx context.Context, id string, req UpdateRolePermissionsRequest) error

	AssignRole(ctx context.Context, req AssignRoleRequest) error
	UnassignRole(ctx context.Context, req AssignRoleRequest) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger

	mu    sync.Mutex
	stale bool
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   zap.L().Named("rbac.service"),
		stale:    true,
	}
}

// Enforce answers the resource/action question for an employee. Policies are
// lazily reloaded from the database after any role or assignment write.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale {
		if err := s.loadPolicyUnlocked(); err != nil {
			return false, err
		}
		s.stale = false
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("enforce",
		zap.String("employee_id", req.EmployeeID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) loadPolicyUnlocked() error {
	s.enforcer.ClearPolicy()
	ctx := context.Background()

	assignments, err := s.repo.GetEmployeeRoles(ctx)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if _, err := s.enforcer.AddGroupingPolicy(a.EmployeeID.String(), a.RoleID.String()); err != nil {
			return err
		}
	}

	grants, err := s.repo.GetRoleGrants(ctx)
	if err != nil {
		return err
	}
	for _, g := range grants {
		if _, err := s.enforcer.AddPolicy(g.RoleID.String(), g.Resource, g.Action); err != nil {
			return err
		}
	}

	s.logger.Info("policy loaded",
		zap.Int("assignments", len(assignments)),
		zap.Int("grants", len(grants)),
	)
	return nil
}

func (s *service) invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *service) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, mapRoleToResponse(&r))
	}
	return out, nil
}

func (s *service) GetRole(ctx context.Context, id string) (*RoleDetailResponse, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, rbacerrors.ErrInvalidRoleID
	}

	role, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	perms, err := s.repo.GetPermissionsByRoleID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	resp := &RoleDetailResponse{
		RoleResponse: mapRoleToResponse(role),
		Permissions:  make([]PermissionResponse, 0, len(perms)),
	}
	for _, p := range perms {
		resp.Permissions = append(resp.Permissions, mapPermissionToResponse(&p))
	}
	return resp, nil
}

func (s *service) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	role := &Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := mapRoleToResponse(role)
	return &resp, nil
}

func (s *service) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, rbacerrors.ErrInvalidRoleID
	}

	role, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := mapRoleToResponse(role)
	return &resp, nil
}

func (s *service) DeleteRole(ctx context.Context, id string) error {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return rbacerrors.ErrInvalidRoleID
	}
	if _, err := s.repo.FindRoleByID(ctx, roleID); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.DeleteRole(ctx, roleID); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidate()
	return nil
}

func (s *service) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, mapPermissionToResponse(&p))
	}
	return out, nil
}

func (s *service) UpdateRolePermissions(ctx context.Context, id string, req UpdateRolePermissionsRequest) error {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return rbacerrors.ErrInvalidRoleID
	}
	if _, err := s.repo.FindRoleByID(ctx, roleID); err != nil {
		return mapRepositoryError(err)
	}

	permIDs := make([]uuid.UUID, 0, len(req.PermissionIDs))
	for _, raw := range req.PermissionIDs {
		pid, err := uuid.Parse(raw)
		if err != nil {
			return rbacerrors.ErrInvalidPermissionID
		}
		permIDs = append(permIDs, pid)
	}

	if err := s.repo.ReplaceRolePermissions(ctx, roleID, permIDs); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidate()
	return nil
}

func (s *service) AssignRole(ctx context.Context, req AssignRoleRequest) error {
	employeeID, roleID, err := parseAssignment(req)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindRoleByID(ctx, roleID); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.AssignRole(ctx, employeeID, roleID); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidate()
	return nil
}

func (s *service) UnassignRole(ctx context.Context, req AssignRoleRequest) error {
	employeeID, roleID, err := parseAssignment(req)
	if err != nil {
		return err
	}
	if err := s.repo.UnassignRole(ctx, employeeID, roleID); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidate()
	return nil
}

func parseAssignment(req AssignRoleRequest) (uuid.UUID, uuid.UUID, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return uuid.Nil, uuid.Nil, rbacerrors.ErrInvalidRoleID
	}
	return employeeID, roleID, nil
}

func mapRoleToResponse(role *Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID.String(),
		Name:        role.Name,
		Description: role.Description,
	}
}

func mapPermissionToResponse(p *Permission) PermissionResponse {
	return PermissionResponse{
		ID:       p.ID.String(),
		Resource: p.Resource,
		Action:   p.Action,
		Label:    p.Label,
		Category: p.Category,
	}
}
