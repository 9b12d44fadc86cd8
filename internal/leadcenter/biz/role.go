package biz

import (
	"context"

	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	pkgstore "github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// RoleService handles role management business logic.
type RoleService struct {
	store  store.Factory
	policy *authz.Policy
}

// NewRoleService creates a new RoleService.
func NewRoleService(store store.Factory, policy *authz.Policy) *RoleService {
	return &RoleService{store: store, policy: policy}
}

// validatePermissions rejects a permissions document that does not
// yield a single usable grant. A malformed document would otherwise be
// stored and silently evaluate as no permissions at all.
func validatePermissions(doc []byte) error {
	if len(doc) == 0 {
		return nil
	}
	if len(authz.ParseGrantDocument(doc)) == 0 {
		return errors.ErrInvalidParam.WithMessage("permissions document contains no valid grants")
	}
	return nil
}

// Create creates a new role.
func (s *RoleService) Create(ctx context.Context, callerID uint64, req *model.CreateRoleRequest) (*model.Role, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageRoles, "create"); err != nil {
		return nil, err
	}
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}
	if req.ReportingID != 0 {
		if _, err := s.store.Roles().Get(ctx, req.ReportingID); err != nil {
			if errors.IsCode(err, errors.ErrNotFound.Code) {
				return nil, errors.ErrInvalidParam.WithMessagef("reporting role %d does not exist", req.ReportingID)
			}
			return nil, err
		}
	}

	role := &model.Role{
		Name:        req.Name,
		Description: req.Description,
		ReportingID: req.ReportingID,
		Permissions: req.Permissions,
		Status:      model.RoleStatusEnabled,
	}
	if err := s.store.Roles().Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Update applies a partial update to a role.
func (s *RoleService) Update(ctx context.Context, callerID, roleID uint64, req *model.UpdateRoleRequest) (*model.Role, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageRoles, "edit"); err != nil {
		return nil, err
	}

	role, err := s.store.Roles().Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.ReportingID != nil {
		if *req.ReportingID == roleID {
			return nil, errors.ErrInvalidParam.WithMessage("a role cannot report to itself")
		}
		role.ReportingID = *req.ReportingID
	}
	if req.Permissions != nil {
		if err := validatePermissions(req.Permissions); err != nil {
			return nil, err
		}
		role.Permissions = req.Permissions
	}
	if err := s.store.Roles().Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role that no user holds.
func (s *RoleService) Delete(ctx context.Context, callerID, roleID uint64) error {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return err
	}
	if err := requireAction(batch, PageRoles, "delete"); err != nil {
		return err
	}

	count, err := s.store.Roles().CountUsers(ctx, roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.ErrRoleInUse
	}
	return s.store.Roles().Delete(ctx, roleID)
}

// Get returns one role.
func (s *RoleService) Get(ctx context.Context, callerID, roleID uint64) (*model.Role, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageRoles, "show"); err != nil {
		return nil, err
	}
	return s.store.Roles().Get(ctx, roleID)
}

// List returns roles page by page.
func (s *RoleService) List(ctx context.Context, callerID uint64, page, pageSize int) (*model.RoleList, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageRoles, "show"); err != nil {
		return nil, err
	}
	count, roles, err := s.store.Roles().List(ctx, pkgstore.WithPage(page, pageSize))
	if err != nil {
		return nil, err
	}
	return &model.RoleList{TotalCount: count, Items: roles}, nil
}
