package store

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// policyRoleStore adapts the role table to the visibility engine.
type policyRoleStore struct {
	roles *roleStore
}

var _ authz.RoleStore = (*policyRoleStore)(nil)

func (s *policyRoleStore) GetRole(ctx context.Context, id string) (*authz.Role, error) {
	rid, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	role, err := s.roles.Get(ctx, rid)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toAuthzRole(role), nil
}

func (s *policyRoleStore) ListRoles(ctx context.Context) ([]*authz.Role, error) {
	roles, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*authz.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, toAuthzRole(r))
	}
	return out, nil
}

func toAuthzRole(r *model.Role) *authz.Role {
	reportingID := ""
	if r.ReportingID != 0 {
		reportingID = strconv.FormatUint(r.ReportingID, 10)
	}
	return &authz.Role{
		ID:          strconv.FormatUint(r.ID, 10),
		Name:        r.Name,
		ReportingID: reportingID,
		Grants:      authz.ParseGrantDocument(r.Permissions),
	}
}

// policyPrincipalStore adapts the user table to the visibility engine.
type policyPrincipalStore struct {
	users *userStore
}

var _ authz.PrincipalStore = (*policyPrincipalStore)(nil)

func (s *policyPrincipalStore) GetPrincipal(ctx context.Context, id string) (*authz.Principal, error) {
	uid, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPrincipal(user), nil
}

func (s *policyPrincipalStore) FindByRoleIDs(ctx context.Context, roleIDs []string) ([]*authz.Principal, error) {
	ids := parseIDs(roleIDs)
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := s.users.ListByRoleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toPrincipals(users), nil
}

func (s *policyPrincipalStore) FindByTeamLead(ctx context.Context, leadID string) ([]*authz.Principal, error) {
	lid, err := strconv.ParseUint(leadID, 10, 64)
	if err != nil {
		return nil, nil
	}
	users, err := s.users.ListByTeamLead(ctx, lid)
	if err != nil {
		return nil, err
	}
	return toPrincipals(users), nil
}

func (s *policyPrincipalStore) FindByDepartment(ctx context.Context, department string) ([]*authz.Principal, error) {
	users, err := s.users.ListByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	return toPrincipals(users), nil
}

// ResolveRef accepts either the numeric user ID or the employee code.
// Unknown references resolve to nothing rather than an error.
func (s *policyPrincipalStore) ResolveRef(ctx context.Context, ref string) (*authz.Principal, error) {
	if ref == "" {
		return nil, nil
	}
	if uid, err := strconv.ParseUint(ref, 10, 64); err == nil {
		user, err := s.users.GetByID(ctx, uid)
		if err == nil {
			return toPrincipal(user), nil
		}
		if !stderrors.Is(err, errors.ErrUserNotFound) {
			return nil, err
		}
	}
	user, err := s.users.GetByEmployeeCode(ctx, ref)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPrincipal(user), nil
}

func toPrincipal(u *model.User) *authz.Principal {
	teamLeadID := ""
	if u.TeamLeadID != 0 {
		teamLeadID = strconv.FormatUint(u.TeamLeadID, 10)
	}
	return &authz.Principal{
		ID:           strconv.FormatUint(u.ID, 10),
		EmployeeCode: u.EmployeeCode,
		RoleID:       strconv.FormatUint(u.RoleID, 10),
		TeamLeadID:   teamLeadID,
		Department:   u.Department,
	}
}

func toPrincipals(users []*model.User) []*authz.Principal {
	out := make([]*authz.Principal, 0, len(users))
	for _, u := range users {
		out = append(out, toPrincipal(u))
	}
	return out
}
