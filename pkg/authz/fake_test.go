package authz

import (
	"context"
	"errors"
)

// fakeRoleStore serves a fixed role set.
type fakeRoleStore struct {
	roles   []*Role
	listErr error
}

func (s *fakeRoleStore) GetRole(ctx context.Context, id string) (*Role, error) {
	for _, r := range s.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeRoleStore) ListRoles(ctx context.Context) ([]*Role, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.roles, nil
}

// fakePrincipalStore serves a fixed principal directory. Principals are
// addressable by ID and, for ResolveRef, by employee code.
type fakePrincipalStore struct {
	principals []*Principal

	getErr      error
	roleIDsErr  error
	teamLeadErr error
}

func (s *fakePrincipalStore) GetPrincipal(ctx context.Context, id string) (*Principal, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, p := range s.principals {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakePrincipalStore) FindByRoleIDs(ctx context.Context, roleIDs []string) ([]*Principal, error) {
	if s.roleIDsErr != nil {
		return nil, s.roleIDsErr
	}
	want := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		want[id] = struct{}{}
	}
	var out []*Principal
	for _, p := range s.principals {
		if _, ok := want[p.RoleID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePrincipalStore) FindByTeamLead(ctx context.Context, leadID string) ([]*Principal, error) {
	if s.teamLeadErr != nil {
		return nil, s.teamLeadErr
	}
	var out []*Principal
	for _, p := range s.principals {
		if p.TeamLeadID == leadID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePrincipalStore) FindByDepartment(ctx context.Context, department string) ([]*Principal, error) {
	var out []*Principal
	for _, p := range s.principals {
		if p.Department == department {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePrincipalStore) ResolveRef(ctx context.Context, ref string) (*Principal, error) {
	for _, p := range s.principals {
		if p.ID == ref || (p.EmployeeCode != "" && p.EmployeeCode == ref) {
			return p, nil
		}
	}
	return nil, nil
}

var errStoreDown = errors.New("store unavailable")
