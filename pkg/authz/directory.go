package authz

import "context"

// Principal is the evaluation view of a user.
type Principal struct {
	ID           string
	EmployeeCode string
	RoleID       string
	RoleName     string
	TeamLeadID   string
	Department   string
}

// RoleStore supplies roles for hierarchy construction.
type RoleStore interface {
	GetRole(ctx context.Context, id string) (*Role, error)
	ListRoles(ctx context.Context) ([]*Role, error)
}

// PrincipalStore supplies principals and resolves the identity
// references records carry.
type PrincipalStore interface {
	GetPrincipal(ctx context.Context, id string) (*Principal, error)
	FindByRoleIDs(ctx context.Context, roleIDs []string) ([]*Principal, error)
	FindByTeamLead(ctx context.Context, leadID string) ([]*Principal, error)
	FindByDepartment(ctx context.Context, department string) ([]*Principal, error)

	// ResolveRef maps a principal reference (internal ID or external
	// employee code) to the principal, or (nil, nil) when the reference
	// does not resolve.
	ResolveRef(ctx context.Context, ref string) (*Principal, error)
}

// refCache memoizes reference normalization for one evaluation batch.
// A reference that does not resolve maps to "" and never matches.
type refCache struct {
	store PrincipalStore
	seen  map[string]string
}

func newRefCache(store PrincipalStore) *refCache {
	return &refCache{store: store, seen: make(map[string]string)}
}

// normalize returns the canonical principal ID for ref, or "" when the
// reference is empty or unresolvable. Lookup errors also normalize to
// "": a reference we cannot resolve must not grant access.
func (c *refCache) normalize(ctx context.Context, ref string) string {
	if ref == "" {
		return ""
	}
	if id, ok := c.seen[ref]; ok {
		return id
	}
	id := ""
	if p, err := c.store.ResolveRef(ctx, ref); err == nil && p != nil {
		id = p.ID
	}
	c.seen[ref] = id
	return id
}
