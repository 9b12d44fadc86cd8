package authz

// Role is a permission and hierarchy node. ReportingID names the parent
// role; the empty string means the role reports to nobody.
type Role struct {
	ID          string
	Name        string
	ReportingID string
	Grants      []Grant
}

// Hierarchy is an in-memory index over the full role set, built once per
// evaluation batch. Repeated subordinate lookups walk the prebuilt
// adjacency map instead of re-querying the role store per node.
type Hierarchy struct {
	roles    map[string]*Role
	children map[string][]string
}

// NewHierarchy indexes the given roles. Roles with empty IDs are
// skipped; duplicate IDs keep the first occurrence.
func NewHierarchy(roles []*Role) *Hierarchy {
	h := &Hierarchy{
		roles:    make(map[string]*Role, len(roles)),
		children: make(map[string][]string),
	}
	for _, r := range roles {
		if r == nil || r.ID == "" {
			continue
		}
		if _, exists := h.roles[r.ID]; exists {
			continue
		}
		h.roles[r.ID] = r
		if r.ReportingID != "" {
			h.children[r.ReportingID] = append(h.children[r.ReportingID], r.ID)
		}
	}
	return h
}

// Role returns the indexed role, or nil if unknown.
func (h *Hierarchy) Role(id string) *Role {
	return h.roles[id]
}

// Grants returns the grants of the named role, or nil if unknown.
func (h *Hierarchy) Grants(roleID string) []Grant {
	r := h.roles[roleID]
	if r == nil {
		return nil
	}
	return r.Grants
}

// Subordinates returns the transitive set of role IDs reporting to
// roleID, excluding roleID itself. Traversal is iterative BFS with a
// visited set, so cyclic reporting edges terminate in O(V+E).
func (h *Hierarchy) Subordinates(roleID string) map[string]struct{} {
	out := make(map[string]struct{})
	visited := map[string]struct{}{roleID: {}}
	queue := append([]string(nil), h.children[roleID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		out[id] = struct{}{}
		queue = append(queue, h.children[id]...)
	}
	return out
}
