package authz

import (
	"context"
	"strings"

	"github.com/kart-io/logger"
)

// PageLeads is the resource page the visibility policy governs.
const PageLeads = "leads"

// Action tokens recognized on the leads page.
const (
	TokenShow        = "show"
	TokenOwn         = "own"
	TokenViewOther   = "view_other"
	TokenJunior      = "junior"
	TokenTeamManager = "team_manager"
	TokenEdit        = "edit"
	TokenAssign      = "assign"
	TokenDelete      = "delete"
)

// Role names that activate the team-manager extension even without an
// explicit team_manager token.
var teamManagerRolePatterns = []string{"team manager", "team lead", "teamlead"}

// Policy decides record visibility for principals. One Policy is built
// at service start; per-request state lives in a Batch.
type Policy struct {
	roles  RoleStore
	people PrincipalStore

	// legacyBareShow preserves the historical behavior where a bare
	// "show" grant with no narrower token made every record visible.
	legacyBareShow bool
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithLegacyBareShow toggles the wide-open bare-show fallback. It is on
// by default; turning it off makes a bare "show" grant behave like no
// visibility grant at all.
func WithLegacyBareShow(enabled bool) PolicyOption {
	return func(p *Policy) { p.legacyBareShow = enabled }
}

// NewPolicy builds a Policy over the given stores.
func NewPolicy(roles RoleStore, people PrincipalStore, opts ...PolicyOption) *Policy {
	p := &Policy{roles: roles, people: people, legacyBareShow: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Batch carries the per-request evaluation state: the principal, its
// grants, the indexed role hierarchy, and memoized principal sets. All
// CanView and Filter calls for one request share one Batch so the role
// graph is loaded exactly once.
type Batch struct {
	ctx    context.Context
	policy *Policy

	principal *Principal
	grants    []Grant
	hier      *Hierarchy
	refs      *refCache

	subsOnce bool
	subs     []string
	subsSet  map[string]struct{}

	teamOnce bool
	team     []string
	teamSet  map[string]struct{}
}

// Batch loads the principal and the full role graph and returns the
// evaluation state for one request. An unknown principal yields a batch
// that denies everything; only genuine store I/O errors propagate.
func (p *Policy) Batch(ctx context.Context, principalID string) (*Batch, error) {
	b := &Batch{
		ctx:    ctx,
		policy: p,
		hier:   NewHierarchy(nil),
		refs:   newRefCache(p.people),
	}

	principal, err := p.people.GetPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return b, nil
	}
	b.principal = principal

	roles, err := p.roles.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	b.hier = NewHierarchy(roles)
	b.grants = b.hier.Grants(principal.RoleID)
	return b, nil
}

// Principal returns the evaluated principal, or nil when unknown.
func (b *Batch) Principal() *Principal {
	return b.principal
}

// Has reports whether the batch principal holds the action on the page.
func (b *Batch) Has(page, action string) bool {
	return HasPermission(b.grants, page, action)
}

// HasAny reports whether the batch principal holds the action on any of
// the pages.
func (b *Batch) HasAny(pages []string, action string) bool {
	return HasAnyPagePermission(b.grants, pages, action)
}

// Normalize converts a raw record into canonical-ID form. References
// that do not resolve become empty and never match.
func (b *Batch) Normalize(raw *Record) *Record {
	n := &Record{
		ID:        raw.ID,
		CreatedBy: b.refs.normalize(b.ctx, raw.CreatedBy),
		TeamLead:  b.refs.normalize(b.ctx, raw.TeamLead),
	}
	for _, ref := range raw.AssignedTo {
		if id := b.refs.normalize(b.ctx, ref); id != "" {
			n.AssignedTo = append(n.AssignedTo, id)
		}
	}
	for _, ref := range raw.ReportTo {
		if id := b.refs.normalize(b.ctx, ref); id != "" {
			n.ReportTo = append(n.ReportTo, id)
		}
	}
	return n
}

// CanView decides visibility of one record. Rule groups are evaluated
// in a fixed precedence; the first match wins and no group ever demotes
// an earlier one.
func (b *Batch) CanView(raw *Record) bool {
	if b.principal == nil {
		return false
	}
	if b.allVisible() {
		return true
	}

	n := b.Normalize(raw)
	self := b.principal.ID

	// Ownership is universal: creators and assignees always see the
	// record, independent of any grant.
	if n.CreatedBy == self {
		return true
	}
	if containsAny(n.AssignedTo, self) {
		return true
	}

	if hasExplicitToken(b.grants, PageLeads, TokenViewOther) {
		if containsAny(n.ReportTo, self) {
			return true
		}
	}

	if hasExplicitToken(b.grants, PageLeads, TokenJunior) {
		subs := b.subordinateSet()
		if recordTouches(n, subs) {
			return true
		}
	}

	if b.teamManagerActive() {
		if n.TeamLead == self {
			return true
		}
		if recordTouches(n, b.teamMemberSet()) {
			return true
		}
	}

	return false
}

// Filter builds the bulk predicate equivalent to CanView over the full
// record set. It is assembled from the same rule groups with the same
// memoized sets, so the two forms cannot diverge.
func (b *Batch) Filter() *Filter {
	f := &Filter{}
	if b.principal == nil {
		return f
	}
	if b.allVisible() {
		f.MatchAll = true
		return f
	}

	self := b.principal.ID
	f.clause(FieldCreatedBy, []string{self})
	f.clause(FieldAssignedTo, []string{self})

	if hasExplicitToken(b.grants, PageLeads, TokenViewOther) {
		f.clause(FieldReportTo, []string{self})
	}

	if hasExplicitToken(b.grants, PageLeads, TokenJunior) {
		subs := b.subordinatePrincipals()
		f.clause(FieldCreatedBy, subs)
		f.clause(FieldAssignedTo, subs)
		f.clause(FieldReportTo, subs)
	}

	if b.teamManagerActive() {
		f.clause(FieldTeamLead, []string{self})
		team := b.teamMembers()
		f.clause(FieldCreatedBy, team)
		f.clause(FieldAssignedTo, team)
		f.clause(FieldReportTo, team)
	}

	return f
}

// allVisible covers the unrestricted rule groups: super-admin, module
// admin, the "all" action, and the legacy bare-show fallback.
func (b *Batch) allVisible() bool {
	for _, g := range b.grants {
		if g.IsSuperAdmin() {
			return true
		}
	}
	if b.isModuleAdmin() {
		return true
	}
	if hasPageAction(b.grants, PageLeads, "all") {
		return true
	}
	if b.policy.legacyBareShow && b.bareShowOnly() {
		return true
	}
	return false
}

// isModuleAdmin reports a wildcard action grant on the leads page.
func (b *Batch) isModuleAdmin() bool {
	for _, g := range b.grants {
		if g.MatchesPage(PageLeads) && g.Actions.IsWildcard() {
			return true
		}
	}
	return false
}

// bareShowOnly reports an explicit "show" grant with none of the
// narrower visibility tokens present. Historically that combination
// made every record visible.
func (b *Batch) bareShowOnly() bool {
	if !hasExplicitToken(b.grants, PageLeads, TokenShow) {
		return false
	}
	for _, narrow := range []string{TokenOwn, TokenViewOther, TokenJunior} {
		if hasExplicitToken(b.grants, PageLeads, narrow) {
			return false
		}
	}
	return true
}

// teamManagerActive reports whether the team-manager extension applies:
// an explicit team_manager token, or a role name matching one of the
// recognized patterns.
func (b *Batch) teamManagerActive() bool {
	if hasExplicitToken(b.grants, PageLeads, TokenTeamManager) {
		return true
	}
	name := strings.ToLower(b.principal.RoleName)
	if name == "" {
		if r := b.hier.Role(b.principal.RoleID); r != nil {
			name = strings.ToLower(r.Name)
		}
	}
	for _, pat := range teamManagerRolePatterns {
		if strings.Contains(name, pat) {
			return true
		}
	}
	return false
}

// subordinatePrincipals resolves and memoizes the principal IDs of
// everyone in roles transitively reporting to the batch principal's
// role. Store errors degrade to an empty set.
func (b *Batch) subordinatePrincipals() []string {
	if b.subsOnce {
		return b.subs
	}
	b.subsOnce = true
	b.subsSet = make(map[string]struct{})

	roleSet := b.hier.Subordinates(b.principal.RoleID)
	if len(roleSet) == 0 {
		return nil
	}
	roleIDs := make([]string, 0, len(roleSet))
	for id := range roleSet {
		roleIDs = append(roleIDs, id)
	}

	people, err := b.policy.people.FindByRoleIDs(b.ctx, roleIDs)
	if err != nil {
		logger.Warnw("subordinate lookup failed, denying hierarchy visibility",
			"principal", b.principal.ID, "error", err)
		return nil
	}
	for _, p := range people {
		if p == nil || p.ID == "" || p.ID == b.principal.ID {
			continue
		}
		if _, dup := b.subsSet[p.ID]; dup {
			continue
		}
		b.subsSet[p.ID] = struct{}{}
		b.subs = append(b.subs, p.ID)
	}
	return b.subs
}

func (b *Batch) subordinateSet() map[string]struct{} {
	b.subordinatePrincipals()
	return b.subsSet
}

// teamMembers resolves and memoizes the principals whose explicit team
// lead is the batch principal. The same-department fallback fires only
// when no explicit link exists at all.
func (b *Batch) teamMembers() []string {
	if b.teamOnce {
		return b.team
	}
	b.teamOnce = true
	b.teamSet = make(map[string]struct{})

	people, err := b.policy.people.FindByTeamLead(b.ctx, b.principal.ID)
	if err != nil {
		logger.Warnw("team member lookup failed, denying team visibility",
			"principal", b.principal.ID, "error", err)
		return nil
	}
	if len(people) == 0 && b.principal.Department != "" {
		people, err = b.policy.people.FindByDepartment(b.ctx, b.principal.Department)
		if err != nil {
			logger.Warnw("department fallback lookup failed",
				"principal", b.principal.ID, "department", b.principal.Department, "error", err)
			return nil
		}
	}
	for _, p := range people {
		if p == nil || p.ID == "" || p.ID == b.principal.ID {
			continue
		}
		if _, dup := b.teamSet[p.ID]; dup {
			continue
		}
		b.teamSet[p.ID] = struct{}{}
		b.team = append(b.team, p.ID)
	}
	return b.team
}

func (b *Batch) teamMemberSet() map[string]struct{} {
	b.teamMembers()
	return b.teamSet
}

// recordTouches reports whether any ownership field of the record falls
// inside the given principal set.
func recordTouches(n *Record, ids map[string]struct{}) bool {
	if len(ids) == 0 {
		return false
	}
	if _, ok := ids[n.CreatedBy]; ok && n.CreatedBy != "" {
		return true
	}
	for _, a := range n.AssignedTo {
		if _, ok := ids[a]; ok {
			return true
		}
	}
	for _, r := range n.ReportTo {
		if _, ok := ids[r]; ok {
			return true
		}
	}
	return false
}
