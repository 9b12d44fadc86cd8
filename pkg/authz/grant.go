package authz

import (
	"strings"

	jsonutil "github.com/kart-io/lead-center/pkg/utils/json"
)

// ActionKind tags the canonical shape of a grant's action set.
type ActionKind int

const (
	// ActionNone means the grant carries no usable actions. Malformed
	// action payloads normalize to this and never match anything.
	ActionNone ActionKind = iota

	// ActionWildcard means every action is allowed.
	ActionWildcard

	// ActionAll is the literal "all" action, distinct from the wildcard
	// token but equally permissive for action checks.
	ActionAll

	// ActionTokens is an explicit set of action tokens.
	ActionTokens
)

// matchesToken reports whether two permission tokens are equal. All token
// comparison in this package goes through here so the case rules cannot
// drift between call sites.
func matchesToken(a, b string) bool {
	return strings.EqualFold(a, b)
}

// isWildcardToken reports whether s is one of the wildcard page/action
// spellings.
func isWildcardToken(s string) bool {
	return matchesToken(s, "*") || matchesToken(s, "any")
}

// ActionSet is the canonical form of a grant's actions. Raw permission
// documents carry actions as a bare string, the literal "all", a list of
// tokens, or a wildcard; NormalizeActions folds all of those into one
// tagged value so evaluation never re-inspects raw shapes.
type ActionSet struct {
	Kind   ActionKind
	tokens map[string]struct{}
}

// NormalizeActions converts a raw actions value into an ActionSet.
// Unexpected shapes produce ActionNone.
func NormalizeActions(raw interface{}) ActionSet {
	switch v := raw.(type) {
	case string:
		return normalizeTokens([]string{v})
	case []string:
		return normalizeTokens(v)
	case []interface{}:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			tokens = append(tokens, s)
		}
		return normalizeTokens(tokens)
	default:
		return ActionSet{Kind: ActionNone}
	}
}

func normalizeTokens(tokens []string) ActionSet {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if isWildcardToken(t) {
			// A wildcard anywhere in the list promotes the whole set.
			return ActionSet{Kind: ActionWildcard}
		}
		if matchesToken(t, "all") {
			return ActionSet{Kind: ActionAll}
		}
		set[strings.ToLower(t)] = struct{}{}
	}
	if len(set) == 0 {
		return ActionSet{Kind: ActionNone}
	}
	return ActionSet{Kind: ActionTokens, tokens: set}
}

// Allows reports whether the set authorizes the named action.
func (s ActionSet) Allows(action string) bool {
	switch s.Kind {
	case ActionWildcard, ActionAll:
		return true
	case ActionTokens:
		_, ok := s.tokens[strings.ToLower(action)]
		return ok
	default:
		return false
	}
}

// IsWildcard reports whether the set is the wildcard form.
func (s ActionSet) IsWildcard() bool {
	return s.Kind == ActionWildcard
}

// Tokens returns the explicit token set, or nil for non-token kinds.
func (s ActionSet) Tokens() []string {
	if s.Kind != ActionTokens {
		return nil
	}
	out := make([]string, 0, len(s.tokens))
	for t := range s.tokens {
		out = append(out, t)
	}
	return out
}

// Grant is a normalized permission entry: a page (resource name or
// wildcard) and the actions allowed on it.
type Grant struct {
	Page    string
	Actions ActionSet
}

// NewGrant builds a Grant from a raw page and actions value.
func NewGrant(page string, actions interface{}) Grant {
	return Grant{
		Page:    strings.TrimSpace(page),
		Actions: NormalizeActions(actions),
	}
}

// MatchesPage reports whether the grant applies to the requested page.
// A wildcard page matches every page.
func (g Grant) MatchesPage(page string) bool {
	if isWildcardToken(g.Page) {
		return true
	}
	return matchesToken(g.Page, page)
}

// IsSuperAdmin reports whether the grant is a super-admin entry:
// wildcard page and wildcard actions. Such a grant dominates every
// other rule in the policy.
func (g Grant) IsSuperAdmin() bool {
	return isWildcardToken(g.Page) && g.Actions.IsWildcard()
}

// rawGrant mirrors one entry of a role's stored permissions document.
// Actions is left untyped because the stored shape varies.
type rawGrant struct {
	Page    string      `json:"page"`
	Actions interface{} `json:"actions"`
}

// ParseGrantDocument decodes a role's JSON permissions document into
// normalized grants. Malformed documents yield no grants; this function
// never fails.
func ParseGrantDocument(doc []byte) []Grant {
	if len(doc) == 0 {
		return nil
	}
	var raw []rawGrant
	if err := jsonutil.Unmarshal(doc, &raw); err != nil {
		return nil
	}
	grants := make([]Grant, 0, len(raw))
	for _, r := range raw {
		g := NewGrant(r.Page, r.Actions)
		if g.Page == "" {
			continue
		}
		grants = append(grants, g)
	}
	return grants
}
