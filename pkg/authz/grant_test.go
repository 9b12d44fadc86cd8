package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeActions(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		wantKind ActionKind
		allows   []string
		denies   []string
	}{
		{
			name:     "single token string",
			raw:      "show",
			wantKind: ActionTokens,
			allows:   []string{"show", "SHOW"},
			denies:   []string{"edit"},
		},
		{
			name:     "wildcard string",
			raw:      "*",
			wantKind: ActionWildcard,
			allows:   []string{"show", "edit", "anything"},
		},
		{
			name:     "any alias is a wildcard",
			raw:      "any",
			wantKind: ActionWildcard,
			allows:   []string{"delete"},
		},
		{
			name:     "literal all",
			raw:      "all",
			wantKind: ActionAll,
			allows:   []string{"show", "edit"},
		},
		{
			name:     "token list",
			raw:      []string{"show", "Edit"},
			wantKind: ActionTokens,
			allows:   []string{"show", "edit", "EDIT"},
			denies:   []string{"delete"},
		},
		{
			name:     "wildcard inside a list promotes the set",
			raw:      []string{"show", "*"},
			wantKind: ActionWildcard,
			allows:   []string{"delete"},
		},
		{
			name:     "interface list from decoded json",
			raw:      []interface{}{"show", "own"},
			wantKind: ActionTokens,
			allows:   []string{"own"},
			denies:   []string{"junior"},
		},
		{
			name:     "non-string list entries are dropped",
			raw:      []interface{}{42, "show"},
			wantKind: ActionTokens,
			allows:   []string{"show"},
		},
		{
			name:     "unexpected shape normalizes to none",
			raw:      map[string]string{"show": "yes"},
			wantKind: ActionNone,
			denies:   []string{"show"},
		},
		{
			name:     "nil normalizes to none",
			raw:      nil,
			wantKind: ActionNone,
			denies:   []string{"show"},
		},
		{
			name:     "blank tokens normalize to none",
			raw:      []string{"", "  "},
			wantKind: ActionNone,
			denies:   []string{"show"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NormalizeActions(tt.raw)
			assert.Equal(t, tt.wantKind, set.Kind)
			for _, a := range tt.allows {
				assert.True(t, set.Allows(a), "expected %q to be allowed", a)
			}
			for _, a := range tt.denies {
				assert.False(t, set.Allows(a), "expected %q to be denied", a)
			}
		})
	}
}

func TestParseGrantDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		grants := ParseGrantDocument([]byte(`[
			{"page":"leads","actions":["show","own"]},
			{"page":"users","actions":"all"}
		]`))
		require.Len(t, grants, 2)
		assert.Equal(t, "leads", grants[0].Page)
		assert.True(t, grants[0].Actions.Allows("own"))
		assert.False(t, grants[0].Actions.Allows("edit"))
		assert.Equal(t, ActionAll, grants[1].Actions.Kind)
	})

	t.Run("malformed document yields no grants", func(t *testing.T) {
		assert.Nil(t, ParseGrantDocument([]byte(`{"page":"leads"}`)))
		assert.Nil(t, ParseGrantDocument([]byte(`not json`)))
		assert.Nil(t, ParseGrantDocument(nil))
	})

	t.Run("entries without a page are skipped", func(t *testing.T) {
		grants := ParseGrantDocument([]byte(`[
			{"page":"","actions":["show"]},
			{"page":"  ","actions":["show"]},
			{"page":"leads","actions":["show"]}
		]`))
		require.Len(t, grants, 1)
		assert.Equal(t, "leads", grants[0].Page)
	})

	t.Run("malformed actions degrade to none not to an error", func(t *testing.T) {
		grants := ParseGrantDocument([]byte(`[{"page":"leads","actions":{"show":true}}]`))
		require.Len(t, grants, 1)
		assert.Equal(t, ActionNone, grants[0].Actions.Kind)
		assert.False(t, grants[0].Actions.Allows("show"))
	})
}

func TestGrant_IsSuperAdmin(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		actions interface{}
		want    bool
	}{
		{"wildcard page and actions", "*", "*", true},
		{"any aliases", "any", []string{"any"}, true},
		{"wildcard page, token actions", "*", []string{"show"}, false},
		{"named page, wildcard actions", "leads", "*", false},
		{"literal all is not a wildcard", "*", "all", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewGrant(tt.page, tt.actions).IsSuperAdmin())
		})
	}
}

func TestGrant_MatchesPage(t *testing.T) {
	g := NewGrant("Leads", "show")
	assert.True(t, g.MatchesPage("leads"))
	assert.True(t, g.MatchesPage("LEADS"))
	assert.False(t, g.MatchesPage("users"))
	assert.True(t, NewGrant("*", "show").MatchesPage("anything"))
}
