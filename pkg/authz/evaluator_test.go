package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	grants := ParseGrantDocument([]byte(`[
		{"page":"leads","actions":["show","edit"]},
		{"page":"users","actions":"all"}
	]`))

	tests := []struct {
		name   string
		page   string
		action string
		want   bool
	}{
		{"granted token", "leads", "edit", true},
		{"token matching is case insensitive", "LEADS", "Show", true},
		{"missing token", "leads", "delete", false},
		{"all allows every action", "users", "delete", true},
		{"unknown page", "tickets", "show", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(grants, tt.page, tt.action))
		})
	}

	t.Run("super admin passes every check", func(t *testing.T) {
		admin := ParseGrantDocument([]byte(`[{"page":"*","actions":"*"}]`))
		assert.True(t, HasPermission(admin, "leads", "delete"))
		assert.True(t, HasPermission(admin, "never-seen", "never-granted"))
	})

	t.Run("no grants denies everything", func(t *testing.T) {
		assert.False(t, HasPermission(nil, "leads", "show"))
	})
}

func TestHasAnyPagePermission(t *testing.T) {
	grants := ParseGrantDocument([]byte(`[{"page":"tickets","actions":["show"]}]`))

	assert.True(t, HasAnyPagePermission(grants, []string{"leads", "tickets"}, "show"))
	assert.False(t, HasAnyPagePermission(grants, []string{"leads", "users"}, "show"))
	assert.False(t, HasAnyPagePermission(grants, nil, "show"))

	admin := ParseGrantDocument([]byte(`[{"page":"*","actions":"*"}]`))
	assert.True(t, HasAnyPagePermission(admin, nil, "show"))
}

func TestHasExplicitToken(t *testing.T) {
	// Wildcard and "all" grants authorize actions but must not count as
	// narrow tokens: a broad grant cannot masquerade as "show" when the
	// policy looks specifically for a bare show.
	wide := ParseGrantDocument([]byte(`[{"page":"leads","actions":"*"}]`))
	assert.True(t, HasPermission(wide, "leads", TokenShow))
	assert.False(t, hasExplicitToken(wide, PageLeads, TokenShow))

	all := ParseGrantDocument([]byte(`[{"page":"leads","actions":"all"}]`))
	assert.False(t, hasExplicitToken(all, PageLeads, TokenShow))

	narrow := ParseGrantDocument([]byte(`[{"page":"leads","actions":["show"]}]`))
	assert.True(t, hasExplicitToken(narrow, PageLeads, TokenShow))
}
