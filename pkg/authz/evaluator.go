package authz

// HasPermission reports whether the grants authorize the action on the
// page. A super-admin grant passes immediately; otherwise every grant
// whose page matches is checked for the action.
func HasPermission(grants []Grant, page, action string) bool {
	for _, g := range grants {
		if g.IsSuperAdmin() {
			return true
		}
	}
	return hasPageAction(grants, page, action)
}

// HasAnyPagePermission reports whether the grants authorize the action
// on at least one of the pages.
func HasAnyPagePermission(grants []Grant, pages []string, action string) bool {
	for _, g := range grants {
		if g.IsSuperAdmin() {
			return true
		}
	}
	for _, page := range pages {
		if hasPageAction(grants, page, action) {
			return true
		}
	}
	return false
}

func hasPageAction(grants []Grant, page, action string) bool {
	for _, g := range grants {
		if !g.MatchesPage(page) {
			continue
		}
		if g.Actions.Allows(action) {
			return true
		}
	}
	return false
}

// hasExplicitToken reports whether any grant on the page carries the
// token in an explicit token set. Wildcard and "all" grants do not
// count: callers use this to detect narrow permissions, where a broad
// grant must not masquerade as a narrow one.
func hasExplicitToken(grants []Grant, page, token string) bool {
	for _, g := range grants {
		if !g.MatchesPage(page) {
			continue
		}
		if g.Actions.Kind != ActionTokens {
			continue
		}
		if g.Actions.Allows(token) {
			return true
		}
	}
	return false
}
