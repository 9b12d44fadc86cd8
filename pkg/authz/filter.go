package authz

// Record field names referenced by filter clauses. The store layer maps
// these onto its own columns or join tables.
const (
	FieldCreatedBy  = "created_by"
	FieldAssignedTo = "assigned_to"
	FieldReportTo   = "report_to"
	FieldTeamLead   = "team_lead"
)

// Record is the evaluation view of one lead. All principal references
// are expected in canonical ID form; Normalize on a Batch converts raw
// references before evaluation.
type Record struct {
	ID         string
	CreatedBy  string
	AssignedTo []string
	ReportTo   []string
	TeamLead   string
}

// Clause is one atomic field-membership condition: field value is a
// member of IDs (for list fields, any element is a member).
type Clause struct {
	Field string
	IDs   []string
}

// Filter is the bulk form of the visibility decision: a disjunction of
// clauses, or one of the two absolute states. The zero value matches
// nothing, which is the correct deny-by-default reading.
type Filter struct {
	// MatchAll marks an unrestricted principal; clauses are ignored.
	MatchAll bool
	Clauses  []Clause
}

// MatchNone reports whether the filter matches no records at all.
// Callers translating to SQL must emit an explicit always-false
// predicate for this state, never an omitted filter.
func (f *Filter) MatchNone() bool {
	return !f.MatchAll && len(f.Clauses) == 0
}

// Matches evaluates the filter against one record in memory. This is
// the reference semantics the store translation must reproduce.
func (f *Filter) Matches(rec *Record) bool {
	if f.MatchAll {
		return true
	}
	for _, c := range f.Clauses {
		switch c.Field {
		case FieldCreatedBy:
			if containsAny(c.IDs, rec.CreatedBy) {
				return true
			}
		case FieldAssignedTo:
			if intersects(c.IDs, rec.AssignedTo) {
				return true
			}
		case FieldReportTo:
			if intersects(c.IDs, rec.ReportTo) {
				return true
			}
		case FieldTeamLead:
			if containsAny(c.IDs, rec.TeamLead) {
				return true
			}
		}
	}
	return false
}

// clause appends a condition, skipping empty ID sets so the filter
// never carries clauses that can match nothing.
func (f *Filter) clause(field string, ids []string) {
	if len(ids) == 0 {
		return
	}
	f.Clauses = append(f.Clauses, Clause{Field: field, IDs: ids})
}

func containsAny(ids []string, v string) bool {
	if v == "" {
		return false
	}
	for _, id := range ids {
		if id == v {
			return true
		}
	}
	return false
}

func intersects(ids []string, values []string) bool {
	for _, v := range values {
		if containsAny(ids, v) {
			return true
		}
	}
	return false
}
