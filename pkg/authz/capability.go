package authz

// Capabilities is the per-record action matrix for one principal.
type Capabilities struct {
	CanEdit              bool `json:"canEdit"`
	CanDelete            bool `json:"canDelete"`
	CanAssign            bool `json:"canAssign"`
	CanAddNotes          bool `json:"canAddNotes"`
	CanAddTasks          bool `json:"canAddTasks"`
	CanUploadAttachments bool `json:"canUploadAttachments"`
}

func allCapabilities() Capabilities {
	return Capabilities{
		CanEdit:              true,
		CanDelete:            true,
		CanAssign:            true,
		CanAddNotes:          true,
		CanAddTasks:          true,
		CanUploadAttachments: true,
	}
}

// Capabilities derives the action matrix for one record. The relation
// the principal holds to the record (creator, assignee, reporter,
// hierarchy superior) decides the baseline; edit and assign then follow
// the principal's base grants.
func (b *Batch) Capabilities(raw *Record) Capabilities {
	if b.principal == nil {
		return Capabilities{}
	}

	for _, g := range b.grants {
		if g.IsSuperAdmin() {
			return allCapabilities()
		}
	}
	if b.isModuleAdmin() {
		return allCapabilities()
	}

	n := b.Normalize(raw)
	self := b.principal.ID
	canEdit := hasPageAction(b.grants, PageLeads, TokenEdit)
	canAssign := hasPageAction(b.grants, PageLeads, TokenAssign)

	if n.CreatedBy == self {
		return Capabilities{
			CanEdit:              canEdit,
			CanDelete:            true,
			CanAssign:            canAssign,
			CanAddNotes:          true,
			CanAddTasks:          true,
			CanUploadAttachments: true,
		}
	}

	if containsAny(n.AssignedTo, self) {
		return Capabilities{
			CanEdit:              canEdit,
			CanAddNotes:          true,
			CanAddTasks:          true,
			CanUploadAttachments: true,
		}
	}

	if hasExplicitToken(b.grants, PageLeads, TokenViewOther) && containsAny(n.ReportTo, self) {
		return Capabilities{
			CanAddNotes:          true,
			CanUploadAttachments: true,
		}
	}

	if hasExplicitToken(b.grants, PageLeads, TokenJunior) && recordTouches(n, b.subordinateSet()) {
		return Capabilities{
			CanEdit:     canEdit,
			CanAssign:   canAssign,
			CanAddNotes: true,
			CanAddTasks: true,
		}
	}

	return Capabilities{}
}
