package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func capabilityDirectory() ([]*Role, []*Principal) {
	roles := []*Role{
		{ID: "r-admin", Name: "Administrator", Grants: grants(`[{"page":"*","actions":"*"}]`)},
		{ID: "r-modadmin", Name: "Lead Admin", Grants: grants(`[{"page":"leads","actions":"*"}]`)},
		// Assign without edit.
		{ID: "r-closer", Name: "Closer", Grants: grants(`[{"page":"leads","actions":["own","assign"]}]`)},
		{ID: "r-editor", Name: "Editor", Grants: grants(`[{"page":"leads","actions":["own","edit"]}]`)},
		{ID: "r-reporter", Name: "Reporter", Grants: grants(`[{"page":"leads","actions":["own","view_other"]}]`)},
		{ID: "r-manager", Name: "Sales Manager", Grants: grants(`[{"page":"leads","actions":["junior","edit"]}]`)},
		{ID: "r-agent", Name: "Sales Agent", ReportingID: "r-manager"},
	}
	people := []*Principal{
		{ID: "admin", RoleID: "r-admin"},
		{ID: "modadmin", RoleID: "r-modadmin"},
		{ID: "closer", RoleID: "r-closer"},
		{ID: "editor", RoleID: "r-editor"},
		{ID: "reporter", RoleID: "r-reporter"},
		{ID: "mgr", RoleID: "r-manager"},
		{ID: "agent", RoleID: "r-agent"},
		{ID: "stranger", RoleID: "r-agent"},
	}
	return roles, people
}

func TestBatch_Capabilities(t *testing.T) {
	roles, people := capabilityDirectory()

	tests := []struct {
		name      string
		principal string
		rec       *Record
		want      Capabilities
	}{
		{
			name:      "super admin gets everything",
			principal: "admin",
			rec:       &Record{CreatedBy: "stranger"},
			want:      allCapabilities(),
		},
		{
			name:      "module admin gets everything",
			principal: "modadmin",
			rec:       &Record{CreatedBy: "stranger"},
			want:      allCapabilities(),
		},
		{
			name:      "creator can assign but not edit without the edit grant",
			principal: "closer",
			rec:       &Record{CreatedBy: "closer"},
			want: Capabilities{
				CanDelete:            true,
				CanAssign:            true,
				CanAddNotes:          true,
				CanAddTasks:          true,
				CanUploadAttachments: true,
			},
		},
		{
			name:      "creator with edit can edit and always delete",
			principal: "editor",
			rec:       &Record{CreatedBy: "editor"},
			want: Capabilities{
				CanEdit:              true,
				CanDelete:            true,
				CanAddNotes:          true,
				CanAddTasks:          true,
				CanUploadAttachments: true,
			},
		},
		{
			name:      "assignee with edit can edit but never delete",
			principal: "editor",
			rec:       &Record{CreatedBy: "stranger", AssignedTo: []string{"editor"}},
			want: Capabilities{
				CanEdit:              true,
				CanAddNotes:          true,
				CanAddTasks:          true,
				CanUploadAttachments: true,
			},
		},
		{
			name:      "assignee without edit can still annotate",
			principal: "closer",
			rec:       &Record{CreatedBy: "stranger", AssignedTo: []string{"closer"}},
			want: Capabilities{
				CanAddNotes:          true,
				CanAddTasks:          true,
				CanUploadAttachments: true,
			},
		},
		{
			name:      "reporter gets notes and attachments only",
			principal: "reporter",
			rec:       &Record{CreatedBy: "stranger", ReportTo: []string{"reporter"}},
			want: Capabilities{
				CanAddNotes:          true,
				CanUploadAttachments: true,
			},
		},
		{
			name:      "hierarchy superior follows base grants without delete",
			principal: "mgr",
			rec:       &Record{CreatedBy: "agent"},
			want: Capabilities{
				CanEdit:     true,
				CanAddNotes: true,
				CanAddTasks: true,
			},
		},
		{
			name:      "no relation means no capabilities",
			principal: "closer",
			rec:       &Record{CreatedBy: "stranger"},
			want:      Capabilities{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBatch(t, roles, people, tt.principal)
			assert.Equal(t, tt.want, b.Capabilities(tt.rec))
		})
	}
}

func TestBatch_Capabilities_CreatorWinsOverAssignee(t *testing.T) {
	roles, people := capabilityDirectory()
	b := newTestBatch(t, roles, people, "closer")

	// Creator who is also an assignee keeps the creator's delete right.
	got := b.Capabilities(&Record{CreatedBy: "closer", AssignedTo: []string{"closer"}})
	assert.True(t, got.CanDelete)
	assert.True(t, got.CanAssign)
}
