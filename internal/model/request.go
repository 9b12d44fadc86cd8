package model

import (
	"encoding/json"

	"github.com/kart-io/lead-center/pkg/authz"
)

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Username     string `json:"username" form:"username" binding:"required,username"`
	Password     string `json:"password" form:"password" binding:"required,password"`
	Email        string `json:"email" form:"email" binding:"omitempty,email"`
	EmployeeCode string `json:"employee_code" form:"employee_code" binding:"required,empcode"`
	Department   string `json:"department" form:"department"`
	RoleID       uint64 `json:"role_id" form:"role_id" binding:"required"`
	TeamLeadID   uint64 `json:"team_lead_id" form:"team_lead_id"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	Department *string `json:"department"`
	RoleID     *uint64 `json:"role_id"`
	TeamLeadID *uint64 `json:"team_lead_id"`
	Status     *int    `json:"status" binding:"omitempty,oneof=0 1"`
}

// CreateRoleRequest represents the create role request body.
type CreateRoleRequest struct {
	Name        string          `json:"name" form:"name" binding:"required"`
	Description string          `json:"description" form:"description"`
	ReportingID uint64          `json:"reporting_id" form:"reporting_id"`
	Permissions json.RawMessage `json:"permissions"`
}

// UpdateRoleRequest represents the update role request body.
type UpdateRoleRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	ReportingID *uint64         `json:"reporting_id"`
	Permissions json.RawMessage `json:"permissions"`
}

// CreateLeadRequest represents the create lead request body. Assignees
// and reporters accept user IDs or employee codes.
type CreateLeadRequest struct {
	Name      string   `json:"name" form:"name" binding:"required"`
	Contact   string   `json:"contact" form:"contact"`
	Phone     string   `json:"phone" form:"phone"`
	Source    string   `json:"source" form:"source"`
	Assignees []string `json:"assignees" form:"assignees"`
	Reporters []string `json:"reporters" form:"reporters"`
}

// UpdateLeadRequest represents the update lead request body.
type UpdateLeadRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Phone   *string `json:"phone"`
	Source  *string `json:"source"`
	Status  *string `json:"status" binding:"omitempty,oneof=new contacted qualified won lost"`
}

// AssignLeadRequest represents the assign lead request body.
type AssignLeadRequest struct {
	Assignees []string `json:"assignees" binding:"required,min=1"`
}

// AddNoteRequest represents the add note request body.
type AddNoteRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

// LeadInfo is a lead together with its membership links and the action
// matrix computed for the requesting user.
type LeadInfo struct {
	*Lead
	Assignees    []uint64           `json:"assignee_ids"`
	Reporters    []uint64           `json:"reporter_ids"`
	Capabilities authz.Capabilities `json:"capabilities"`
}

// IssueWarningRequest represents the issue warning request body.
type IssueWarningRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Level  string `json:"level" binding:"omitempty,oneof=minor major severe"`
	Reason string `json:"reason" binding:"required"`
}

// CreateTicketRequest represents the create ticket request body.
type CreateTicketRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Description string `json:"description" form:"description"`
}

// UpdateTicketRequest represents the update ticket request body.
type UpdateTicketRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=open assigned resolved closed"`
	AssigneeID *uint64 `json:"assignee_id"`
}
