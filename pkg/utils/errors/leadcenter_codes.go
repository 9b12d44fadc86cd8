package errors

import "net/http"

// Lead-center business errors (Service: 02)
var (
	// ErrLeadNotFound indicates the lead does not exist.
	ErrLeadNotFound = Register(&Errno{
		Code:      MakeCode(ServiceLeadCenter, CategoryResource, 0),
		HTTP:      http.StatusNotFound,
		MessageEN: "Lead not found",
		MessageZH: "线索不存在",
	})

	// ErrLeadAccessDenied indicates the principal may not view the lead.
	ErrLeadAccessDenied = Register(&Errno{
		Code:      MakeCode(ServiceLeadCenter, CategoryPermission, 0),
		HTTP:      http.StatusForbidden,
		MessageEN: "Lead access denied",
		MessageZH: "无权访问该线索",
	})

	// ErrRoleInUse indicates the role is still assigned to users.
	ErrRoleInUse = Register(&Errno{
		Code:      MakeCode(ServiceLeadCenter, CategoryConflict, 0),
		HTTP:      http.StatusConflict,
		MessageEN: "Role is still assigned to users",
		MessageZH: "角色仍被用户使用",
	})

	// ErrAlreadyCheckedIn indicates a duplicate attendance check-in.
	ErrAlreadyCheckedIn = Register(&Errno{
		Code:      MakeCode(ServiceLeadCenter, CategoryConflict, 1),
		HTTP:      http.StatusConflict,
		MessageEN: "Already checked in today",
		MessageZH: "今日已签到",
	})

	// ErrNotCheckedIn indicates check-out without a check-in.
	ErrNotCheckedIn = Register(&Errno{
		Code:      MakeCode(ServiceLeadCenter, CategoryConflict, 2),
		HTTP:      http.StatusConflict,
		MessageEN: "Not checked in today",
		MessageZH: "今日未签到",
	})

	// ErrTicketClosed indicates an operation on a closed ticket.
	ErrTicketClosed = Register(&Errno{
		Code:      MakeCode(ServiceLeadCenter, CategoryConflict, 3),
		HTTP:      http.StatusConflict,
		MessageEN: "Ticket is closed",
		MessageZH: "工单已关闭",
	})
)
