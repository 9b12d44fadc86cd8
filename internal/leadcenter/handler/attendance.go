package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// AttendanceHandler handles attendance HTTP requests.
type AttendanceHandler struct {
	svc *biz.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(svc *biz.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// CheckIn handles POST /v1/attendance/check-in.
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	att, err := h.svc.CheckIn(c.Request.Context(), userID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, att)
}

// CheckOut handles POST /v1/attendance/check-out.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	att, err := h.svc.CheckOut(c.Request.Context(), userID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, att)
}

// List handles GET /v1/attendance. The user_id query parameter defaults
// to the caller.
func (h *AttendanceHandler) List(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	userID := callerID
	if v, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil && v > 0 {
		userID = v
	}
	page, pageSize := pagination(c)
	list, err := h.svc.List(c.Request.Context(), callerID, userID, c.Query("from"), c.Query("to"), page, pageSize)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WritePage(c, list.Items, list.TotalCount, page, pageSize)
}
