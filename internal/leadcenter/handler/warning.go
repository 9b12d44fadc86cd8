package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// WarningHandler handles warning HTTP requests.
type WarningHandler struct {
	svc *biz.WarningService
}

// NewWarningHandler creates a new WarningHandler.
func NewWarningHandler(svc *biz.WarningService) *WarningHandler {
	return &WarningHandler{svc: svc}
}

// Issue handles POST /v1/warnings.
func (h *WarningHandler) Issue(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.IssueWarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	warning, err := h.svc.Issue(c.Request.Context(), callerID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, warning)
}

// Acknowledge handles POST /v1/warnings/:id/ack.
func (h *WarningHandler) Acknowledge(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	warningID, ok := pathID(c, "id")
	if !ok {
		return
	}
	warning, err := h.svc.Acknowledge(c.Request.Context(), callerID, warningID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, warning)
}

// List handles GET /v1/warnings.
func (h *WarningHandler) List(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	var userID uint64
	if v, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		userID = v
	}
	page, pageSize := pagination(c)
	list, err := h.svc.List(c.Request.Context(), callerID, userID, page, pageSize)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WritePage(c, list.Items, list.TotalCount, page, pageSize)
}
