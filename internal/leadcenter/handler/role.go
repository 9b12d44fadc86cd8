package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// RoleHandler handles role management HTTP requests.
type RoleHandler struct {
	svc *biz.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(svc *biz.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// Create handles POST /v1/roles.
func (h *RoleHandler) Create(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	role, err := h.svc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, role)
}

// Update handles PUT /v1/roles/:id.
func (h *RoleHandler) Update(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	roleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	role, err := h.svc.Update(c.Request.Context(), callerID, roleID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, role)
}

// Delete handles DELETE /v1/roles/:id.
func (h *RoleHandler) Delete(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	roleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), callerID, roleID); err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, "role deleted")
}

// Get handles GET /v1/roles/:id.
func (h *RoleHandler) Get(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	roleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	role, err := h.svc.Get(c.Request.Context(), callerID, roleID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, role)
}

// List handles GET /v1/roles.
func (h *RoleHandler) List(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	list, err := h.svc.List(c.Request.Context(), callerID, page, pageSize)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WritePage(c, list.Items, list.TotalCount, page, pageSize)
}
