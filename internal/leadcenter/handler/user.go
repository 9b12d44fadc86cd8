package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// UserHandler handles user management HTTP requests.
type UserHandler struct {
	svc *biz.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *biz.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /v1/users.
func (h *UserHandler) Create(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	user, err := h.svc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, user)
}

// Update handles PUT /v1/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	user, err := h.svc.Update(c.Request.Context(), callerID, userID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, user)
}

// Delete handles DELETE /v1/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), callerID, userID); err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, "user deleted")
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.svc.Get(c.Request.Context(), callerID, userID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, user)
}

// List handles GET /v1/users.
func (h *UserHandler) List(c *gin.Context) {
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

// Profile handles GET /auth/me.
func (h *UserHandler) Profile(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	user, err := h.svc.Get(c.Request.Context(), callerID, callerID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, user)
}
