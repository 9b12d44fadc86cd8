package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// LeadHandler handles lead HTTP requests.
type LeadHandler struct {
	svc *biz.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(svc *biz.LeadService) *LeadHandler {
	return &LeadHandler{svc: svc}
}

// Create handles POST /v1/leads.
func (h *LeadHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	lead, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, lead)
}

// Get handles GET /v1/leads/:id.
func (h *LeadHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	info, err := h.svc.Get(c.Request.Context(), userID, leadID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, info)
}

// List handles GET /v1/leads.
func (h *LeadHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	list, err := h.svc.List(c.Request.Context(), userID, page, pageSize, c.Query("status"))
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WritePage(c, list.Items, list.TotalCount, page, pageSize)
}

// Update handles PUT /v1/leads/:id.
func (h *LeadHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	lead, err := h.svc.Update(c.Request.Context(), userID, leadID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, lead)
}

// Delete handles DELETE /v1/leads/:id.
func (h *LeadHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, leadID); err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, "lead deleted")
}

// Assign handles POST /v1/leads/:id/assign.
func (h *LeadHandler) Assign(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	if err := h.svc.Assign(c.Request.Context(), userID, leadID, &req); err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, "lead assigned")
}

// AddNote handles POST /v1/leads/:id/notes.
func (h *LeadHandler) AddNote(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	note, err := h.svc.AddNote(c.Request.Context(), userID, leadID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, note)
}

// ListNotes handles GET /v1/leads/:id/notes.
func (h *LeadHandler) ListNotes(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	leadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	notes, err := h.svc.Notes(c.Request.Context(), userID, leadID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, notes)
}
