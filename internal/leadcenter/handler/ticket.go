package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// TicketHandler handles ticket HTTP requests.
type TicketHandler struct {
	svc *biz.TicketService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(svc *biz.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// Create handles POST /v1/tickets.
func (h *TicketHandler) Create(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	ticket, err := h.svc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, ticket)
}

// Update handles PUT /v1/tickets/:id.
func (h *TicketHandler) Update(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	ticket, err := h.svc.Update(c.Request.Context(), callerID, ticketID, &req)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, ticket)
}

// Get handles GET /v1/tickets/:id.
func (h *TicketHandler) Get(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.svc.Get(c.Request.Context(), callerID, ticketID)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, ticket)
}

// List handles GET /v1/tickets.
func (h *TicketHandler) List(c *gin.Context) {
	callerID, ok := requireUser(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	list, err := h.svc.List(c.Request.Context(), callerID, c.Query("status"), page, pageSize)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WritePage(c, list.Items, list.TotalCount, page, pageSize)
}
