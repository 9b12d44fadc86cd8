package biz

import (
	"context"
	"time"

	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	pkgstore "github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/id"
)

// TicketService handles support ticket business logic.
type TicketService struct {
	store  store.Factory
	policy *authz.Policy
}

// NewTicketService creates a new TicketService.
func NewTicketService(store store.Factory, policy *authz.Policy) *TicketService {
	return &TicketService{store: store, policy: policy}
}

// Create opens a ticket. Any authenticated user may open one.
func (s *TicketService) Create(ctx context.Context, callerID uint64, req *model.CreateTicketRequest) (*model.Ticket, error) {
	ticket := &model.Ticket{
		Number:      id.NewTicketNumber(),
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TicketStatusOpen,
		OpenedBy:    callerID,
	}
	if err := s.store.Tickets().Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// canTouch reports whether the caller may act on the ticket: the
// opener, the assignee, or anyone holding a tickets grant.
func (s *TicketService) canTouch(batch *authz.Batch, callerID uint64, ticket *model.Ticket) bool {
	if ticket.OpenedBy == callerID || ticket.AssigneeID == callerID {
		return true
	}
	return batch.Has(PageTickets, "edit")
}

// Update changes the status or assignee of a ticket. Closed tickets
// are immutable.
func (s *TicketService) Update(ctx context.Context, callerID, ticketID uint64, req *model.UpdateTicketRequest) (*model.Ticket, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.store.Tickets().Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canTouch(batch, callerID, ticket) {
		return nil, errors.ErrNoPermission
	}
	if ticket.Status == model.TicketStatusClosed {
		return nil, errors.ErrTicketClosed
	}

	now := time.Now().UnixMilli()
	if req.AssigneeID != nil {
		if _, err := s.store.Users().GetByID(ctx, *req.AssigneeID); err != nil {
			return nil, err
		}
		ticket.AssigneeID = *req.AssigneeID
		if ticket.Status == model.TicketStatusOpen {
			ticket.Status = model.TicketStatusAssigned
		}
	}
	if req.Status != nil {
		switch *req.Status {
		case model.TicketStatusResolved:
			ticket.ResolvedAt = now
		case model.TicketStatusClosed:
			ticket.ClosedAt = now
		}
		ticket.Status = *req.Status
	}
	if err := s.store.Tickets().Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Get returns one ticket the caller may see.
func (s *TicketService) Get(ctx context.Context, callerID, ticketID uint64) (*model.Ticket, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.store.Tickets().Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.OpenedBy != callerID && ticket.AssigneeID != callerID && !batch.Has(PageTickets, "show") {
		return nil, errors.ErrNoPermission
	}
	return ticket, nil
}

// List returns tickets. Without a tickets grant the caller only sees
// tickets they opened.
func (s *TicketService) List(ctx context.Context, callerID uint64, status string, page, pageSize int) (*model.TicketList, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}

	opts := []pkgstore.Option{pkgstore.WithPage(page, pageSize)}
	if status != "" {
		opts = append(opts, pkgstore.WithFilter(map[interface{}]interface{}{"status": status}))
	}
	if !batch.Has(PageTickets, "show") {
		opts = append(opts, pkgstore.WithQuery("opened_by = ? OR assignee_id = ?", callerID, callerID))
	}

	count, items, err := s.store.Tickets().List(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &model.TicketList{TotalCount: count, Items: items}, nil
}
