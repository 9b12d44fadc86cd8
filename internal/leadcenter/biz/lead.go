package biz

import (
	"context"
	"strconv"

	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	pkgstore "github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/id"
)

// LeadService handles lead business logic. Every read and write goes
// through the visibility policy first.
type LeadService struct {
	store  store.Factory
	policy *authz.Policy
}

// NewLeadService creates a new LeadService.
func NewLeadService(store store.Factory, policy *authz.Policy) *LeadService {
	return &LeadService{store: store, policy: policy}
}

// record assembles the policy view of a lead, including its membership
// links.
func (s *LeadService) record(ctx context.Context, lead *model.Lead) (*authz.Record, []uint64, []uint64, error) {
	assignees, err := s.store.Leads().Assignees(ctx, lead.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	reporters, err := s.store.Leads().Reporters(ctx, lead.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := &authz.Record{
		ID:        formatID(lead.ID),
		CreatedBy: formatID(lead.CreatedBy),
	}
	if lead.TeamLeadID != 0 {
		rec.TeamLead = formatID(lead.TeamLeadID)
	}
	for _, uid := range assignees {
		rec.AssignedTo = append(rec.AssignedTo, formatID(uid))
	}
	for _, uid := range reporters {
		rec.ReportTo = append(rec.ReportTo, formatID(uid))
	}
	return rec, assignees, reporters, nil
}

// visibleLead loads a lead and checks the caller may see it. A lead the
// caller cannot see reports access denied, not absence; existence of a
// lead ID is not sensitive here and the distinction helps support.
func (s *LeadService) visibleLead(ctx context.Context, batch *authz.Batch, leadID uint64) (*model.Lead, *authz.Record, []uint64, []uint64, error) {
	lead, err := s.store.Leads().Get(ctx, leadID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	rec, assignees, reporters, err := s.record(ctx, lead)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if !batch.CanView(rec) {
		return nil, nil, nil, nil, errors.ErrLeadAccessDenied
	}
	return lead, rec, assignees, reporters, nil
}

// resolveRefs maps user IDs or employee codes to primary keys. An
// unresolvable reference fails the request instead of being dropped.
func (s *LeadService) resolveRefs(ctx context.Context, refs []string) ([]uint64, error) {
	_, people := s.store.Policy()
	out := make([]uint64, 0, len(refs))
	seen := make(map[uint64]struct{}, len(refs))
	for _, ref := range refs {
		p, err := people.ResolveRef(ctx, ref)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, errors.ErrInvalidParam.WithMessagef("unknown user reference %q", ref)
		}
		uid, err := strconv.ParseUint(p.ID, 10, 64)
		if err != nil {
			return nil, errors.ErrInvalidParam.WithMessagef("unknown user reference %q", ref)
		}
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}
		out = append(out, uid)
	}
	return out, nil
}

// Create creates a lead owned by the caller.
func (s *LeadService) Create(ctx context.Context, userID uint64, req *model.CreateLeadRequest) (*model.Lead, error) {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, authz.PageLeads, "create"); err != nil {
		return nil, err
	}

	assignees, err := s.resolveRefs(ctx, req.Assignees)
	if err != nil {
		return nil, err
	}
	reporters, err := s.resolveRefs(ctx, req.Reporters)
	if err != nil {
		return nil, err
	}

	var teamLeadID uint64
	if p := batch.Principal(); p != nil && p.TeamLeadID != "" {
		teamLeadID, _ = strconv.ParseUint(p.TeamLeadID, 10, 64)
	}

	lead := &model.Lead{
		Number:     id.NewLeadNumber(),
		Name:       req.Name,
		Contact:    req.Contact,
		Phone:      req.Phone,
		Source:     req.Source,
		Status:     model.LeadStatusNew,
		CreatedBy:  userID,
		TeamLeadID: teamLeadID,
	}
	if err := s.store.Leads().Create(ctx, lead, assignees, reporters); err != nil {
		return nil, err
	}
	return lead, nil
}

// Get returns one lead with the caller's action matrix.
func (s *LeadService) Get(ctx context.Context, userID, leadID uint64) (*model.LeadInfo, error) {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return nil, err
	}
	lead, rec, assignees, reporters, err := s.visibleLead(ctx, batch, leadID)
	if err != nil {
		return nil, err
	}
	return &model.LeadInfo{
		Lead:         lead,
		Assignees:    assignees,
		Reporters:    reporters,
		Capabilities: batch.Capabilities(rec),
	}, nil
}

// List returns the leads visible to the caller.
func (s *LeadService) List(ctx context.Context, userID uint64, page, pageSize int, status string) (*model.LeadList, error) {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return nil, err
	}

	opts := []pkgstore.Option{pkgstore.WithPage(page, pageSize)}
	if status != "" {
		opts = append(opts, pkgstore.WithFilter(map[interface{}]interface{}{"status": status}))
	}

	count, leads, err := s.store.Leads().List(ctx, batch.Filter(), opts...)
	if err != nil {
		return nil, err
	}
	return &model.LeadList{TotalCount: count, Items: leads}, nil
}

// Update applies a partial update to a lead the caller may edit.
func (s *LeadService) Update(ctx context.Context, userID, leadID uint64, req *model.UpdateLeadRequest) (*model.Lead, error) {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return nil, err
	}
	lead, rec, _, _, err := s.visibleLead(ctx, batch, leadID)
	if err != nil {
		return nil, err
	}
	if !batch.Capabilities(rec).CanEdit {
		return nil, errors.ErrNoPermission
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Contact != nil {
		lead.Contact = *req.Contact
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if err := s.store.Leads().Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Delete removes a lead the caller may delete.
func (s *LeadService) Delete(ctx context.Context, userID, leadID uint64) error {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return err
	}
	_, rec, _, _, err := s.visibleLead(ctx, batch, leadID)
	if err != nil {
		return err
	}
	if !batch.Capabilities(rec).CanDelete {
		return errors.ErrNoPermission
	}
	return s.store.Leads().Delete(ctx, leadID)
}

// Assign replaces the assignee set of a lead the caller may assign.
func (s *LeadService) Assign(ctx context.Context, userID, leadID uint64, req *model.AssignLeadRequest) error {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return err
	}
	_, rec, _, _, err := s.visibleLead(ctx, batch, leadID)
	if err != nil {
		return err
	}
	if !batch.Capabilities(rec).CanAssign {
		return errors.ErrNoPermission
	}

	assignees, err := s.resolveRefs(ctx, req.Assignees)
	if err != nil {
		return err
	}
	return s.store.Leads().ReplaceAssignees(ctx, leadID, assignees)
}

// AddNote appends a note to a lead the caller may annotate.
func (s *LeadService) AddNote(ctx context.Context, userID, leadID uint64, req *model.AddNoteRequest) (*model.LeadNote, error) {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return nil, err
	}
	_, rec, _, _, err := s.visibleLead(ctx, batch, leadID)
	if err != nil {
		return nil, err
	}
	if !batch.Capabilities(rec).CanAddNotes {
		return nil, errors.ErrNoPermission
	}

	note := &model.LeadNote{LeadID: leadID, AuthorID: userID, Content: req.Content}
	if err := s.store.Leads().AddNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Notes lists the notes on a lead the caller may see.
func (s *LeadService) Notes(ctx context.Context, userID, leadID uint64) ([]*model.LeadNote, error) {
	batch, err := newBatch(ctx, s.policy, userID)
	if err != nil {
		return nil, err
	}
	if _, _, _, _, err := s.visibleLead(ctx, batch, leadID); err != nil {
		return nil, err
	}
	return s.store.Leads().ListNotes(ctx, leadID)
}
