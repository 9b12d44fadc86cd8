package biz

import (
	"context"
	"time"

	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	pkgstore "github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// WarningService handles disciplinary warning business logic.
type WarningService struct {
	store  store.Factory
	policy *authz.Policy
}

// NewWarningService creates a new WarningService.
func NewWarningService(store store.Factory, policy *authz.Policy) *WarningService {
	return &WarningService{store: store, policy: policy}
}

// Issue creates a warning against a user.
func (s *WarningService) Issue(ctx context.Context, callerID uint64, req *model.IssueWarningRequest) (*model.Warning, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageWarnings, "create"); err != nil {
		return nil, err
	}
	if req.UserID == callerID {
		return nil, errors.ErrInvalidParam.WithMessage("cannot issue a warning against yourself")
	}
	if _, err := s.store.Users().GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	level := req.Level
	if level == "" {
		level = "minor"
	}
	warning := &model.Warning{
		UserID:   req.UserID,
		IssuedBy: callerID,
		Level:    level,
		Reason:   req.Reason,
		Status:   model.WarningStatusIssued,
	}
	if err := s.store.Warnings().Create(ctx, warning); err != nil {
		return nil, err
	}
	return warning, nil
}

// Acknowledge marks a warning as seen. Only the warned user may
// acknowledge, and only once.
func (s *WarningService) Acknowledge(ctx context.Context, callerID, warningID uint64) (*model.Warning, error) {
	warning, err := s.store.Warnings().Get(ctx, warningID)
	if err != nil {
		return nil, err
	}
	if warning.UserID != callerID {
		return nil, errors.ErrNoPermission
	}
	if warning.Status == model.WarningStatusAcknowledged {
		return nil, errors.ErrInvalidParam.WithMessage("warning is already acknowledged")
	}

	warning.Status = model.WarningStatusAcknowledged
	warning.AcknowledgedAt = time.Now().UnixMilli()
	if err := s.store.Warnings().Update(ctx, warning); err != nil {
		return nil, err
	}
	return warning, nil
}

// List returns warnings. Without a warnings grant the caller only sees
// their own.
func (s *WarningService) List(ctx context.Context, callerID uint64, userID uint64, page, pageSize int) (*model.WarningList, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}

	target := userID
	if !batch.Has(PageWarnings, "show") {
		target = callerID
	}

	opts := []pkgstore.Option{pkgstore.WithPage(page, pageSize)}
	if target != 0 {
		opts = append(opts, pkgstore.WithFilter(map[interface{}]interface{}{"user_id": target}))
	}
	count, items, err := s.store.Warnings().List(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &model.WarningList{TotalCount: count, Items: items}, nil
}
