// Package biz implements the business logic of the lead center.
//
// Services build one authz.Batch per request so every permission and
// visibility question inside the request shares the same role graph
// and memoized principal sets.
package biz

import (
	"context"
	"strconv"

	"github.com/kart-io/lead-center/pkg/authz"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// newBatch loads the evaluation state for one principal. An unknown
// principal still yields a batch; it simply denies everything.
func newBatch(ctx context.Context, policy *authz.Policy, userID uint64) (*authz.Batch, error) {
	return policy.Batch(ctx, formatID(userID))
}

// requireAction enforces a page action grant, mapping a miss to the
// uniform permission error.
func requireAction(batch *authz.Batch, page, action string) error {
	if batch.Principal() == nil {
		return errors.ErrForbidden
	}
	if !batch.Has(page, action) {
		return errors.ErrNoPermission
	}
	return nil
}

// Pages guarded by plain action grants, outside the lead visibility
// engine.
const (
	PageUsers      = "users"
	PageRoles      = "roles"
	PageAttendance = "attendance"
	PageWarnings   = "warnings"
	PageTickets    = "tickets"
)
