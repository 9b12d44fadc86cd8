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

const dayLayout = "2006-01-02"

// AttendanceService handles check-in and check-out business logic.
type AttendanceService struct {
	store  store.Factory
	policy *authz.Policy

	// now is swappable for tests.
	now func() time.Time
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(store store.Factory, policy *authz.Policy) *AttendanceService {
	return &AttendanceService{store: store, policy: policy, now: time.Now}
}

// CheckIn opens today's attendance record for the caller. A second
// check-in on the same day is rejected.
func (s *AttendanceService) CheckIn(ctx context.Context, userID uint64) (*model.Attendance, error) {
	now := s.now()
	att := &model.Attendance{
		UserID:    userID,
		Day:       now.Format(dayLayout),
		CheckInAt: now.UnixMilli(),
	}
	if err := s.store.Attendances().Create(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// CheckOut closes today's attendance record for the caller.
func (s *AttendanceService) CheckOut(ctx context.Context, userID uint64) (*model.Attendance, error) {
	now := s.now()
	att, err := s.store.Attendances().GetByUserDay(ctx, userID, now.Format(dayLayout))
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound.Code) {
			return nil, errors.ErrNotCheckedIn
		}
		return nil, err
	}
	if att.CheckInAt == 0 {
		return nil, errors.ErrNotCheckedIn
	}

	att.CheckOutAt = now.UnixMilli()
	if err := s.store.Attendances().Update(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// List returns attendance records for one user within a day range.
// Everyone may read their own history; reading someone else's requires
// an attendance grant.
func (s *AttendanceService) List(ctx context.Context, callerID, userID uint64, fromDay, toDay string, page, pageSize int) (*model.AttendanceList, error) {
	if callerID != userID {
		batch, err := newBatch(ctx, s.policy, callerID)
		if err != nil {
			return nil, err
		}
		if err := requireAction(batch, PageAttendance, "show"); err != nil {
			return nil, err
		}
	}

	count, items, err := s.store.Attendances().List(ctx, userID, fromDay, toDay, pkgstore.WithPage(page, pageSize))
	if err != nil {
		return nil, err
	}
	return &model.AttendanceList{TotalCount: count, Items: items}, nil
}
