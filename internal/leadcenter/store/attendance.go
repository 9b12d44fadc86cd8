package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

type attendanceStore struct {
	db *gorm.DB
}

func newAttendanceStore(db *gorm.DB) *attendanceStore {
	return &attendanceStore{db: db}
}

// Create inserts a new attendance record.
func (s *attendanceStore) Create(ctx context.Context, att *model.Attendance) error {
	if err := s.db.WithContext(ctx).Create(att).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyCheckedIn
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update saves the full attendance record.
func (s *attendanceStore) Update(ctx context.Context, att *model.Attendance) error {
	if err := s.db.WithContext(ctx).Save(att).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// GetByUserDay retrieves one user's record for one day.
func (s *attendanceStore) GetByUserDay(ctx context.Context, userID uint64, day string) (*model.Attendance, error) {
	var att model.Attendance
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&att).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &att, nil
}

// List returns one user's records within an inclusive day range.
// Empty bounds leave that side of the range open.
func (s *attendanceStore) List(ctx context.Context, userID uint64, fromDay, toDay string, opts ...store.Option) (int64, []*model.Attendance, error) {
	db := s.db.WithContext(ctx).Model(&model.Attendance{}).Where("user_id = ?", userID)
	if fromDay != "" {
		db = db.Where("day >= ?", fromDay)
	}
	if toDay != "" {
		db = db.Where("day <= ?", toDay)
	}
	where := store.NewWhere(opts...)
	db = where.Conditions(db)

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	var atts []*model.Attendance
	if err := where.Paginate(db).Order("day desc").Find(&atts).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, atts, nil
}
