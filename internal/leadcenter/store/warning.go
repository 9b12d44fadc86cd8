package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

type warningStore struct {
	db *gorm.DB
}

func newWarningStore(db *gorm.DB) *warningStore {
	return &warningStore{db: db}
}

// Create inserts a new warning record.
func (s *warningStore) Create(ctx context.Context, warning *model.Warning) error {
	if err := s.db.WithContext(ctx).Create(warning).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update saves the full warning record.
func (s *warningStore) Update(ctx context.Context, warning *model.Warning) error {
	if err := s.db.WithContext(ctx).Save(warning).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a warning by primary key.
func (s *warningStore) Get(ctx context.Context, id uint64) (*model.Warning, error) {
	var warning model.Warning
	if err := s.db.WithContext(ctx).First(&warning, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &warning, nil
}

// List returns warnings matching the given query options.
func (s *warningStore) List(ctx context.Context, opts ...store.Option) (int64, []*model.Warning, error) {
	where := store.NewWhere(opts...)
	db := where.Conditions(s.db.WithContext(ctx).Model(&model.Warning{}))

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	var warnings []*model.Warning
	if err := where.Paginate(db).Order("id desc").Find(&warnings).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, warnings, nil
}
