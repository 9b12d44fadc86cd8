package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

type roleStore struct {
	db *gorm.DB
}

func newRoleStore(db *gorm.DB) *roleStore {
	return &roleStore{db: db}
}

// Create creates a new role record.
func (s *roleStore) Create(ctx context.Context, role *model.Role) error {
	if err := s.db.WithContext(ctx).Create(role).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessagef("role %q already exists", role.Name)
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update saves the full role record.
func (s *roleStore) Update(ctx context.Context, role *model.Role) error {
	if err := s.db.WithContext(ctx).Save(role).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Delete soft-deletes a role by ID.
func (s *roleStore) Delete(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&model.Role{}, id)
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// Get retrieves a role by primary key.
func (s *roleStore) Get(ctx context.Context, id uint64) (*model.Role, error) {
	var role model.Role
	if err := s.db.WithContext(ctx).First(&role, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &role, nil
}

// List returns roles matching the given query options.
func (s *roleStore) List(ctx context.Context, opts ...store.Option) (int64, []*model.Role, error) {
	where := store.NewWhere(opts...)
	db := where.Conditions(s.db.WithContext(ctx).Model(&model.Role{}))

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	var roles []*model.Role
	if err := where.Paginate(db).Order("id desc").Find(&roles).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, roles, nil
}

// ListAll returns every role. The reporting graph spans the whole table,
// so no pagination applies here.
func (s *roleStore) ListAll(ctx context.Context) ([]*model.Role, error) {
	var roles []*model.Role
	if err := s.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return roles, nil
}

// CountUsers counts active users holding the given role.
func (s *roleStore) CountUsers(ctx context.Context, roleID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	if err != nil {
		return 0, errors.ErrDatabase.WithCause(err)
	}
	return count, nil
}
