package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

type userStore struct {
	db *gorm.DB
}

func newUserStore(db *gorm.DB) *userStore {
	return &userStore{db: db}
}

// Create creates a new user record.
func (s *userStore) Create(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessagef("user %q already exists", user.Username)
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update saves the full user record.
func (s *userStore) Update(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Delete soft-deletes a user by ID.
func (s *userStore) Delete(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

// Get retrieves a user by username.
func (s *userStore) Get(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &user, nil
}

// GetByID retrieves a user by primary key.
func (s *userStore) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &user, nil
}

// GetByEmployeeCode retrieves a user by employee code.
func (s *userStore) GetByEmployeeCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("employee_code = ?", code).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &user, nil
}

// List returns users matching the given query options.
func (s *userStore) List(ctx context.Context, opts ...store.Option) (int64, []*model.User, error) {
	where := store.NewWhere(opts...)
	db := where.Conditions(s.db.WithContext(ctx).Model(&model.User{}))

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	var users []*model.User
	if err := where.Paginate(db).Order("id desc").Find(&users).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, users, nil
}

// ListByRoleIDs returns all enabled users holding any of the given roles.
func (s *userStore) ListByRoleIDs(ctx context.Context, roleIDs []uint64) ([]*model.User, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var users []*model.User
	err := s.db.WithContext(ctx).
		Where("role_id IN ? AND status = ?", roleIDs, model.UserStatusEnabled).
		Find(&users).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return users, nil
}

// ListByTeamLead returns all enabled users whose team lead is the given user.
func (s *userStore) ListByTeamLead(ctx context.Context, leadID uint64) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Where("team_lead_id = ? AND status = ?", leadID, model.UserStatusEnabled).
		Find(&users).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return users, nil
}

// ListByDepartment returns all enabled users in the given department.
func (s *userStore) ListByDepartment(ctx context.Context, department string) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Where("department = ? AND status = ?", department, model.UserStatusEnabled).
		Find(&users).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return users, nil
}
