package biz

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
	pkgstore "github.com/kart-io/lead-center/pkg/store"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// UserService handles user management business logic.
type UserService struct {
	store  store.Factory
	policy *authz.Policy
}

// NewUserService creates a new UserService.
func NewUserService(store store.Factory, policy *authz.Policy) *UserService {
	return &UserService{store: store, policy: policy}
}

// Create creates a new user with an encrypted password.
func (s *UserService) Create(ctx context.Context, callerID uint64, req *model.CreateUserRequest) (*model.User, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageUsers, "create"); err != nil {
		return nil, err
	}

	if _, err := s.store.Roles().Get(ctx, req.RoleID); err != nil {
		if errors.IsCode(err, errors.ErrNotFound.Code) {
			return nil, errors.ErrInvalidParam.WithMessagef("role %d does not exist", req.RoleID)
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Password:     string(hashed),
		EmployeeCode: req.EmployeeCode,
		Department:   req.Department,
		RoleID:       req.RoleID,
		TeamLeadID:   req.TeamLeadID,
		Status:       model.UserStatusEnabled,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, callerID, userID uint64, req *model.UpdateUserRequest) (*model.User, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageUsers, "edit"); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.RoleID != nil {
		if _, err := s.store.Roles().Get(ctx, *req.RoleID); err != nil {
			if errors.IsCode(err, errors.ErrNotFound.Code) {
				return nil, errors.ErrInvalidParam.WithMessagef("role %d does not exist", *req.RoleID)
			}
			return nil, err
		}
		user.RoleID = *req.RoleID
	}
	if req.TeamLeadID != nil {
		user.TeamLeadID = *req.TeamLeadID
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, callerID, userID uint64) error {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return err
	}
	if err := requireAction(batch, PageUsers, "delete"); err != nil {
		return err
	}
	if callerID == userID {
		return errors.ErrInvalidParam.WithMessage("cannot delete the current account")
	}
	return s.store.Users().Delete(ctx, userID)
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, callerID, userID uint64) (*model.User, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	// Reading your own profile needs no grant.
	if callerID != userID {
		if err := requireAction(batch, PageUsers, "show"); err != nil {
			return nil, err
		}
	}
	return s.store.Users().GetByID(ctx, userID)
}

// List returns users page by page.
func (s *UserService) List(ctx context.Context, callerID uint64, page, pageSize int) (*model.UserList, error) {
	batch, err := newBatch(ctx, s.policy, callerID)
	if err != nil {
		return nil, err
	}
	if err := requireAction(batch, PageUsers, "show"); err != nil {
		return nil, err
	}
	count, users, err := s.store.Users().List(ctx, pkgstore.WithPage(page, pageSize))
	if err != nil {
		return nil, err
	}
	return &model.UserList{TotalCount: count, Items: users}, nil
}
