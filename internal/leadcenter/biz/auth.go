package biz

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/auth"
	"github.com/kart-io/lead-center/pkg/auth/jwt"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// AuthService handles authentication business logic.
type AuthService struct {
	jwtAuth *jwt.JWT
	store   store.Factory
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtAuth *jwt.JWT, store store.Factory) *AuthService {
	return &AuthService{
		jwtAuth: jwtAuth,
		store:   store,
	}
}

// Login authenticates a user and returns a token. The attempt is
// written to the login log either way.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest, ip, userAgent string) (*model.LoginResponse, error) {
	record := &model.LoginLog{Username: req.Username, IP: ip, UserAgent: userAgent}

	user, err := s.store.Users().Get(ctx, req.Username)
	if err != nil {
		s.store.LoginLogs().Record(record)
		if errors.IsCode(err, errors.ErrUserNotFound.Code) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}
	record.UserID = user.ID

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		s.store.LoginLogs().Record(record)
		return nil, errors.ErrInvalidCredentials
	}
	if user.Status == model.UserStatusDisabled {
		s.store.LoginLogs().Record(record)
		return nil, errors.ErrAccountDisabled
	}

	token, err := s.jwtAuth.Sign(ctx, formatID(user.ID), auth.WithExtra(map[string]interface{}{
		"username": user.Username,
		"role_id":  user.RoleID,
	}))
	if err != nil {
		return nil, err
	}

	record.Success = true
	s.store.LoginLogs().Record(record)

	return &model.LoginResponse{
		Token:     token.AccessToken,
		ExpiresIn: token.ExpiresIn,
		UserID:    user.ID,
	}, nil
}

// Logout revokes the presented token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.jwtAuth.Revoke(ctx, token)
}

// Refresh exchanges a valid or recently expired token for a fresh one.
func (s *AuthService) Refresh(ctx context.Context, tokenString string) (*model.RefreshResponse, error) {
	token, err := s.jwtAuth.Refresh(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return &model.RefreshResponse{
		Token:     token.AccessToken,
		ExpiresIn: token.ExpiresIn,
	}, nil
}

// ChangePassword verifies the old password and stores the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, req *model.ChangePasswordRequest) error {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return errors.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.store.Users().Update(ctx, user)
}
