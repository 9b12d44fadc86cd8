package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/auth/jwt"
	jwtoptions "github.com/kart-io/lead-center/pkg/options/jwt"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

func newTestJWT(t *testing.T) *jwt.JWT {
	t.Helper()
	opts := jwtoptions.NewOptions()
	opts.Key = "0123456789abcdef0123456789abcdef"
	opts.Expired = 2 * time.Hour
	opts.MaxRefresh = 24 * time.Hour

	store := jwt.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	jwtAuth, err := jwt.New(opts, store)
	require.NoError(t, err)
	return jwtAuth
}

// TestAuthService_Login 测试登录流程
func TestAuthService_Login(t *testing.T) {
	env := setupEnv(t)
	svc := NewAuthService(newTestJWT(t), env.factory)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantCode int
	}{
		{
			name:     "正确凭证",
			username: "rep",
			password: "secret123",
		},
		{
			name:     "错误密码",
			username: "rep",
			password: "wrong",
			wantCode: errors.ErrInvalidCredentials.Code,
		},
		{
			name:     "用户不存在",
			username: "ghost",
			password: "secret123",
			wantCode: errors.ErrInvalidCredentials.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, &model.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}, "10.0.0.1", "go-test")
			if tt.wantCode != 0 {
				assert.True(t, errors.IsCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, env.rep.ID, resp.UserID)
			assert.Positive(t, resp.ExpiresIn)
		})
	}
}

// TestAuthService_DisabledAccount 测试禁用账号不能登录
func TestAuthService_DisabledAccount(t *testing.T) {
	env := setupEnv(t)
	svc := NewAuthService(newTestJWT(t), env.factory)
	ctx := context.Background()

	env.rep.Status = model.UserStatusDisabled
	require.NoError(t, env.factory.Users().Update(ctx, env.rep))

	_, err := svc.Login(ctx, &model.LoginRequest{Username: "rep", Password: "secret123"}, "", "")
	assert.True(t, errors.IsCode(err, errors.ErrAccountDisabled.Code))
}

// TestAuthService_LogoutRevokesToken 测试登出后令牌失效
func TestAuthService_LogoutRevokesToken(t *testing.T) {
	env := setupEnv(t)
	jwtAuth := newTestJWT(t)
	svc := NewAuthService(jwtAuth, env.factory)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.LoginRequest{Username: "rep", Password: "secret123"}, "", "")
	require.NoError(t, err)

	claims, err := jwtAuth.Verify(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, formatID(env.rep.ID), claims.Subject)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = jwtAuth.Verify(ctx, resp.Token)
	assert.True(t, errors.IsCode(err, errors.ErrTokenRevoked.Code))
}

// TestAuthService_Refresh 测试令牌刷新
func TestAuthService_Refresh(t *testing.T) {
	env := setupEnv(t)
	jwtAuth := newTestJWT(t)
	svc := NewAuthService(jwtAuth, env.factory)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.LoginRequest{Username: "rep", Password: "secret123"}, "", "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, resp.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)
	assert.NotEqual(t, resp.Token, refreshed.Token)

	claims, err := jwtAuth.Verify(ctx, refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, formatID(env.rep.ID), claims.Subject)
}

// TestAuthService_ChangePassword 测试修改密码
func TestAuthService_ChangePassword(t *testing.T) {
	env := setupEnv(t)
	svc := NewAuthService(newTestJWT(t), env.factory)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, env.rep.ID, &model.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "Newsecret123",
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidCredentials.Code))

	require.NoError(t, svc.ChangePassword(ctx, env.rep.ID, &model.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "Newsecret123",
	}))

	_, err = svc.Login(ctx, &model.LoginRequest{Username: "rep", Password: "Newsecret123"}, "", "")
	assert.NoError(t, err)
}
