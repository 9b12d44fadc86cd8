package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// TestRoleService_Create 测试角色创建与权限文档校验
func TestRoleService_Create(t *testing.T) {
	env := setupEnv(t)
	svc := NewRoleService(env.factory, env.policy)
	ctx := context.Background()

	t.Run("无 roles 权限时拒绝", func(t *testing.T) {
		_, err := svc.Create(ctx, env.bare.ID, &model.CreateRoleRequest{Name: "Intern"})
		assert.True(t, errors.IsCode(err, errors.ErrNoPermission.Code))
	})

	t.Run("管理员创建成功", func(t *testing.T) {
		role, err := svc.Create(ctx, env.admin.ID, &model.CreateRoleRequest{
			Name:        "Intern",
			Permissions: []byte(`[{"page":"leads","actions":["own"]}]`),
		})
		require.NoError(t, err)
		assert.NotZero(t, role.ID)
	})

	t.Run("无效权限文档被拒绝", func(t *testing.T) {
		_, err := svc.Create(ctx, env.admin.ID, &model.CreateRoleRequest{
			Name:        "Broken",
			Permissions: []byte(`{"page":"leads"}`),
		})
		assert.True(t, errors.IsCode(err, errors.ErrInvalidParam.Code))
	})

	t.Run("汇报角色不存在被拒绝", func(t *testing.T) {
		_, err := svc.Create(ctx, env.admin.ID, &model.CreateRoleRequest{
			Name:        "Orphan",
			ReportingID: 99999,
		})
		assert.True(t, errors.IsCode(err, errors.ErrInvalidParam.Code))
	})
}

// TestRoleService_Update 测试角色更新的约束
func TestRoleService_Update(t *testing.T) {
	env := setupEnv(t)
	svc := NewRoleService(env.factory, env.policy)
	ctx := context.Background()

	role, err := svc.Create(ctx, env.admin.ID, &model.CreateRoleRequest{Name: "Temp"})
	require.NoError(t, err)

	t.Run("角色不能汇报给自己", func(t *testing.T) {
		_, err := svc.Update(ctx, env.admin.ID, role.ID, &model.UpdateRoleRequest{
			ReportingID: &role.ID,
		})
		assert.True(t, errors.IsCode(err, errors.ErrInvalidParam.Code))
	})

	t.Run("更新权限文档", func(t *testing.T) {
		updated, err := svc.Update(ctx, env.admin.ID, role.ID, &model.UpdateRoleRequest{
			Permissions: []byte(`[{"page":"tickets","actions":["show","edit"]}]`),
		})
		require.NoError(t, err)
		assert.JSONEq(t, `[{"page":"tickets","actions":["show","edit"]}]`, string(updated.Permissions))
	})
}

// TestRoleService_Delete 测试删除被使用中的角色
func TestRoleService_Delete(t *testing.T) {
	env := setupEnv(t)
	svc := NewRoleService(env.factory, env.policy)
	ctx := context.Background()

	t.Run("有用户持有的角色不可删除", func(t *testing.T) {
		err := svc.Delete(ctx, env.admin.ID, env.rep.RoleID)
		assert.True(t, errors.IsCode(err, errors.ErrRoleInUse.Code))
	})

	t.Run("空角色可以删除", func(t *testing.T) {
		role, err := svc.Create(ctx, env.admin.ID, &model.CreateRoleRequest{Name: "Empty"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, env.admin.ID, role.ID))
		_, err = svc.Get(ctx, env.admin.ID, role.ID)
		assert.True(t, errors.IsCode(err, errors.ErrNotFound.Code))
	})
}

// TestRoleService_List 测试角色列表
func TestRoleService_List(t *testing.T) {
	env := setupEnv(t)
	svc := NewRoleService(env.factory, env.policy)
	ctx := context.Background()

	list, err := svc.List(ctx, env.admin.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, list.TotalCount)

	_, err = svc.List(ctx, env.rep.ID, 1, 10)
	assert.True(t, errors.IsCode(err, errors.ErrNoPermission.Code))
}
