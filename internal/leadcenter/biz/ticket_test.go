package biz

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// TestTicketService_Lifecycle 测试工单的完整生命周期
func TestTicketService_Lifecycle(t *testing.T) {
	env := setupEnv(t)
	svc := NewTicketService(env.factory, env.policy)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, env.rep.ID, &model.CreateTicketRequest{
		Title: "打印机故障",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.Number, "TK-"))
	assert.Equal(t, model.TicketStatusOpen, ticket.Status)

	t.Run("指派后状态变为 assigned", func(t *testing.T) {
		updated, err := svc.Update(ctx, env.admin.ID, ticket.ID, &model.UpdateTicketRequest{
			AssigneeID: &env.rep2.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusAssigned, updated.Status)
		assert.Equal(t, env.rep2.ID, updated.AssigneeID)
	})

	t.Run("被指派人可以解决工单", func(t *testing.T) {
		status := model.TicketStatusResolved
		updated, err := svc.Update(ctx, env.rep2.ID, ticket.ID, &model.UpdateTicketRequest{
			Status: &status,
		})
		require.NoError(t, err)
		assert.NotZero(t, updated.ResolvedAt)
	})

	t.Run("关闭后不可再修改", func(t *testing.T) {
		status := model.TicketStatusClosed
		_, err := svc.Update(ctx, env.rep.ID, ticket.ID, &model.UpdateTicketRequest{
			Status: &status,
		})
		require.NoError(t, err)

		reopen := model.TicketStatusOpen
		_, err = svc.Update(ctx, env.rep.ID, ticket.ID, &model.UpdateTicketRequest{
			Status: &reopen,
		})
		assert.True(t, errors.IsCode(err, errors.ErrTicketClosed.Code))
	})
}

// TestTicketService_AccessControl 测试工单访问控制
func TestTicketService_AccessControl(t *testing.T) {
	env := setupEnv(t)
	svc := NewTicketService(env.factory, env.policy)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, env.rep.ID, &model.CreateTicketRequest{Title: "账号异常"})
	require.NoError(t, err)

	t.Run("无关用户不能查看", func(t *testing.T) {
		_, err := svc.Get(ctx, env.rep2.ID, ticket.ID)
		assert.True(t, errors.IsCode(err, errors.ErrNoPermission.Code))
	})

	t.Run("开单人可以查看", func(t *testing.T) {
		got, err := svc.Get(ctx, env.rep.ID, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, ticket.ID, got.ID)
	})

	t.Run("无关用户不能修改", func(t *testing.T) {
		status := model.TicketStatusResolved
		_, err := svc.Update(ctx, env.rep2.ID, ticket.ID, &model.UpdateTicketRequest{
			Status: &status,
		})
		assert.True(t, errors.IsCode(err, errors.ErrNoPermission.Code))
	})

	t.Run("指派目标必须存在", func(t *testing.T) {
		ghost := uint64(99999)
		_, err := svc.Update(ctx, env.admin.ID, ticket.ID, &model.UpdateTicketRequest{
			AssigneeID: &ghost,
		})
		assert.True(t, errors.IsCode(err, errors.ErrUserNotFound.Code))
	})
}

// TestTicketService_ListScope 测试无权限时只能看到与自己相关的工单
func TestTicketService_ListScope(t *testing.T) {
	env := setupEnv(t)
	svc := NewTicketService(env.factory, env.policy)
	ctx := context.Background()

	mine, err := svc.Create(ctx, env.rep.ID, &model.CreateTicketRequest{Title: "我的工单"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, env.rep2.ID, &model.CreateTicketRequest{Title: "别人的工单"})
	require.NoError(t, err)

	t.Run("普通用户只看到自己开的或被指派的", func(t *testing.T) {
		list, err := svc.List(ctx, env.rep.ID, "", 1, 10)
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, mine.ID, list.Items[0].ID)
	})

	t.Run("管理员看到全部并可按状态过滤", func(t *testing.T) {
		list, err := svc.List(ctx, env.admin.ID, "", 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, list.TotalCount)

		list, err = svc.List(ctx, env.admin.ID, model.TicketStatusOpen, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, list.TotalCount)
	})
}
