package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// TestAttendanceService_CheckInOut 测试打卡流程
func TestAttendanceService_CheckInOut(t *testing.T) {
	env := setupEnv(t)
	svc := NewAttendanceService(env.factory, env.policy)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	att, err := svc.CheckIn(ctx, env.rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", att.Day)
	assert.NotZero(t, att.CheckInAt)

	t.Run("同一天重复打卡被拒绝", func(t *testing.T) {
		_, err := svc.CheckIn(ctx, env.rep.ID)
		assert.True(t, errors.IsCode(err, errors.ErrAlreadyCheckedIn.Code))
	})

	t.Run("签退写入签退时间", func(t *testing.T) {
		svc.now = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }
		out, err := svc.CheckOut(ctx, env.rep.ID)
		require.NoError(t, err)
		assert.Greater(t, out.CheckOutAt, out.CheckInAt)
	})

	t.Run("未签到不能签退", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, env.rep2.ID)
		assert.True(t, errors.IsCode(err, errors.ErrNotCheckedIn.Code))
	})
}

// TestAttendanceService_List 测试考勤查询权限与日期范围
func TestAttendanceService_List(t *testing.T) {
	env := setupEnv(t)
	svc := NewAttendanceService(env.factory, env.policy)
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		svc.now = func() time.Time { return day.AddDate(0, 0, i) }
		_, err := svc.CheckIn(ctx, env.rep.ID)
		require.NoError(t, err)
	}

	t.Run("查看自己的考勤不需要权限", func(t *testing.T) {
		list, err := svc.List(ctx, env.rep.ID, env.rep.ID, "", "", 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 3, list.TotalCount)
	})

	t.Run("日期范围过滤", func(t *testing.T) {
		list, err := svc.List(ctx, env.rep.ID, env.rep.ID, "2026-03-03", "2026-03-04", 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, list.TotalCount)
	})

	t.Run("查看他人考勤需要 attendance 权限", func(t *testing.T) {
		_, err := svc.List(ctx, env.rep2.ID, env.rep.ID, "", "", 1, 10)
		assert.True(t, errors.IsCode(err, errors.ErrNoPermission.Code))

		list, err := svc.List(ctx, env.admin.ID, env.rep.ID, "", "", 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 3, list.TotalCount)
	})
}
