package biz

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/authz"
)

// testEnv 提供一个基于 sqlite 的完整测试环境
type testEnv struct {
	factory store.Factory
	policy  *authz.Policy

	admin   *model.User // 超级管理员
	manager *model.User // 带 junior 权限的经理
	lead    *model.User // 团队负责人（team lead 角色名）
	rep     *model.User // 普通销售，汇报给 manager 角色
	rep2    *model.User // 同角色的另一个销售
	bare    *model.User // 只有裸 show 权限
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	factory, err := store.NewFactory(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = factory.Close() })

	ctx := context.Background()
	roles := factory.Roles()

	adminRole := &model.Role{Name: "Admin", Permissions: []byte(`[{"page":"*","actions":"*"}]`)}
	require.NoError(t, roles.Create(ctx, adminRole))

	managerRole := &model.Role{
		Name:        "Sales Manager",
		Permissions: []byte(`[{"page":"leads","actions":["show","own","junior","edit","assign"]}]`),
	}
	require.NoError(t, roles.Create(ctx, managerRole))

	teamLeadRole := &model.Role{
		Name:        "Team Lead",
		Permissions: []byte(`[{"page":"leads","actions":["show","own"]}]`),
	}
	require.NoError(t, roles.Create(ctx, teamLeadRole))

	repRole := &model.Role{
		Name:        "Sales Rep",
		ReportingID: managerRole.ID,
		Permissions: []byte(`[{"page":"leads","actions":["show","own","create","edit"]}]`),
	}
	require.NoError(t, roles.Create(ctx, repRole))

	bareRole := &model.Role{
		Name:        "Viewer",
		Permissions: []byte(`[{"page":"leads","actions":["show"]}]`),
	}
	require.NoError(t, roles.Create(ctx, bareRole))

	env := &testEnv{factory: factory}
	roleStore, principalStore := factory.Policy()
	env.policy = authz.NewPolicy(roleStore, principalStore)

	newUser := func(username, code string, roleID, teamLeadID uint64) *model.User {
		hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		require.NoError(t, err)
		u := &model.User{
			Username:     username,
			Password:     string(hashed),
			EmployeeCode: code,
			Department:   "sales",
			RoleID:       roleID,
			TeamLeadID:   teamLeadID,
			Status:       model.UserStatusEnabled,
		}
		require.NoError(t, factory.Users().Create(ctx, u))
		return u
	}

	env.admin = newUser("admin", "E-ADMIN", adminRole.ID, 0)
	env.manager = newUser("manager", "E-MGR", managerRole.ID, 0)
	env.lead = newUser("teamlead", "E-TL", teamLeadRole.ID, 0)
	env.rep = newUser("rep", "E-REP", repRole.ID, env.lead.ID)
	env.rep2 = newUser("rep2", "E-REP2", repRole.ID, 0)
	env.bare = newUser("viewer", "E-VIEW", bareRole.ID, 0)

	return env
}
