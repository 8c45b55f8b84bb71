package services

import (
	"testing"

	"libms/internal/models"
	"libms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrincipal(t *testing.T) {
	db := newTestDB(t)
	ac := NewAccessControlService(db, nil)

	t.Run("用户不存在按未登录处理", func(t *testing.T) {
		_, err := ac.ResolvePrincipal(999)
		assert.ErrorIs(t, err, errors.ErrUnauthenticated)
	})

	t.Run("零值ID按未登录处理", func(t *testing.T) {
		_, err := ac.ResolvePrincipal(0)
		assert.ErrorIs(t, err, errors.ErrUnauthenticated)
	})

	t.Run("停用用户按未登录处理", func(t *testing.T) {
		user := createTestUser(t, db, "inactive@example.com")
		require.NoError(t, db.Model(user).Update("status", models.UserStatusInactive).Error)

		_, err := ac.ResolvePrincipal(user.ID)
		assert.ErrorIs(t, err, errors.ErrUnauthenticated)
	})

	t.Run("成员关系按插入顺序返回", func(t *testing.T) {
		user := createTestUser(t, db, "multi@example.com")
		tenantA := createTestTenant(t, db, "图书馆A", "lib-a")
		tenantB := createTestTenant(t, db, "图书馆B", "lib-b")
		addMembership(t, db, user.ID, tenantA.ID, models.RoleMember)
		addMembership(t, db, user.ID, tenantB.ID, models.RoleAdmin)

		resolved, err := ac.ResolvePrincipal(user.ID)
		require.NoError(t, err)
		require.Len(t, resolved.UserTenants, 2)
		assert.Equal(t, tenantA.ID, resolved.UserTenants[0].TenantID)
		assert.Equal(t, tenantB.ID, resolved.UserTenants[1].TenantID)
	})
}

func TestResolveActiveTenant(t *testing.T) {
	db := newTestDB(t)
	ac := NewAccessControlService(db, nil)

	t.Run("零成员关系返回无租户", func(t *testing.T) {
		user := createTestUser(t, db, "lonely@example.com")

		resolved, err := ac.ResolvePrincipal(user.ID)
		require.NoError(t, err)

		_, err = ac.ResolveActiveTenant(resolved, "")
		assert.ErrorIs(t, err, errors.ErrNoTenantAccess)
	})

	t.Run("未指定slug时默认第一条成员关系", func(t *testing.T) {
		user := createTestUser(t, db, "default@example.com")
		tenantA := createTestTenant(t, db, "先加入", "first-lib")
		tenantB := createTestTenant(t, db, "后加入", "second-lib")
		addMembership(t, db, user.ID, tenantA.ID, models.RoleMember)
		addMembership(t, db, user.ID, tenantB.ID, models.RoleMember)

		resolved, err := ac.ResolvePrincipal(user.ID)
		require.NoError(t, err)

		tenant, err := ac.ResolveActiveTenant(resolved, "")
		require.NoError(t, err)
		assert.Equal(t, tenantA.ID, tenant.ID)
	})

	t.Run("指定slug时必须持有对应成员关系", func(t *testing.T) {
		user := createTestUser(t, db, "scoped@example.com")
		mine := createTestTenant(t, db, "我的馆", "mine")
		other := createTestTenant(t, db, "别人的馆", "other")
		addMembership(t, db, user.ID, mine.ID, models.RoleMember)

		resolved, err := ac.ResolvePrincipal(user.ID)
		require.NoError(t, err)

		tenant, err := ac.ResolveActiveTenant(resolved, "mine")
		require.NoError(t, err)
		assert.Equal(t, mine.ID, tenant.ID)

		// 租户存在但无成员关系：失败，不回退到自己的租户
		_, err = ac.ResolveActiveTenant(resolved, other.Slug)
		assert.ErrorIs(t, err, errors.ErrNoTenantAccess)

		// 完全不存在的slug同样失败
		_, err = ac.ResolveActiveTenant(resolved, "no-such-lib")
		assert.ErrorIs(t, err, errors.ErrNoTenantAccess)
	})
}

func TestIsAdmin(t *testing.T) {
	db := newTestDB(t)
	ac := NewAccessControlService(db, []string{"Root@Example.COM"})

	t.Run("白名单邮箱不区分大小写", func(t *testing.T) {
		user := createTestUser(t, db, "root@example.com")

		resolved, err := ac.ResolvePrincipal(user.ID)
		require.NoError(t, err)

		assert.True(t, ac.IsSystemAdmin(resolved))
		assert.True(t, ac.IsAdmin(resolved))
	})

	t.Run("任意租户的admin角色授予全局管理员", func(t *testing.T) {
		user := createTestUser(t, db, "tenantadmin@example.com")
		tenant := createTestTenant(t, db, "某图书馆", "some-lib")
		addMembership(t, db, user.ID, tenant.ID, models.RoleAdmin)

		resolved, err := ac.ResolvePrincipal(user.ID)
		require.NoError(t, err)

		assert.False(t, ac.IsSystemAdmin(resolved))
		assert.True(t, ac.IsAdmin(resolved))
	})

	t.Run("纯member不是管理员", func(t *testing.T) {
		user := createTestUser(t, db, "member@example.com")
		tenant := createTestTenant(t, db, "成员馆", "member-lib")
		addMembership(t, db, user.ID, tenant.ID, models.RoleMember)

		resolved, err := ac.ResolvePrincipal(user.ID)
		require.NoError(t, err)

		assert.False(t, ac.IsAdmin(resolved))
	})
}

func TestRequireAuthAndTenant(t *testing.T) {
	db := newTestDB(t)
	ac := NewAccessControlService(db, nil)

	t.Run("未登录", func(t *testing.T) {
		_, _, err := ac.RequireAuthAndTenant(999, "")
		assert.ErrorIs(t, err, errors.ErrUnauthenticated)
	})

	t.Run("零成员关系", func(t *testing.T) {
		user := createTestUser(t, db, "notenant@example.com")

		_, _, err := ac.RequireAuthAndTenant(user.ID, "")
		assert.ErrorIs(t, err, errors.ErrNoTenantAccess)
	})

	t.Run("正常解析", func(t *testing.T) {
		user := createTestUser(t, db, "ok@example.com")
		tenant := createTestTenant(t, db, "正常馆", "ok-lib")
		addMembership(t, db, user.ID, tenant.ID, models.RoleMember)

		resolvedUser, resolvedTenant, err := ac.RequireAuthAndTenant(user.ID, "")
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolvedUser.ID)
		assert.Equal(t, tenant.ID, resolvedTenant.ID)
	})
}

// 系统引导场景：白名单管理员没有任何成员关系也能通过RequireAdmin并创建租户，
// 新建的member用户能访问自己租户的数据但过不了RequireAdmin
func TestSystemAdminBootstrap(t *testing.T) {
	db := newTestDB(t)
	ac := NewAccessControlService(db, []string{"admin@example.com"})
	tenantService := NewTenantService(db)
	userService := NewUserService(db)
	bookService := NewBookService(db)

	// 白名单管理员，零成员关系
	admin := createTestUser(t, db, "admin@example.com")

	adminUser, err := ac.RequireAdmin(admin.ID)
	require.NoError(t, err)
	assert.Empty(t, adminUser.UserTenants)

	// 管理员创建租户
	tenant, err := tenantService.Create("X图书馆", "x", nil)
	require.NoError(t, err)

	// 创建member用户并分配到租户x
	tenantID := tenant.ID
	member, err := userService.Create("reader@example.com", "", "", "password123", &tenantID, models.RoleMember)
	require.NoError(t, err)

	// member可以访问租户x的数据
	_, resolvedTenant, err := ac.RequireAuthAndTenant(member.ID, "x")
	require.NoError(t, err)
	_, _, err = bookService.GetWithPage(resolvedTenant.ID, "", 1, 10)
	require.NoError(t, err)

	// 但过不了RequireAdmin
	_, err = ac.RequireAdmin(member.ID)
	assert.ErrorIs(t, err, errors.ErrAdminRequired)
}

// 管理面板场景：在租户A是member、在租户B是admin的用户，
// 依然可以通过管理面板管理租户A。管理员能力不做租户范围限定。
func TestAdminPanelIsNotTenantScoped(t *testing.T) {
	db := newTestDB(t)
	ac := NewAccessControlService(db, nil)
	tenantService := NewTenantService(db)
	userService := NewUserService(db)

	tenantA := createTestTenant(t, db, "图书馆A", "tenant-a")
	tenantB := createTestTenant(t, db, "图书馆B", "tenant-b")

	user := createTestUser(t, db, "mixed@example.com")
	addMembership(t, db, user.ID, tenantA.ID, models.RoleMember)
	addMembership(t, db, user.ID, tenantB.ID, models.RoleAdmin)

	resolved, err := ac.ResolvePrincipal(user.ID)
	require.NoError(t, err)
	assert.True(t, ac.IsAdmin(resolved))

	// 通过RequireAdmin进入管理面板
	_, err = ac.RequireAdmin(user.ID)
	require.NoError(t, err)

	// 能看到所有租户，包括自己只是member的租户A
	tenants, total, err := tenantService.GetWithPage("", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	slugs := make([]string, 0, len(tenants))
	for _, tn := range tenants {
		slugs = append(slugs, tn.Slug)
	}
	assert.Contains(t, slugs, "tenant-a")

	// 能修改租户A
	updated, err := tenantService.Update(tenantA.ID, "改名后的A", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "改名后的A", updated.Name)

	// 能管理租户A的成员
	other := createTestUser(t, db, "target@example.com")
	_, err = userService.AssignTenant(other.ID, tenantA.ID, models.RoleMember)
	require.NoError(t, err)
}
