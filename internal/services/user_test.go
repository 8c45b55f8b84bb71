package services

import (
	"testing"

	"libms/internal/models"
	"libms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	t.Run("邮箱统一小写入库", func(t *testing.T) {
		user, err := service.Create("Reader@Example.COM", "reader", "读者", "password123", nil, models.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", user.Email)
	})

	t.Run("邮箱不区分大小写查重", func(t *testing.T) {
		_, err := service.Create("READER@example.com", "", "", "password123", nil, models.RoleMember)
		assert.ErrorIs(t, err, errors.ErrConflict)
	})

	t.Run("用户名查重", func(t *testing.T) {
		_, err := service.Create("other@example.com", "reader", "", "password123", nil, models.RoleMember)
		assert.ErrorIs(t, err, errors.ErrConflict)
	})

	t.Run("密码长度校验", func(t *testing.T) {
		_, err := service.Create("short@example.com", "", "", "123", nil, models.RoleMember)
		assert.ErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("创建时同时分配租户", func(t *testing.T) {
		tenant := createTestTenant(t, db, "新馆", "new-lib")
		tenantID := tenant.ID

		user, err := service.Create("withtenant@example.com", "", "", "password123", &tenantID, models.RoleAdmin)
		require.NoError(t, err)
		require.Len(t, user.UserTenants, 1)
		assert.Equal(t, models.RoleAdmin, user.UserTenants[0].Role)
	})
}

func TestAssignTenantUpsert(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	user := createTestUser(t, db, "assignee@example.com")
	tenant := createTestTenant(t, db, "分配馆", "assign-lib")

	t.Run("首次分配创建成员关系", func(t *testing.T) {
		userTenant, err := service.AssignTenant(user.ID, tenant.ID, models.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, models.RoleMember, userTenant.Role)
	})

	t.Run("重复分配只更新角色不产生重复行", func(t *testing.T) {
		userTenant, err := service.AssignTenant(user.ID, tenant.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, userTenant.Role)

		var count int64
		db.Model(&models.UserTenant{}).
			Where("user_id = ? AND tenant_id = ?", user.ID, tenant.ID).
			Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("非法角色被拒绝", func(t *testing.T) {
		_, err := service.AssignTenant(user.ID, tenant.ID, "owner")
		assert.ErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("用户或租户不存在", func(t *testing.T) {
		_, err := service.AssignTenant(999, tenant.ID, models.RoleMember)
		assert.ErrorIs(t, err, errors.ErrNotFound)

		_, err = service.AssignTenant(user.ID, 999, models.RoleMember)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestRemoveTenant(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	user := createTestUser(t, db, "leaver@example.com")
	tenant := createTestTenant(t, db, "离开馆", "leave-lib")
	addMembership(t, db, user.ID, tenant.ID, models.RoleMember)

	require.NoError(t, service.RemoveTenant(user.ID, tenant.ID))

	// 再移除一次：成员关系已不存在
	err := service.RemoveTenant(user.ID, tenant.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestUserDeleteCascadesMemberships(t *testing.T) {
	db := newTestDB(t)
	service := NewUserService(db)

	user := createTestUser(t, db, "gone@example.com")
	tenant := createTestTenant(t, db, "留下的馆", "stay-lib")
	addMembership(t, db, user.ID, tenant.ID, models.RoleMember)

	require.NoError(t, service.Delete(user.ID))

	var count int64
	db.Model(&models.UserTenant{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// 租户本身不受影响
	var tenantCount int64
	db.Model(&models.Tenant{}).Where("id = ?", tenant.ID).Count(&tenantCount)
	assert.EqualValues(t, 1, tenantCount)
}
