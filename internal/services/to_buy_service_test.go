package services

import (
	"testing"

	"libms/internal/models"
	"libms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBuyStatus(t *testing.T) {
	db := newTestDB(t)
	service := NewToBuyService(db)

	tenant := createTestTenant(t, db, "采购馆", "buy-lib")

	t.Run("默认状态为pending", func(t *testing.T) {
		item, err := service.Create(tenant.ID, ToBuyInput{Title: "想买的书"})
		require.NoError(t, err)
		assert.Equal(t, models.PurchaseStatusPending, item.Status)
	})

	t.Run("枚举外的状态被拒绝", func(t *testing.T) {
		_, err := service.Create(tenant.ID, ToBuyInput{Title: "某书", Status: "wishlist"})
		assert.ErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("更新为非法状态被拒绝", func(t *testing.T) {
		item, err := service.Create(tenant.ID, ToBuyInput{Title: "待更新"})
		require.NoError(t, err)

		_, err = service.Update(tenant.ID, item.ID, ToBuyInput{Status: "cancelled"})
		assert.ErrorIs(t, err, errors.ErrValidation)

		// 合法状态流转
		updated, err := service.Update(tenant.ID, item.ID, ToBuyInput{Status: models.PurchaseStatusOrdered})
		require.NoError(t, err)
		assert.Equal(t, models.PurchaseStatusOrdered, updated.Status)
	})

	t.Run("按状态过滤列表", func(t *testing.T) {
		_, err := service.Create(tenant.ID, ToBuyInput{Title: "已买到", Status: models.PurchaseStatusBought})
		require.NoError(t, err)

		items, total, err := service.GetWithPage(tenant.ID, models.PurchaseStatusBought, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "已买到", items[0].Title)

		// 非法过滤值被拒绝
		_, _, err = service.GetWithPage(tenant.ID, "bad-status", 1, 10)
		assert.ErrorIs(t, err, errors.ErrValidation)
	})
}

func TestToBuyTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	service := NewToBuyService(db)

	tenantA := createTestTenant(t, db, "馆A", "tobuy-a")
	tenantB := createTestTenant(t, db, "馆B", "tobuy-b")

	item, err := service.Create(tenantA.ID, ToBuyInput{Title: "A馆想买"})
	require.NoError(t, err)

	_, err = service.GetByID(tenantB.ID, item.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	err = service.Delete(tenantB.ID, item.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
