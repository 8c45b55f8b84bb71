package services

import (
	"testing"

	"libms/internal/models"
	"libms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)

	tenantA := createTestTenant(t, db, "图书馆A", "iso-a")
	tenantB := createTestTenant(t, db, "图书馆B", "iso-b")

	bookA, err := service.Create(tenantA.ID, BookInput{Title: "A馆的书"})
	require.NoError(t, err)
	assert.Equal(t, tenantA.ID, bookA.TenantID)

	t.Run("跨租户读取和不存在的ID表现一致", func(t *testing.T) {
		// 用B馆的上下文猜A馆的记录ID
		_, errCross := service.GetByID(tenantB.ID, bookA.ID)
		_, errMissing := service.GetByID(tenantB.ID, 99999)

		assert.ErrorIs(t, errCross, errors.ErrNotFound)
		assert.ErrorIs(t, errMissing, errors.ErrNotFound)
		// 两种失败不可区分
		assert.Equal(t, errCross, errMissing)
	})

	t.Run("跨租户更新失败", func(t *testing.T) {
		_, err := service.Update(tenantB.ID, bookA.ID, BookInput{Title: "篡改"})
		assert.ErrorIs(t, err, errors.ErrNotFound)

		// 原记录没有被改动
		unchanged, err := service.GetByID(tenantA.ID, bookA.ID)
		require.NoError(t, err)
		assert.Equal(t, "A馆的书", unchanged.Title)
	})

	t.Run("跨租户删除失败", func(t *testing.T) {
		err := service.Delete(tenantB.ID, bookA.ID)
		assert.ErrorIs(t, err, errors.ErrNotFound)

		_, err = service.GetByID(tenantA.ID, bookA.ID)
		require.NoError(t, err)
	})

	t.Run("列表只包含本租户的记录", func(t *testing.T) {
		_, err := service.Create(tenantB.ID, BookInput{Title: "B馆的书"})
		require.NoError(t, err)

		books, total, err := service.GetWithPage(tenantA.ID, "", 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, books, 1)
		assert.Equal(t, "A馆的书", books[0].Title)
	})
}

func TestBookCreate(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)

	tenant := createTestTenant(t, db, "创建馆", "create-lib")

	t.Run("标题必填", func(t *testing.T) {
		_, err := service.Create(tenant.ID, BookInput{Title: "  "})
		assert.ErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("引用的作者必须属于同一租户", func(t *testing.T) {
		otherTenant := createTestTenant(t, db, "别馆", "other-create")
		author := &models.Author{TenantID: otherTenant.ID, Name: "别馆作者"}
		require.NoError(t, db.Create(author).Error)

		_, err := service.Create(tenant.ID, BookInput{Title: "某书", AuthorID: &author.ID})
		assert.ErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("带作者创建", func(t *testing.T) {
		author := &models.Author{TenantID: tenant.ID, Name: "本馆作者"}
		require.NoError(t, db.Create(author).Error)

		book, err := service.Create(tenant.ID, BookInput{Title: "有作者的书", AuthorID: &author.ID})
		require.NoError(t, err)

		loaded, err := service.GetByID(tenant.ID, book.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Author)
		assert.Equal(t, "本馆作者", loaded.Author.Name)
	})
}
