package services

import (
	"testing"

	"libms/internal/models"
	"libms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorCRUD(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthorService(db)

	tenant := createTestTenant(t, db, "作者馆", "author-lib")

	t.Run("姓名必填", func(t *testing.T) {
		_, err := service.Create(tenant.ID, AuthorInput{Name: ""})
		assert.ErrorIs(t, err, errors.ErrValidation)
	})

	nickname := "笔名"
	author, err := service.Create(tenant.ID, AuthorInput{Name: "某作者", Nickname: &nickname})
	require.NoError(t, err)

	t.Run("更新可选字段", func(t *testing.T) {
		origin := "某地"
		updated, err := service.Update(tenant.ID, author.ID, AuthorInput{Origin: &origin})
		require.NoError(t, err)
		assert.Equal(t, "某作者", updated.Name)
		require.NotNil(t, updated.Origin)
		assert.Equal(t, "某地", *updated.Origin)
	})

	t.Run("删除作者时图书的引用置空", func(t *testing.T) {
		bookService := NewBookService(db)
		book, err := bookService.Create(tenant.ID, BookInput{Title: "他的书", AuthorID: &author.ID})
		require.NoError(t, err)

		require.NoError(t, service.Delete(tenant.ID, author.ID))

		var reloaded models.Book
		require.NoError(t, db.First(&reloaded, book.ID).Error)
		assert.Nil(t, reloaded.AuthorID)
	})
}

func TestAuthorTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthorService(db)

	tenantA := createTestTenant(t, db, "馆A", "auth-iso-a")
	tenantB := createTestTenant(t, db, "馆B", "auth-iso-b")

	author, err := service.Create(tenantA.ID, AuthorInput{Name: "A馆作者"})
	require.NoError(t, err)

	_, err = service.GetByID(tenantB.ID, author.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = service.Update(tenantB.ID, author.ID, AuthorInput{Name: "篡改"})
	assert.ErrorIs(t, err, errors.ErrNotFound)

	err = service.Delete(tenantB.ID, author.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
