package services

import (
	"testing"

	"libms/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试用独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.UserTenant{},
		&models.Author{},
		&models.Book{},
		&models.ToBuyBook{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:  email,
		Status: models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("test-password"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTenant(t *testing.T, db *gorm.DB, name, slug string) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{Name: name, Slug: slug}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func addMembership(t *testing.T, db *gorm.DB, userID, tenantID uint, role string) *models.UserTenant {
	t.Helper()

	userTenant := &models.UserTenant{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}
	require.NoError(t, db.Create(userTenant).Error)
	return userTenant
}
