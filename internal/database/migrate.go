package database

import (
	"libms/internal/models"
	"libms/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.UserTenant{},
		&models.Author{},
		&models.Book{},
		&models.ToBuyBook{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	return nil
}
