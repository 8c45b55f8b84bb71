package main

import (
	"fmt"

	"libms/internal/database"
	"libms/internal/models"
	"libms/pkg/config"
	"libms/pkg/logger"

	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建默认租户
	if err := createDefaultTenant(db); err != nil {
		return fmt.Errorf("创建默认租户失败: %v", err)
	}

	// 2. 创建引导管理员用户
	if err := createBootstrapAdmin(db); err != nil {
		return fmt.Errorf("创建引导管理员失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultTenant 创建默认租户
func createDefaultTenant(db *gorm.DB) error {
	var count int64
	db.Model(&models.Tenant{}).Where("slug = ?", "default").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("默认租户已存在，跳过创建")
		return nil
	}

	tenant := &models.Tenant{
		Name: "默认图书馆",
		Slug: "default",
	}

	if err := db.Create(tenant).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("默认租户创建成功")
	return nil
}

// createBootstrapAdmin 创建引导管理员
// 取系统管理员白名单的第一个邮箱；该用户即使没有任何租户成员关系，
// 也能通过白名单进入管理面板完成系统引导
func createBootstrapAdmin(db *gorm.DB) error {
	cfg := config.GetConfig()
	if len(cfg.Admin.SystemAdminEmails) == 0 {
		logger.GetLogger().Warn("系统管理员白名单为空，跳过引导管理员创建")
		return nil
	}

	email := cfg.Admin.SystemAdminEmails[0]

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("引导管理员已存在，跳过创建")
		return nil
	}

	username := "admin"
	user := &models.User{
		Email:    email,
		Username: &username,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword("admin123"); err != nil {
		return err
	}

	if err := db.Create(user).Error; err != nil {
		return err
	}

	logger.GetLogger().Warnf("引导管理员 %s 创建成功，初始密码 admin123，请立即修改", email)
	return nil
}
