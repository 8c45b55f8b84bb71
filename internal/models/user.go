package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 用户模型
// 邮箱统一小写存储，比较时不区分大小写
type User struct {
	BaseModel
	Email        string  `json:"email" gorm:"unique;not null;size:100;index"`
	Username     *string `json:"username" gorm:"unique;size:50"`
	Name         *string `json:"name" gorm:"size:100"`
	PasswordHash string  `json:"-" gorm:"not null;size:255"`
	Status       string  `json:"status" gorm:"default:'active';size:20"`

	// 租户成员关系
	UserTenants []UserTenant `json:"user_tenants,omitempty" gorm:"foreignKey:UserID"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// SetPassword 设置密码
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// GetUserTenants 获取用户的所有租户成员关系（按加入顺序）
func (u *User) GetUserTenants(db *gorm.DB) ([]UserTenant, error) {
	var userTenants []UserTenant
	err := db.Where("user_id = ?", u.ID).
		Order("id ASC").
		Preload("Tenant").
		Find(&userTenants).Error
	return userTenants, err
}

// IsTenantMember 检查用户是否是指定租户的成员
func (u *User) IsTenantMember(db *gorm.DB, tenantID uint) bool {
	var count int64
	db.Model(&UserTenant{}).
		Where("user_id = ? AND tenant_id = ?", u.ID, tenantID).
		Count(&count)
	return count > 0
}
