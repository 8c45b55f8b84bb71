package models

import (
	"time"
)

// UserTenant 用户-租户关联表
// (user_id, tenant_id) 唯一：重复分配只会更新角色，不会产生重复行
type UserTenant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_tenant" json:"user_id"`
	TenantID  uint      `gorm:"not null;uniqueIndex:idx_user_tenant" json:"tenant_id"`
	Role      string    `gorm:"not null;default:'member';size:20" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Tenant Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
}

// TableName 指定表名
func (UserTenant) TableName() string {
	return "user_tenants"
}

// 租户角色常量 - 角色是封闭枚举，只有这两个合法值
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// IsValidRole 检查角色是否有效
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// IsAdmin 是否为该租户的管理员
func (ut *UserTenant) IsAdmin() bool {
	return ut.Role == RoleAdmin
}
