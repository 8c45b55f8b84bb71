package services

import (
	"strings"

	"libms/internal/models"
	"libms/pkg/errors"

	"gorm.io/gorm"
)

// AccessControlService 访问控制服务
// 负责三件事：解析当前主体、解析活动租户、判定管理员能力。
// 每次请求都从数据库重新解析，不做任何进程内缓存，
// 权限变更立即生效，没有过期权限窗口。
type AccessControlService struct {
	db *gorm.DB
	// 系统管理员邮箱白名单（已统一小写）
	// 来自部署配置而非数据库，数据库为空时也能引导系统
	systemAdminEmails []string
}

// NewAccessControlService 创建访问控制服务
func NewAccessControlService(db *gorm.DB, systemAdminEmails []string) *AccessControlService {
	normalized := make([]string, 0, len(systemAdminEmails))
	for _, email := range systemAdminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			normalized = append(normalized, email)
		}
	}
	return &AccessControlService{
		db:                db,
		systemAdminEmails: normalized,
	}
}

// ResolvePrincipal 解析当前主体
// 任何查找失败都按未登录处理，绝不退化为默认身份
func (s *AccessControlService) ResolvePrincipal(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, errors.ErrUnauthenticated
	}

	var user models.User
	err := s.db.
		Preload("UserTenants", func(db *gorm.DB) *gorm.DB {
			// 成员关系按插入顺序返回，活动租户默认取第一条
			return db.Order("user_tenants.id ASC")
		}).
		Preload("UserTenants.Tenant").
		First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUnauthenticated
		}
		return nil, err
	}

	if user.Status != models.UserStatusActive {
		return nil, errors.ErrUnauthenticated
	}

	return &user, nil
}

// ResolveActiveTenant 解析当前请求的活动租户
//
// 显式指定slug时，只有在主体持有该租户的成员关系时才生效，
// 否则直接失败，不回退到其他租户。
//
// 未指定slug时，默认取主体按插入顺序的第一条成员关系。
// 多租户用户没有持久化的"当前租户"选择，每次请求独立取默认值，
// 这是对上游行为的保留，是否需要会话级粘性待产品确认。
func (s *AccessControlService) ResolveActiveTenant(user *models.User, tenantSlug string) (*models.Tenant, error) {
	if user == nil {
		return nil, errors.ErrUnauthenticated
	}

	if tenantSlug != "" {
		for i := range user.UserTenants {
			if user.UserTenants[i].Tenant.Slug == tenantSlug {
				return &user.UserTenants[i].Tenant, nil
			}
		}
		return nil, errors.ErrNoTenantAccess
	}

	if len(user.UserTenants) == 0 {
		return nil, errors.ErrNoTenantAccess
	}
	return &user.UserTenants[0].Tenant, nil
}

// IsSystemAdmin 是否为系统管理员（邮箱白名单，不区分大小写）
// 系统管理员能力独立于任何租户成员关系
func (s *AccessControlService) IsSystemAdmin(user *models.User) bool {
	if user == nil {
		return false
	}
	email := strings.ToLower(user.Email)
	for _, adminEmail := range s.systemAdminEmails {
		if email == adminEmail {
			return true
		}
	}
	return false
}

// IsAdmin 全局管理员判定
// 系统管理员，或在任意一个租户持有admin角色。
// 注意这不是租户级判定：在租户A只是member、在租户B是admin的用户，
// 同样可以进入管理面板并管理所有租户。
func (s *AccessControlService) IsAdmin(user *models.User) bool {
	if user == nil {
		return false
	}
	if s.IsSystemAdmin(user) {
		return true
	}
	for i := range user.UserTenants {
		if user.UserTenants[i].IsAdmin() {
			return true
		}
	}
	return false
}

// RequireAuthAndTenant 登录 + 租户上下文检查
// 所有租户域数据访问的强制入口，返回的租户ID是后续查询的必带过滤条件
func (s *AccessControlService) RequireAuthAndTenant(userID uint, tenantSlug string) (*models.User, *models.Tenant, error) {
	user, err := s.ResolvePrincipal(userID)
	if err != nil {
		return nil, nil, err
	}

	tenant, err := s.ResolveActiveTenant(user, tenantSlug)
	if err != nil {
		return nil, nil, err
	}

	return user, tenant, nil
}

// RequireAdmin 登录 + 全局管理员检查
// 租户、用户、成员关系的管理操作由此把关，不做租户范围限定
func (s *AccessControlService) RequireAdmin(userID uint) (*models.User, error) {
	user, err := s.ResolvePrincipal(userID)
	if err != nil {
		return nil, err
	}

	if !s.IsAdmin(user) {
		return nil, errors.ErrAdminRequired
	}

	return user, nil
}
