package services

import (
	"fmt"
	"strings"

	"libms/internal/models"
	"libms/pkg/errors"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ========== 基础CRUD方法 ==========

// Create 创建用户
// 可选同时分配到一个租户；邮箱统一小写入库
func (s *UserService) Create(email, username, name, password string, tenantID *uint, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if err := s.ValidateCreateParams(email, password); err != nil {
		return nil, err
	}

	// 检查邮箱是否重复
	var emailCount int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&emailCount)
	if emailCount > 0 {
		return nil, fmt.Errorf("%w: 邮箱已被使用", errors.ErrConflict)
	}

	// 检查用户名是否重复
	if username != "" {
		var usernameCount int64
		s.db.Model(&models.User{}).Where("username = ?", username).Count(&usernameCount)
		if usernameCount > 0 {
			return nil, fmt.Errorf("%w: 用户名已被使用", errors.ErrConflict)
		}
	}

	user := &models.User{
		Email:  email,
		Status: models.UserStatusActive,
	}
	if username != "" {
		user.Username = &username
	}
	if name != "" {
		user.Name = &name
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	// 指定了租户时同时建立成员关系
	if tenantID != nil {
		if _, err := s.AssignTenant(user.ID, *tenantID, role); err != nil {
			return nil, err
		}
	}

	return s.GetByID(user.ID)
}

// GetByID 根据ID获取用户（含租户成员关系）
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("UserTenants", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_tenants.id ASC")
		}).
		Preload("UserTenants.Tenant").
		First(&user, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户（不区分大小写）
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetWithPage 用户列表（分页，按创建时间降序）
func (s *UserService) GetWithPage(keyword string, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{})
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("email LIKE ? OR username LIKE ? OR name LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("UserTenants", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_tenants.id ASC")
		}).
		Preload("UserTenants.Tenant").
		Order("created_at DESC").Offset(offset).Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update 更新用户
func (s *UserService) Update(id uint, email, username, name, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		var count int64
		s.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count)
		if count > 0 {
			return nil, fmt.Errorf("%w: 邮箱已被使用", errors.ErrConflict)
		}
		user.Email = email
	}
	if username != "" {
		var count int64
		s.db.Model(&models.User{}).Where("username = ? AND id <> ?", username, id).Count(&count)
		if count > 0 {
			return nil, fmt.Errorf("%w: 用户名已被使用", errors.ErrConflict)
		}
		user.Username = &username
	}
	if name != "" {
		user.Name = &name
	}
	if password != "" {
		if len(password) < 6 {
			return nil, fmt.Errorf("%w: 密码长度不能少于6个字符", errors.ErrValidation)
		}
		if err := user.SetPassword(password); err != nil {
			return nil, fmt.Errorf("密码加密失败: %v", err)
		}
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete 删除用户（级联删除其成员关系）
func (s *UserService) Delete(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserTenant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// ========== 租户成员关系 ==========

// AssignTenant 把用户分配到租户
// (user_id, tenant_id) 唯一：已存在时更新角色而不是新增一行
func (s *UserService) AssignTenant(userID, tenantID uint, role string) (*models.UserTenant, error) {
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("%w: 角色只能是 admin 或 member", errors.ErrValidation)
	}

	// 用户和租户都必须存在
	var userCount int64
	s.db.Model(&models.User{}).Where("id = ?", userID).Count(&userCount)
	if userCount == 0 {
		return nil, errors.ErrNotFound
	}
	var tenantCount int64
	s.db.Model(&models.Tenant{}).Where("id = ?", tenantID).Count(&tenantCount)
	if tenantCount == 0 {
		return nil, errors.ErrNotFound
	}

	var userTenant models.UserTenant
	err := s.db.Where("user_id = ? AND tenant_id = ?", userID, tenantID).First(&userTenant).Error
	if err == nil {
		// 已存在，只更新角色
		userTenant.Role = role
		if err := s.db.Save(&userTenant).Error; err != nil {
			return nil, err
		}
		s.db.Preload("Tenant").First(&userTenant, userTenant.ID)
		return &userTenant, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	userTenant = models.UserTenant{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}
	if err := s.db.Create(&userTenant).Error; err != nil {
		return nil, err
	}
	s.db.Preload("Tenant").First(&userTenant, userTenant.ID)
	return &userTenant, nil
}

// RemoveTenant 把用户从租户移除
func (s *UserService) RemoveTenant(userID, tenantID uint) error {
	result := s.db.Where("user_id = ? AND tenant_id = ?", userID, tenantID).Delete(&models.UserTenant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// ========== 状态相关方法 ==========

// IsActive 检查用户是否激活
func (s *UserService) IsActive(user *models.User) bool {
	return user.Status == models.UserStatusActive
}

// ========== 验证相关方法 ==========

// ValidateCreateParams 验证创建参数
func (s *UserService) ValidateCreateParams(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: 邮箱格式错误", errors.ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: 密码长度不能少于6个字符", errors.ErrValidation)
	}
	return nil
}
