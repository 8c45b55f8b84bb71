package services

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"libms/internal/models"
	"libms/pkg/errors"

	"gorm.io/gorm"
)

type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// slug只允许小写字母、数字和连字符
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// GetWithPage 租户列表（分页，按创建时间降序，附带统计）
func (s *TenantService) GetWithPage(keyword string, page, pageSize int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	query := s.db.Model(&models.Tenant{})
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR slug LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&tenants).Error
	if err != nil {
		return nil, 0, err
	}

	// 统计每个租户的成员、图书、作者数量
	for i := range tenants {
		s.fillCounts(tenants[i])
	}

	return tenants, total, nil
}

func (s *TenantService) fillCounts(tenant *models.Tenant) {
	s.db.Model(&models.UserTenant{}).Where("tenant_id = ?", tenant.ID).Count(&tenant.MemberCount)
	s.db.Model(&models.Book{}).Where("tenant_id = ?", tenant.ID).Count(&tenant.BookCount)
	s.db.Model(&models.Author{}).Where("tenant_id = ?", tenant.ID).Count(&tenant.AuthorCount)
}

// Create 创建租户
func (s *TenantService) Create(name, slug string, ownerID *uint) (*models.Tenant, error) {
	if err := s.ValidateCreateParams(name, slug); err != nil {
		return nil, err
	}

	// 检查slug是否重复
	var count int64
	s.db.Model(&models.Tenant{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("%w: slug已被使用", errors.ErrConflict)
	}

	// 指定了owner时验证用户存在
	if ownerID != nil {
		var ownerCount int64
		s.db.Model(&models.User{}).Where("id = ?", *ownerID).Count(&ownerCount)
		if ownerCount == 0 {
			return nil, fmt.Errorf("%w: owner用户不存在", errors.ErrValidation)
		}
	}

	tenant := &models.Tenant{
		Name:    name,
		Slug:    slug,
		OwnerID: ownerID,
	}

	if err := s.db.Create(tenant).Error; err != nil {
		return nil, err
	}

	return tenant, nil
}

// GetByID 根据ID获取租户
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	s.fillCounts(&tenant)
	return &tenant, nil
}

// GetBySlug 根据slug获取租户
func (s *TenantService) GetBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("slug = ?", slug).First(&tenant).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// Update 更新租户
func (s *TenantService) Update(id uint, name, slug string, ownerID *uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if name != "" {
		if !s.ValidateName(name) {
			return nil, fmt.Errorf("%w: 租户名称长度必须在1-100个字符之间", errors.ErrValidation)
		}
		tenant.Name = name
	}
	if slug != "" && slug != tenant.Slug {
		if !s.ValidateSlug(slug) {
			return nil, fmt.Errorf("%w: slug只能包含小写字母、数字和连字符", errors.ErrValidation)
		}
		var count int64
		s.db.Model(&models.Tenant{}).Where("slug = ? AND id <> ?", slug, id).Count(&count)
		if count > 0 {
			return nil, fmt.Errorf("%w: slug已被使用", errors.ErrConflict)
		}
		tenant.Slug = slug
	}
	if ownerID != nil {
		var ownerCount int64
		s.db.Model(&models.User{}).Where("id = ?", *ownerID).Count(&ownerCount)
		if ownerCount == 0 {
			return nil, fmt.Errorf("%w: owner用户不存在", errors.ErrValidation)
		}
		tenant.OwnerID = ownerID
	}

	if err := s.db.Save(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Delete 删除租户
// 租户名下还有图书、作者、待购记录或成员关系时拒绝删除，防止静默丢数据
func (s *TenantService) Delete(id uint) error {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}

	var bookCount, authorCount, toBuyCount, memberCount int64
	s.db.Model(&models.Book{}).Where("tenant_id = ?", id).Count(&bookCount)
	s.db.Model(&models.Author{}).Where("tenant_id = ?", id).Count(&authorCount)
	s.db.Model(&models.ToBuyBook{}).Where("tenant_id = ?", id).Count(&toBuyCount)
	s.db.Model(&models.UserTenant{}).Where("tenant_id = ?", id).Count(&memberCount)

	if bookCount > 0 || authorCount > 0 || toBuyCount > 0 || memberCount > 0 {
		return fmt.Errorf("%w: 租户无法删除，名下还有 %d 本图书、%d 位作者、%d 条待购记录和 %d 个成员",
			errors.ErrConflict, bookCount, authorCount, toBuyCount, memberCount)
	}

	return s.db.Delete(&models.Tenant{}, id).Error
}

// ========== 验证相关方法 ==========

// ValidateName 验证租户名称
func (s *TenantService) ValidateName(name string) bool {
	runeCount := utf8.RuneCountInString(name)
	return runeCount >= 1 && runeCount <= 100
}

// ValidateSlug 验证slug格式
func (s *TenantService) ValidateSlug(slug string) bool {
	if len(slug) < 1 || len(slug) > 50 {
		return false
	}
	return slugPattern.MatchString(slug)
}

// ValidateCreateParams 验证创建参数
func (s *TenantService) ValidateCreateParams(name, slug string) error {
	if !s.ValidateName(name) {
		return fmt.Errorf("%w: 租户名称长度必须在1-100个字符之间", errors.ErrValidation)
	}
	if !s.ValidateSlug(slug) {
		return fmt.Errorf("%w: slug只能包含小写字母、数字和连字符", errors.ErrValidation)
	}
	return nil
}
