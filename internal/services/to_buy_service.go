package services

import (
	"fmt"
	"strings"

	"libms/internal/models"
	"libms/pkg/errors"

	"gorm.io/gorm"
)

type ToBuyService struct {
	db *gorm.DB
}

func NewToBuyService(db *gorm.DB) *ToBuyService {
	return &ToBuyService{db: db}
}

// ToBuyInput 待购图书输入参数
type ToBuyInput struct {
	Title       string
	AuthorID    *uint
	Genre       *string
	Publisher   *string
	VolumeCount *int
	Note        *string
	Status      string
}

// Create 创建待购记录
func (s *ToBuyService) Create(tenantID uint, input ToBuyInput) (*models.ToBuyBook, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: 标题不能为空", errors.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = models.PurchaseStatusPending
	}
	if !models.IsValidPurchaseStatus(status) {
		return nil, fmt.Errorf("%w: 状态只能是 pending、ordered、bought 或 dismissed", errors.ErrValidation)
	}
	if err := s.validateAuthor(tenantID, input.AuthorID); err != nil {
		return nil, err
	}

	item := &models.ToBuyBook{
		TenantID:    tenantID,
		Title:       input.Title,
		AuthorID:    input.AuthorID,
		Genre:       input.Genre,
		Publisher:   input.Publisher,
		VolumeCount: input.VolumeCount,
		Note:        input.Note,
		Status:      status,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID 获取单条待购记录（带租户过滤）
func (s *ToBuyService) GetByID(tenantID, id uint) (*models.ToBuyBook, error) {
	var item models.ToBuyBook
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).
		Preload("Author").
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetWithPage 租户的待购列表（分页，支持按状态过滤）
func (s *ToBuyService) GetWithPage(tenantID uint, status string, page, pageSize int) ([]*models.ToBuyBook, int64, error) {
	var items []*models.ToBuyBook
	var total int64

	query := s.db.Model(&models.ToBuyBook{}).Where("tenant_id = ?", tenantID)
	if status != "" {
		if !models.IsValidPurchaseStatus(status) {
			return nil, 0, fmt.Errorf("%w: 状态只能是 pending、ordered、bought 或 dismissed", errors.ErrValidation)
		}
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Author").
		Order("created_at DESC").Offset(offset).Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update 更新待购记录
func (s *ToBuyService) Update(tenantID, id uint, input ToBuyInput) (*models.ToBuyBook, error) {
	var item models.ToBuyBook
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Status != "" {
		if !models.IsValidPurchaseStatus(input.Status) {
			return nil, fmt.Errorf("%w: 状态只能是 pending、ordered、bought 或 dismissed", errors.ErrValidation)
		}
		item.Status = input.Status
	}
	if input.AuthorID != nil {
		if err := s.validateAuthor(tenantID, input.AuthorID); err != nil {
			return nil, err
		}
		item.AuthorID = input.AuthorID
	}
	if input.Genre != nil {
		item.Genre = input.Genre
	}
	if input.Publisher != nil {
		item.Publisher = input.Publisher
	}
	if input.VolumeCount != nil {
		item.VolumeCount = input.VolumeCount
	}
	if input.Note != nil {
		item.Note = input.Note
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return s.GetByID(tenantID, id)
}

// Delete 删除待购记录
func (s *ToBuyService) Delete(tenantID, id uint) error {
	result := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.ToBuyBook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (s *ToBuyService) validateAuthor(tenantID uint, authorID *uint) error {
	if authorID == nil {
		return nil
	}
	var count int64
	s.db.Model(&models.Author{}).Where("id = ? AND tenant_id = ?", *authorID, tenantID).Count(&count)
	if count == 0 {
		return fmt.Errorf("%w: 作者不存在", errors.ErrValidation)
	}
	return nil
}
