package services

import (
	"fmt"
	"strings"

	"libms/internal/models"
	"libms/pkg/errors"

	"gorm.io/gorm"
)

type BookService struct {
	db *gorm.DB
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

// BookInput 图书输入参数
type BookInput struct {
	Title       string
	AuthorID    *uint
	Genre       *string
	Publisher   *string
	VolumeCount *int
	Library     *string
	Shelf       *string
	Number      *string
	Note        *string
}

// Create 创建图书（强制打上租户标记）
func (s *BookService) Create(tenantID uint, input BookInput) (*models.Book, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: 标题不能为空", errors.ErrValidation)
	}
	if err := s.validateAuthor(tenantID, input.AuthorID); err != nil {
		return nil, err
	}

	book := &models.Book{
		TenantID:    tenantID,
		Title:       input.Title,
		AuthorID:    input.AuthorID,
		Genre:       input.Genre,
		Publisher:   input.Publisher,
		VolumeCount: input.VolumeCount,
		Library:     input.Library,
		Shelf:       input.Shelf,
		Number:      input.Number,
		Note:        input.Note,
	}

	if err := s.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID 获取单本图书
// 查询始终带tenant_id过滤：别的租户的记录和不存在的记录表现完全一致
func (s *BookService) GetByID(tenantID, id uint) (*models.Book, error) {
	var book models.Book
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).
		Preload("Author").
		First(&book).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetWithPage 租户的图书列表（分页，按创建时间降序）
func (s *BookService) GetWithPage(tenantID uint, keyword string, page, pageSize int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	query := s.db.Model(&models.Book{}).Where("tenant_id = ?", tenantID)
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("title LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Author").
		Order("created_at DESC").Offset(offset).Limit(pageSize).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// Update 更新图书
func (s *BookService) Update(tenantID, id uint, input BookInput) (*models.Book, error) {
	var book models.Book
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&book).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if input.Title != "" {
		book.Title = input.Title
	}
	if input.AuthorID != nil {
		if err := s.validateAuthor(tenantID, input.AuthorID); err != nil {
			return nil, err
		}
		book.AuthorID = input.AuthorID
	}
	if input.Genre != nil {
		book.Genre = input.Genre
	}
	if input.Publisher != nil {
		book.Publisher = input.Publisher
	}
	if input.VolumeCount != nil {
		book.VolumeCount = input.VolumeCount
	}
	if input.Library != nil {
		book.Library = input.Library
	}
	if input.Shelf != nil {
		book.Shelf = input.Shelf
	}
	if input.Number != nil {
		book.Number = input.Number
	}
	if input.Note != nil {
		book.Note = input.Note
	}

	if err := s.db.Save(&book).Error; err != nil {
		return nil, err
	}
	return s.GetByID(tenantID, id)
}

// Delete 删除图书
func (s *BookService) Delete(tenantID, id uint) error {
	result := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// validateAuthor 引用的作者必须属于同一租户
func (s *BookService) validateAuthor(tenantID uint, authorID *uint) error {
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
