package services

import (
	"fmt"
	"strings"

	"libms/internal/models"
	"libms/pkg/errors"

	"gorm.io/gorm"
)

type AuthorService struct {
	db *gorm.DB
}

func NewAuthorService(db *gorm.DB) *AuthorService {
	return &AuthorService{db: db}
}

// AuthorInput 作者输入参数
type AuthorInput struct {
	Name            string
	Nickname        *string
	Origin          *string
	BirthDate       *string
	DeathDate       *string
	BirthPlace      *string
	DeathPlace      *string
	OfficialDuties  *string
	FiqhMadhhab     *string
	AqidahMadhhab   *string
	FamousWorks     *string
	Teachers        *string
	Students        *string
	StatusInTabakat *string
	ExpertiseAreas  *string
	ImportantNotes  *string
}

// Create 创建作者
func (s *AuthorService) Create(tenantID uint, input AuthorInput) (*models.Author, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: 姓名不能为空", errors.ErrValidation)
	}

	author := &models.Author{
		TenantID:        tenantID,
		Name:            input.Name,
		Nickname:        input.Nickname,
		Origin:          input.Origin,
		BirthDate:       input.BirthDate,
		DeathDate:       input.DeathDate,
		BirthPlace:      input.BirthPlace,
		DeathPlace:      input.DeathPlace,
		OfficialDuties:  input.OfficialDuties,
		FiqhMadhhab:     input.FiqhMadhhab,
		AqidahMadhhab:   input.AqidahMadhhab,
		FamousWorks:     input.FamousWorks,
		Teachers:        input.Teachers,
		Students:        input.Students,
		StatusInTabakat: input.StatusInTabakat,
		ExpertiseAreas:  input.ExpertiseAreas,
		ImportantNotes:  input.ImportantNotes,
	}

	if err := s.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// GetByID 获取单个作者（带租户过滤）
func (s *AuthorService) GetByID(tenantID, id uint) (*models.Author, error) {
	var author models.Author
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&author).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &author, nil
}

// GetWithPage 租户的作者列表（分页，按创建时间降序）
func (s *AuthorService) GetWithPage(tenantID uint, keyword string, page, pageSize int) ([]*models.Author, int64, error) {
	var authors []*models.Author
	var total int64

	query := s.db.Model(&models.Author{}).Where("tenant_id = ?", tenantID)
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR nickname LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// Update 更新作者
func (s *AuthorService) Update(tenantID, id uint, input AuthorInput) (*models.Author, error) {
	var author models.Author
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&author).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		author.Name = input.Name
	}
	if input.Nickname != nil {
		author.Nickname = input.Nickname
	}
	if input.Origin != nil {
		author.Origin = input.Origin
	}
	if input.BirthDate != nil {
		author.BirthDate = input.BirthDate
	}
	if input.DeathDate != nil {
		author.DeathDate = input.DeathDate
	}
	if input.BirthPlace != nil {
		author.BirthPlace = input.BirthPlace
	}
	if input.DeathPlace != nil {
		author.DeathPlace = input.DeathPlace
	}
	if input.OfficialDuties != nil {
		author.OfficialDuties = input.OfficialDuties
	}
	if input.FiqhMadhhab != nil {
		author.FiqhMadhhab = input.FiqhMadhhab
	}
	if input.AqidahMadhhab != nil {
		author.AqidahMadhhab = input.AqidahMadhhab
	}
	if input.FamousWorks != nil {
		author.FamousWorks = input.FamousWorks
	}
	if input.Teachers != nil {
		author.Teachers = input.Teachers
	}
	if input.Students != nil {
		author.Students = input.Students
	}
	if input.StatusInTabakat != nil {
		author.StatusInTabakat = input.StatusInTabakat
	}
	if input.ExpertiseAreas != nil {
		author.ExpertiseAreas = input.ExpertiseAreas
	}
	if input.ImportantNotes != nil {
		author.ImportantNotes = input.ImportantNotes
	}

	if err := s.db.Save(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// Delete 删除作者
// 名下还有图书引用时先解除引用再删除会更安全，这里保持上游行为：直接删除，图书的author_id置空
func (s *AuthorService) Delete(tenantID, id uint) error {
	var author models.Author
	err := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&author).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Book{}).
			Where("author_id = ? AND tenant_id = ?", id, tenantID).
			Update("author_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ToBuyBook{}).
			Where("author_id = ? AND tenant_id = ?", id, tenantID).
			Update("author_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Author{}, id).Error
	})
}
