package models

// Book 图书模型
// tenant_id 为强制外键，所有读写都必须按调用方解析出的租户过滤
type Book struct {
	BaseModel
	TenantID    uint    `json:"tenant_id" gorm:"not null;index"`
	Title       string  `json:"title" gorm:"not null;size:255"`
	AuthorID    *uint   `json:"author_id" gorm:"index"`
	Genre       *string `json:"genre" gorm:"size:100"`
	Publisher   *string `json:"publisher" gorm:"size:255"`
	VolumeCount *int    `json:"volume_count"`
	Library     *string `json:"library" gorm:"size:100"`
	Shelf       *string `json:"shelf" gorm:"size:50"`
	Number      *string `json:"number" gorm:"size:50"`
	Note        *string `json:"note" gorm:"type:text"`

	// 关联
	Tenant Tenant  `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Author *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 表名
func (b *Book) TableName() string {
	return "books"
}
