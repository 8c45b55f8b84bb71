package models

// Tenant 租户模型 - 一个租户即一座图书馆的隔离数据分区
type Tenant struct {
	BaseModel
	Name    string `json:"name" gorm:"not null;size:100"`
	Slug    string `json:"slug" gorm:"unique;not null;size:50;index"`
	OwnerID *uint  `json:"owner_id" gorm:"index"`

	// 统计字段，不存储在数据库中
	MemberCount int64 `json:"member_count" gorm:"-"`
	BookCount   int64 `json:"book_count" gorm:"-"`
	AuthorCount int64 `json:"author_count" gorm:"-"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}
