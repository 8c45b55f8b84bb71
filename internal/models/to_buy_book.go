package models

// ToBuyBook 待购图书模型
type ToBuyBook struct {
	BaseModel
	TenantID    uint    `json:"tenant_id" gorm:"not null;index"`
	Title       string  `json:"title" gorm:"not null;size:255"`
	AuthorID    *uint   `json:"author_id" gorm:"index"`
	Genre       *string `json:"genre" gorm:"size:100"`
	Publisher   *string `json:"publisher" gorm:"size:255"`
	VolumeCount *int    `json:"volume_count"`
	Note        *string `json:"note" gorm:"type:text"`
	Status      string  `json:"status" gorm:"default:'pending';size:20"`

	// 关联
	Tenant Tenant  `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Author *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 表名
func (t *ToBuyBook) TableName() string {
	return "to_buy_books"
}

// 待购状态常量 - 封闭枚举，边界处校验后才允许入库
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusOrdered   = "ordered"
	PurchaseStatusBought    = "bought"
	PurchaseStatusDismissed = "dismissed"
)

// IsValidPurchaseStatus 检查待购状态是否有效
func IsValidPurchaseStatus(status string) bool {
	switch status {
	case PurchaseStatusPending, PurchaseStatusOrdered, PurchaseStatusBought, PurchaseStatusDismissed:
		return true
	default:
		return false
	}
}
