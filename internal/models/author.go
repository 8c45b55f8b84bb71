package models

// Author 作者模型
type Author struct {
	BaseModel
	TenantID        uint    `json:"tenant_id" gorm:"not null;index"`
	Name            string  `json:"name" gorm:"not null;size:255"`
	Nickname        *string `json:"nickname" gorm:"size:255"`
	Origin          *string `json:"origin" gorm:"size:255"`
	BirthDate       *string `json:"birth_date" gorm:"size:50"`
	DeathDate       *string `json:"death_date" gorm:"size:50"`
	BirthPlace      *string `json:"birth_place" gorm:"size:255"`
	DeathPlace      *string `json:"death_place" gorm:"size:255"`
	OfficialDuties  *string `json:"official_duties" gorm:"type:text"`
	FiqhMadhhab     *string `json:"fiqh_madhhab" gorm:"size:100"`
	AqidahMadhhab   *string `json:"aqidah_madhhab" gorm:"size:100"`
	FamousWorks     *string `json:"famous_works" gorm:"type:text"`
	Teachers        *string `json:"teachers" gorm:"type:text"`
	Students        *string `json:"students" gorm:"type:text"`
	StatusInTabakat *string `json:"status_in_tabakat" gorm:"size:255"`
	ExpertiseAreas  *string `json:"expertise_areas" gorm:"type:text"`
	ImportantNotes  *string `json:"important_notes" gorm:"type:text"`

	// 关联
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

// TableName 表名
func (a *Author) TableName() string {
	return "authors"
}
