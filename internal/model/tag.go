package model

// Well-known tag category slugs used for video decision scoring.
const (
	TagCategoryRestarts = "restarts"
	TagCategorySanction = "sanction"
	TagCategoryCriteria = "criteria"
	TagCategoryCategory = "category"
)

// TagCategory is the top level of the clip taxonomy. AllowLinks gates whether
// tags under it may carry a link URL.
// swagger:model TagCategory
type TagCategory struct {
	UUIDBase
	Name         string `gorm:"size:255;not null" json:"name"`
	Slug         string `gorm:"size:255;uniqueIndex" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
	AllowLinks   bool   `gorm:"default:false" json:"allowLinks"`
	Tags         []Tag  `gorm:"foreignKey:TagCategoryID" json:"tags,omitempty"`
}

func (TagCategory) TableName() string {
	return "tag_categories"
}

// swagger:model Tag
type Tag struct {
	UUIDBase
	Name          string       `gorm:"size:255;not null" json:"name"`
	Slug          string       `gorm:"size:255;uniqueIndex" json:"slug"`
	Color         string       `gorm:"size:20" json:"color"`
	Description   string       `gorm:"type:text" json:"description"`
	LinkURL       string       `gorm:"size:512" json:"linkUrl"`
	TagCategoryID string       `gorm:"index;type:varchar(36);not null" json:"tagCategoryId"`
	Category      *TagCategory `gorm:"foreignKey:TagCategoryID" json:"category,omitempty"`
	DisplayOrder  int          `gorm:"default:0" json:"displayOrder"`
	IsActive      bool         `gorm:"default:true" json:"isActive"`
}

func (Tag) TableName() string {
	return "tags"
}
