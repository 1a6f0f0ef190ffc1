package model

type CategoryType string

const (
	CategoryLOTG     CategoryType = "LOTG"
	CategoryVideo    CategoryType = "VIDEO"
	CategoryPractice CategoryType = "PRACTICE"
)

// Category groups questions and test sessions by subject area.
// swagger:model Category
type Category struct {
	UUIDBase
	Name         string       `gorm:"size:255;not null" json:"name"`
	Slug         string       `gorm:"size:255;uniqueIndex" json:"slug"`
	Type         CategoryType `gorm:"type:enum('LOTG','VIDEO','PRACTICE');default:'LOTG'" json:"type"`
	Description  string       `gorm:"type:text" json:"description"`
	DisplayOrder int          `gorm:"default:0" json:"displayOrder"`
}

func (Category) TableName() string {
	return "categories"
}
