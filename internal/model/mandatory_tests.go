package model

import "time"

// MandatoryTest is an admin-authored template from which quiz sessions are
// instantiated. Once sessions reference it only metadata fields change.
// swagger:model MandatoryTest
type MandatoryTest struct {
	UUIDBase
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	CategoryID     string     `gorm:"index;type:varchar(36);not null" json:"categoryId"`
	Category       *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	LawNumbers     IntList    `gorm:"type:json" json:"lawNumbers"`
	QuestionIDs    StringList `gorm:"type:json" json:"questionIds"`
	TotalQuestions int        `gorm:"default:10" json:"totalQuestions"`
	PassingScore   *int       `json:"passingScore"`
	DueDate        *time.Time `json:"dueDate"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`
	IsMandatory    bool       `gorm:"default:true" json:"isMandatory"`
	IncludeIfab    bool       `gorm:"default:true" json:"includeIfab"`
	IncludeCustom  bool       `gorm:"default:false" json:"includeCustom"`
	CreatedByID    string     `gorm:"index;type:varchar(36)" json:"createdById"`
}

func (MandatoryTest) TableName() string {
	return "mandatory_tests"
}

// swagger:model MandatoryTestCompletion
type MandatoryTestCompletion struct {
	UUIDBase
	UserID          string    `gorm:"uniqueIndex:idx_user_mtest;type:varchar(36);not null" json:"userId"`
	MandatoryTestID string    `gorm:"uniqueIndex:idx_user_mtest;type:varchar(36);not null" json:"mandatoryTestId"`
	TestSessionID   string    `gorm:"type:varchar(36)" json:"testSessionId"`
	Score           int       `json:"score"`
	Passed          *bool     `json:"passed"`
	CompletedAt     time.Time `json:"completedAt"`
}

func (MandatoryTestCompletion) TableName() string {
	return "mandatory_test_completions"
}
