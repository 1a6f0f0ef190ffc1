package model

type QuestionType string

const (
	QuestionLOTGText QuestionType = "LOTG_TEXT"
	QuestionVideo    QuestionType = "VIDEO"
)

// swagger:model Question
type Question struct {
	UUIDBase
	Text        string         `gorm:"type:text;not null" json:"text"`
	Explanation string         `gorm:"type:text" json:"explanation"`
	Type        QuestionType   `gorm:"type:enum('LOTG_TEXT','VIDEO');default:'LOTG_TEXT'" json:"type"`
	LawNumbers  IntList        `gorm:"type:json" json:"lawNumbers"`
	Difficulty  int            `gorm:"default:1" json:"difficulty"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	IsVar       bool           `gorm:"default:false" json:"isVar"`
	IsUpToDate  bool           `gorm:"default:true" json:"isUpToDate"`
	IsIfab      bool           `gorm:"default:true" json:"isIfab"`
	CategoryID  string         `gorm:"index;type:varchar(36)" json:"categoryId"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Options     []AnswerOption `gorm:"foreignKey:QuestionID" json:"answerOptions,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// AnswerOption belongs to exactly one question. Under normal data entry
// exactly one option per question carries IsCorrect=true; this is audited by
// scripts/answer_audit.go rather than enforced at write time.
// swagger:model AnswerOption
type AnswerOption struct {
	UUIDBase
	QuestionID   string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	Label        string `gorm:"type:text;not null" json:"label"`
	Code         string `gorm:"size:50" json:"code"`
	IsCorrect    bool   `gorm:"default:false" json:"isCorrect"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}
