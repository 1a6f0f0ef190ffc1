package model

import "time"

// TestSession is one user attempt over a chosen set of questions. QuestionIDs
// keeps the caller-visible order so repeated fetches are consistent.
// swagger:model TestSession
type TestSession struct {
	UUIDBase
	UserID          string       `gorm:"index;type:varchar(36);not null" json:"userId"`
	CategoryID      string       `gorm:"index;type:varchar(36)" json:"categoryId"`
	Category        *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Type            QuestionType `gorm:"type:enum('LOTG_TEXT','VIDEO');default:'LOTG_TEXT'" json:"type"`
	MandatoryTestID *string      `gorm:"index;type:varchar(36)" json:"mandatoryTestId,omitempty"`
	QuestionIDs     StringList   `gorm:"type:json" json:"questionIds"`
	TotalQuestions  int          `json:"totalQuestions"`
	Score           *int         `json:"score"`
	CompletedAt     *time.Time   `json:"completedAt"`
	Answers         []TestAnswer `gorm:"foreignKey:TestSessionID" json:"answers,omitempty"`
}

func (TestSession) TableName() string {
	return "test_sessions"
}

// TestAnswer holds one row per (session, question); resubmission updates in
// place. The composite unique index is the final arbiter for concurrent
// upserts.
// swagger:model TestAnswer
type TestAnswer struct {
	UUIDBase
	TestSessionID    string `gorm:"uniqueIndex:idx_session_question;type:varchar(36);not null" json:"testSessionId"`
	QuestionID       string `gorm:"uniqueIndex:idx_session_question;type:varchar(36);not null" json:"questionId"`
	SelectedOptionID string `gorm:"type:varchar(36);not null" json:"selectedOptionId"`
	IsCorrect        bool   `gorm:"default:false" json:"isCorrect"`
}

func (TestAnswer) TableName() string {
	return "test_answers"
}
