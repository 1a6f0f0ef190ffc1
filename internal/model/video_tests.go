package model

import "time"

type VideoTestType string

const (
	VideoTestMandatory VideoTestType = "MANDATORY"
	VideoTestPublic    VideoTestType = "PUBLIC"
	VideoTestUser      VideoTestType = "USER"
)

// VideoTest is a template over an explicit ordered clip list.
// swagger:model VideoTest
type VideoTest struct {
	UUIDBase
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Type         VideoTestType   `gorm:"type:enum('MANDATORY','PUBLIC','USER');default:'PUBLIC'" json:"type"`
	PassingScore *int            `json:"passingScore"`
	DueDate      *time.Time      `json:"dueDate"`
	IsActive     bool            `gorm:"default:true" json:"isActive"`
	CreatedByID  string          `gorm:"index;type:varchar(36)" json:"createdById"`
	Clips        []VideoTestClip `gorm:"foreignKey:VideoTestID" json:"clips,omitempty"`
}

func (VideoTest) TableName() string {
	return "video_tests"
}

// swagger:model VideoTestClip
type VideoTestClip struct {
	UUIDBase
	VideoTestID string     `gorm:"uniqueIndex:idx_test_clip;type:varchar(36);not null" json:"videoTestId"`
	VideoClipID string     `gorm:"uniqueIndex:idx_test_clip;type:varchar(36);not null" json:"videoClipId"`
	VideoClip   *VideoClip `gorm:"foreignKey:VideoClipID" json:"videoClip,omitempty"`
	Order       int        `gorm:"default:0" json:"order"`
}

func (VideoTestClip) TableName() string {
	return "video_test_clips"
}

// swagger:model VideoTestSession
type VideoTestSession struct {
	UUIDBase
	UserID      string            `gorm:"index;type:varchar(36);not null" json:"userId"`
	VideoTestID string            `gorm:"index;type:varchar(36);not null" json:"videoTestId"`
	VideoTest   *VideoTest        `gorm:"foreignKey:VideoTestID" json:"videoTest,omitempty"`
	ClipIDs     StringList        `gorm:"type:json" json:"clipIds"`
	TotalClips  int               `json:"totalClips"`
	Score       *int              `json:"score"`
	CompletedAt *time.Time        `json:"completedAt"`
	Answers     []VideoTestAnswer `gorm:"foreignKey:VideoTestSessionID" json:"answers,omitempty"`
}

func (VideoTestSession) TableName() string {
	return "video_test_sessions"
}

// swagger:model VideoTestAnswer
type VideoTestAnswer struct {
	UUIDBase
	VideoTestSessionID string     `gorm:"uniqueIndex:idx_vsession_clip;type:varchar(36);not null" json:"videoTestSessionId"`
	VideoClipID        string     `gorm:"uniqueIndex:idx_vsession_clip;type:varchar(36);not null" json:"videoClipId"`
	PlayOnNoOffence    bool       `gorm:"default:false" json:"playOnNoOffence"`
	RestartTagID       *string    `gorm:"type:varchar(36)" json:"restartTagId"`
	SanctionTagID      *string    `gorm:"type:varchar(36)" json:"sanctionTagId"`
	CriteriaTagIDs     StringList `gorm:"type:json" json:"criteriaTagIds"`
	IsCorrect          bool       `gorm:"default:false" json:"isCorrect"`
	IsPartial          bool       `gorm:"default:false" json:"isPartial"`
}

func (VideoTestAnswer) TableName() string {
	return "video_test_answers"
}

// swagger:model VideoTestCompletion
type VideoTestCompletion struct {
	UUIDBase
	UserID             string    `gorm:"uniqueIndex:idx_user_vtest;type:varchar(36);not null" json:"userId"`
	VideoTestID        string    `gorm:"uniqueIndex:idx_user_vtest;type:varchar(36);not null" json:"videoTestId"`
	VideoTestSessionID string    `gorm:"type:varchar(36)" json:"videoTestSessionId"`
	Score              int       `json:"score"`
	Passed             *bool     `json:"passed"`
	CompletedAt        time.Time `json:"completedAt"`
}

func (VideoTestCompletion) TableName() string {
	return "video_test_completions"
}
