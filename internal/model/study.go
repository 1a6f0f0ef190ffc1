package model

import "time"

// StudyProgress records whether a user has read a question in study mode.
// One row per user/question pair; rereading just refreshes ReadAt.
// swagger:model StudyProgress
type StudyProgress struct {
	UUIDBase
	UserID     string     `gorm:"uniqueIndex:idx_user_question;type:varchar(36);not null" json:"userId"`
	QuestionID string     `gorm:"uniqueIndex:idx_user_question;type:varchar(36);not null" json:"questionId"`
	IsRead     bool       `gorm:"default:false" json:"isRead"`
	ReadAt     *time.Time `json:"readAt"`
}

func (StudyProgress) TableName() string {
	return "study_progress"
}

// QuestionFavorite marks a question a user starred for later review.
// swagger:model QuestionFavorite
type QuestionFavorite struct {
	UUIDBase
	UserID     string `gorm:"uniqueIndex:idx_user_favorite;type:varchar(36);not null" json:"userId"`
	QuestionID string `gorm:"uniqueIndex:idx_user_favorite;type:varchar(36);not null" json:"questionId"`
}

func (QuestionFavorite) TableName() string {
	return "question_favorites"
}
