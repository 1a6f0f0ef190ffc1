package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"referee_training_backend/internal/model"
)

type StudyRepository struct {
	DB *gorm.DB
}

func NewStudyRepository(db *gorm.DB) *StudyRepository {
	return &StudyRepository{DB: db}
}

// UpsertProgress records a read marker; rereading refreshes read_at on the
// existing row via the composite unique index.
func (r *StudyRepository) UpsertProgress(progress *model.StudyProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_read", "read_at", "updated_at",
		}),
	}).Create(progress).Error
}

// ResetProgress flips every stored marker of the user back to unread.
func (r *StudyRepository) ResetProgress(userID string) error {
	return r.DB.Model(&model.StudyProgress{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"is_read": false, "read_at": nil}).Error
}

func (r *StudyRepository) FindProgress(userID string, questionIDs []string) ([]model.StudyProgress, error) {
	var rows []model.StudyProgress
	if len(questionIDs) == 0 {
		return rows, nil
	}
	err := r.DB.Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Find(&rows).Error
	return rows, err
}

// UpsertFavorite is idempotent; starring twice keeps the original row.
func (r *StudyRepository) UpsertFavorite(favorite *model.QuestionFavorite) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoNothing: true,
	}).Create(favorite).Error
}

// DeleteFavorite removes the row outright so the unique index stays free for
// a later re-star.
func (r *StudyRepository) DeleteFavorite(userID, questionID string) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&model.QuestionFavorite{}).Error
}

// FindFavoriteQuestionIDs lists the user's starred question ids, newest star
// first.
func (r *StudyRepository) FindFavoriteQuestionIDs(userID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.QuestionFavorite{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("question_id", &ids).Error
	return ids, err
}

// FindFavoritesAmong narrows the user's stars to the given question ids.
func (r *StudyRepository) FindFavoritesAmong(userID string, questionIDs []string) ([]string, error) {
	var ids []string
	if len(questionIDs) == 0 {
		return ids, nil
	}
	err := r.DB.Model(&model.QuestionFavorite{}).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Pluck("question_id", &ids).Error
	return ids, err
}
