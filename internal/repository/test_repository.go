package repository

import (
	"time"

	"referee_training_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// --- sessions ---

func (r *TestRepository) CreateSession(session *model.TestSession) error {
	return r.DB.Create(session).Error
}

func (r *TestRepository) FindSessionByID(id string) (*model.TestSession, error) {
	var session model.TestSession
	err := r.DB.Preload("Category").First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *TestRepository) ListSessionsForUser(userID string, page, limit int) ([]model.TestSession, int64, error) {
	query := r.DB.Model(&model.TestSession{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.TestSession
	err := query.Preload("Category").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *TestRepository) UpdateSessionSummary(id string, score int, completedAt *time.Time) error {
	updates := map[string]interface{}{"score": score}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	return r.DB.Model(&model.TestSession{}).Where("id = ?", id).Updates(updates).Error
}

// --- answers ---

// UpsertAnswer records one answer per (session, question). A resubmission
// overwrites the stored selection; the composite unique index arbitrates
// concurrent writers.
func (r *TestRepository) UpsertAnswer(answer *model.TestAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "test_session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option_id", "is_correct", "updated_at",
		}),
	}).Create(answer).Error
}

// UpsertAnswersAndFinalize applies a graded batch, recomputes the score over
// every stored answer of the session and stamps completion, all in one
// transaction. Returns the recomputed score.
func (r *TestRepository) UpsertAnswersAndFinalize(sessionID string, answers []model.TestAnswer, completedAt time.Time) (int, error) {
	var score int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "test_session_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"selected_option_id", "is_correct", "updated_at",
				}),
			}).Create(&answers[i]).Error
			if err != nil {
				return err
			}
		}
		if err := tx.Model(&model.TestAnswer{}).
			Where("test_session_id = ? AND is_correct = ?", sessionID, true).
			Count(&score).Error; err != nil {
			return err
		}
		return tx.Model(&model.TestSession{}).Where("id = ?", sessionID).
			Updates(map[string]interface{}{
				"score":        int(score),
				"completed_at": completedAt,
			}).Error
	})
	return int(score), err
}

func (r *TestRepository) FindAnswers(sessionID string) ([]model.TestAnswer, error) {
	var answers []model.TestAnswer
	err := r.DB.Where("test_session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

func (r *TestRepository) CountAnswers(sessionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestAnswer{}).
		Where("test_session_id = ?", sessionID).Count(&count).Error
	return count, err
}

func (r *TestRepository) CountCorrectAnswers(sessionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestAnswer{}).
		Where("test_session_id = ? AND is_correct = ?", sessionID, true).Count(&count).Error
	return count, err
}

// --- mandatory tests ---

func (r *TestRepository) CreateMandatoryTest(mt *model.MandatoryTest) error {
	return r.DB.Create(mt).Error
}

func (r *TestRepository) FindMandatoryTestByID(id string) (*model.MandatoryTest, error) {
	var mt model.MandatoryTest
	err := r.DB.Preload("Category").First(&mt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

func (r *TestRepository) ListMandatoryTests(activeOnly bool) ([]model.MandatoryTest, error) {
	var tests []model.MandatoryTest
	query := r.DB.Model(&model.MandatoryTest{}).Preload("Category")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at desc").Find(&tests).Error
	return tests, err
}

func (r *TestRepository) UpdateMandatoryTest(mt *model.MandatoryTest) error {
	return r.DB.Save(mt).Error
}

func (r *TestRepository) CountMandatoryTestSessions(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestSession{}).
		Where("mandatory_test_id = ?", id).Count(&count).Error
	return count, err
}

func (r *TestRepository) DeleteMandatoryTest(id string) error {
	return r.DB.Delete(&model.MandatoryTest{}, "id = ?", id).Error
}

// --- completions ---

// UpsertCompletion keeps at most one completion row per (user, test); the
// best or latest result logic is decided by the caller, the row is simply
// overwritten.
func (r *TestRepository) UpsertCompletion(completion *model.MandatoryTestCompletion) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "mandatory_test_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"test_session_id", "score", "passed", "completed_at", "updated_at",
		}),
	}).Create(completion).Error
}

func (r *TestRepository) FindCompletionsForUser(userID string) ([]model.MandatoryTestCompletion, error) {
	var completions []model.MandatoryTestCompletion
	err := r.DB.Where("user_id = ?", userID).Find(&completions).Error
	return completions, err
}

func (r *TestRepository) FindCompletionsForTest(testID string) ([]model.MandatoryTestCompletion, error) {
	var completions []model.MandatoryTestCompletion
	err := r.DB.Where("mandatory_test_id = ?", testID).
		Order("completed_at desc").Find(&completions).Error
	return completions, err
}
