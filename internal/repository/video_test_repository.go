package repository

import (
	"time"

	"referee_training_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoTestRepository struct {
	DB *gorm.DB
}

func NewVideoTestRepository(db *gorm.DB) *VideoTestRepository {
	return &VideoTestRepository{DB: db}
}

// --- video tests ---

// CreateTest stores the test and its ordered clip links in one transaction.
func (r *VideoTestRepository) CreateTest(vt *model.VideoTest, clips []model.VideoTestClip) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Clips").Create(vt).Error; err != nil {
			return err
		}
		for i := range clips {
			clips[i].VideoTestID = vt.ID
		}
		if len(clips) > 0 {
			if err := tx.Create(&clips).Error; err != nil {
				return err
			}
		}
		vt.Clips = clips
		return nil
	})
}

func (r *VideoTestRepository) FindTestByID(id string) (*model.VideoTest, error) {
	var vt model.VideoTest
	err := r.DB.Preload("Clips", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc")
	}).Preload("Clips.VideoClip.Tags.Tag.Category").
		First(&vt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vt, nil
}

func (r *VideoTestRepository) ListTests(testType model.VideoTestType, activeOnly bool) ([]model.VideoTest, error) {
	query := r.DB.Model(&model.VideoTest{})
	if testType != "" {
		query = query.Where("type = ?", testType)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var tests []model.VideoTest
	err := query.Preload("Clips").Order("created_at desc").Find(&tests).Error
	return tests, err
}

func (r *VideoTestRepository) UpdateTest(vt *model.VideoTest) error {
	return r.DB.Omit("Clips").Save(vt).Error
}

// ReplaceTestClips swaps the clip list wholesale; ordering comes from the
// caller via the Order field.
func (r *VideoTestRepository) ReplaceTestClips(testID string, clips []model.VideoTestClip) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.VideoTestClip{}, "video_test_id = ?", testID).Error; err != nil {
			return err
		}
		for i := range clips {
			clips[i].VideoTestID = testID
			clips[i].ID = ""
		}
		if len(clips) == 0 {
			return nil
		}
		return tx.Create(&clips).Error
	})
}

func (r *VideoTestRepository) CountTestSessions(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VideoTestSession{}).
		Where("video_test_id = ?", id).Count(&count).Error
	return count, err
}

func (r *VideoTestRepository) DeleteTest(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.VideoTestClip{}, "video_test_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.VideoTest{}, "id = ?", id).Error
	})
}

// --- sessions ---

func (r *VideoTestRepository) CreateSession(session *model.VideoTestSession) error {
	return r.DB.Create(session).Error
}

func (r *VideoTestRepository) FindSessionByID(id string) (*model.VideoTestSession, error) {
	var session model.VideoTestSession
	err := r.DB.Preload("VideoTest").First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *VideoTestRepository) ListSessionsForUser(userID string, page, limit int) ([]model.VideoTestSession, int64, error) {
	query := r.DB.Model(&model.VideoTestSession{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.VideoTestSession
	err := query.Preload("VideoTest").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *VideoTestRepository) UpdateSessionSummary(id string, score int, completedAt *time.Time) error {
	updates := map[string]interface{}{"score": score}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	return r.DB.Model(&model.VideoTestSession{}).Where("id = ?", id).Updates(updates).Error
}

// --- answers ---

func (r *VideoTestRepository) UpsertAnswer(answer *model.VideoTestAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "video_test_session_id"}, {Name: "video_clip_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"play_on_no_offence", "restart_tag_id", "sanction_tag_id",
			"criteria_tag_ids", "is_correct", "is_partial", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *VideoTestRepository) FindAnswers(sessionID string) ([]model.VideoTestAnswer, error) {
	var answers []model.VideoTestAnswer
	err := r.DB.Where("video_test_session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

func (r *VideoTestRepository) CountAnswers(sessionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VideoTestAnswer{}).
		Where("video_test_session_id = ?", sessionID).Count(&count).Error
	return count, err
}

// --- completions ---

func (r *VideoTestRepository) UpsertCompletion(completion *model.VideoTestCompletion) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "video_test_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"video_test_session_id", "score", "passed", "completed_at", "updated_at",
		}),
	}).Create(completion).Error
}

func (r *VideoTestRepository) FindCompletionsForUser(userID string) ([]model.VideoTestCompletion, error) {
	var completions []model.VideoTestCompletion
	err := r.DB.Where("user_id = ?", userID).Find(&completions).Error
	return completions, err
}
