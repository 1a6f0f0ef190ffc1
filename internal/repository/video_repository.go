package repository

import (
	"referee_training_backend/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

// --- video categories ---

func (r *VideoRepository) CreateCategory(vc *model.VideoCategory) error {
	return r.DB.Create(vc).Error
}

func (r *VideoRepository) FindCategoryByID(id string) (*model.VideoCategory, error) {
	var vc model.VideoCategory
	err := r.DB.First(&vc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

func (r *VideoRepository) ListCategories() ([]model.VideoCategory, error) {
	var categories []model.VideoCategory
	err := r.DB.Order("display_order asc, name asc").Find(&categories).Error
	return categories, err
}

func (r *VideoRepository) UpdateCategory(vc *model.VideoCategory) error {
	return r.DB.Save(vc).Error
}

func (r *VideoRepository) CountCategoryClips(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VideoClip{}).Where("video_category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *VideoRepository) DeleteCategory(id string) error {
	return r.DB.Delete(&model.VideoCategory{}, "id = ?", id).Error
}

// --- clips ---

func (r *VideoRepository) CreateClip(clip *model.VideoClip) error {
	return r.DB.Create(clip).Error
}

func (r *VideoRepository) FindClipByID(id string) (*model.VideoClip, error) {
	var clip model.VideoClip
	err := r.DB.Preload("VideoCategory").
		Preload("Tags.Tag.Category").
		First(&clip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &clip, nil
}

func (r *VideoRepository) FindClipsByIDs(ids []string) ([]model.VideoClip, error) {
	var clips []model.VideoClip
	if len(ids) == 0 {
		return clips, nil
	}
	err := r.DB.Preload("VideoCategory").
		Preload("Tags.Tag.Category").
		Where("id IN ?", ids).Find(&clips).Error
	return clips, err
}

// FindClips runs the supplied filter scopes against active clips and returns
// a page plus the total match count.
func (r *VideoRepository) FindClips(scopes []func(*gorm.DB) *gorm.DB, page, limit int) ([]model.VideoClip, int64, error) {
	query := r.DB.Model(&model.VideoClip{}).Scopes(scopes...)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clips []model.VideoClip
	err := query.Preload("VideoCategory").
		Preload("Tags.Tag.Category").
		Order("video_clips.created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&clips).Error
	return clips, total, err
}

// FindClipIDs returns the ids of every clip matching the filter scopes,
// newest first, capped at limit when positive. Serves the admin
// eligible-clips picker for composing video tests.
func (r *VideoRepository) FindClipIDs(scopes []func(*gorm.DB) *gorm.DB, limit int) ([]string, error) {
	var ids []string
	query := r.DB.Model(&model.VideoClip{}).Scopes(scopes...).
		Order("video_clips.created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Pluck("video_clips.id", &ids).Error
	return ids, err
}

func (r *VideoRepository) CountClips(scopes []func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VideoClip{}).Scopes(scopes...).Count(&count).Error
	return count, err
}

// TagCount pairs a tag id with the number of matching clips carrying it.
type TagCount struct {
	TagID string `json:"tagId"`
	Count int64  `json:"count"`
}

// CountClipsPerTag groups the clips matched by the filter scopes by tag.
func (r *VideoRepository) CountClipsPerTag(scopes []func(*gorm.DB) *gorm.DB) ([]TagCount, error) {
	var counts []TagCount
	err := r.DB.Model(&model.VideoClip{}).Scopes(scopes...).
		Joins("JOIN video_tags counted ON counted.video_clip_id = video_clips.id").
		Select("counted.tag_id as tag_id, COUNT(DISTINCT video_clips.id) as count").
		Group("counted.tag_id").
		Scan(&counts).Error
	return counts, err
}

func (r *VideoRepository) UpdateClip(clip *model.VideoClip) error {
	return r.DB.Omit("Tags", "VideoCategory").Save(clip).Error
}

// ReplaceClipTags reconciles the stored tag links of a clip against the
// desired set: stale links are removed, existing ones are updated in place
// and new ones inserted. Runs in a single transaction.
func (r *VideoRepository) ReplaceClipTags(clipID string, desired []model.VideoTag) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing []model.VideoTag
		if err := tx.Where("video_clip_id = ?", clipID).Find(&existing).Error; err != nil {
			return err
		}

		current := make(map[string]model.VideoTag, len(existing))
		for _, vt := range existing {
			current[vt.TagID] = vt
		}
		wanted := make(map[string]bool, len(desired))
		for _, vt := range desired {
			wanted[vt.TagID] = true
		}

		for tagID, vt := range current {
			if !wanted[tagID] {
				if err := tx.Delete(&model.VideoTag{}, "id = ?", vt.ID).Error; err != nil {
					return err
				}
			}
		}

		for _, want := range desired {
			have, ok := current[want.TagID]
			if !ok {
				want.VideoClipID = clipID
				if err := tx.Create(&want).Error; err != nil {
					return err
				}
				continue
			}
			if have.IsCorrectDecision != want.IsCorrectDecision || have.DecisionOrder != want.DecisionOrder {
				if err := tx.Model(&model.VideoTag{}).Where("id = ?", have.ID).
					Updates(map[string]interface{}{
						"is_correct_decision": want.IsCorrectDecision,
						"decision_order":      want.DecisionOrder,
					}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *VideoRepository) RetireClip(id string) error {
	return r.DB.Model(&model.VideoClip{}).Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *VideoRepository) DeleteClip(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.VideoTag{}, "video_clip_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.VideoClip{}, "id = ?", id).Error
	})
}

// CountClipTestUsages reports how many video tests reference the clip.
// Deletion is refused while the clip is pinned by a test.
func (r *VideoRepository) CountClipTestUsages(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VideoTestClip{}).Where("video_clip_id = ?", id).Count(&count).Error
	return count, err
}
