package repository

import (
	"referee_training_backend/internal/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

// --- tag categories ---

func (r *TagRepository) CreateCategory(tc *model.TagCategory) error {
	return r.DB.Create(tc).Error
}

func (r *TagRepository) FindCategoryByID(id string) (*model.TagCategory, error) {
	var tc model.TagCategory
	err := r.DB.First(&tc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tc, nil
}

func (r *TagRepository) FindCategoryBySlug(slug string) (*model.TagCategory, error) {
	var tc model.TagCategory
	err := r.DB.First(&tc, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &tc, nil
}

func (r *TagRepository) CategorySlugTaken(slug, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.TagCategory{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *TagRepository) ListCategories(activeOnly bool) ([]model.TagCategory, error) {
	var categories []model.TagCategory
	query := r.DB.Model(&model.TagCategory{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc, name asc")
	}).Order("display_order asc, name asc").Find(&categories).Error
	return categories, err
}

func (r *TagRepository) UpdateCategory(tc *model.TagCategory) error {
	return r.DB.Save(tc).Error
}

func (r *TagRepository) CountCategoryTags(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Tag{}).Where("tag_category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *TagRepository) DeleteCategory(id string) error {
	return r.DB.Delete(&model.TagCategory{}, "id = ?", id).Error
}

// --- tags ---

func (r *TagRepository) CreateTag(tag *model.Tag) error {
	return r.DB.Create(tag).Error
}

func (r *TagRepository) FindTagByID(id string) (*model.Tag, error) {
	var tag model.Tag
	err := r.DB.Preload("Category").First(&tag, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) FindTagsByIDs(ids []string) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.DB.Preload("Category").Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindTagsBySlugs(slugs []string) ([]model.Tag, error) {
	var tags []model.Tag
	if len(slugs) == 0 {
		return tags, nil
	}
	err := r.DB.Preload("Category").Where("slug IN ?", slugs).Find(&tags).Error
	return tags, err
}

func (r *TagRepository) TagSlugTaken(slug, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Tag{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *TagRepository) ListTags(categorySlug string, activeOnly bool) ([]model.Tag, error) {
	query := r.DB.Model(&model.Tag{}).Preload("Category")
	if activeOnly {
		query = query.Where("tags.is_active = ?", true)
	}
	if categorySlug != "" {
		query = query.Joins("JOIN tag_categories tc ON tc.id = tags.tag_category_id").
			Where("tc.slug = ?", categorySlug)
	}

	var tags []model.Tag
	err := query.Order("tags.display_order asc, tags.name asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) UpdateTag(tag *model.Tag) error {
	return r.DB.Save(tag).Error
}

func (r *TagRepository) CountTagUsages(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VideoTag{}).Where("tag_id = ?", id).Count(&count).Error
	return count, err
}

func (r *TagRepository) DeleteTag(id string) error {
	return r.DB.Delete(&model.Tag{}, "id = ?", id).Error
}
