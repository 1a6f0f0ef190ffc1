package repository

import (
	"referee_training_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindByID(id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Resolve finds the first category matching the non-empty criteria, the way
// session starts address categories by slug and/or type.
func (r *CategoryRepository) Resolve(slug string, categoryType model.CategoryType) (*model.Category, error) {
	query := r.DB.Model(&model.Category{})
	if slug != "" {
		query = query.Where("slug = ?", slug)
	}
	if categoryType != "" {
		query = query.Where("type = ?", categoryType)
	}

	var category model.Category
	err := query.Order("display_order asc").First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("display_order asc, name asc").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

func (r *CategoryRepository) CountDependents(id string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("category_id = ?", id).Count(&count).Error
	if err != nil {
		return 0, err
	}
	var sessions int64
	if err := r.DB.Model(&model.TestSession{}).Where("category_id = ?", id).Count(&sessions).Error; err != nil {
		return 0, err
	}
	return count + sessions, nil
}

func (r *CategoryRepository) Delete(id string) error {
	return r.DB.Delete(&model.Category{}, "id = ?", id).Error
}
