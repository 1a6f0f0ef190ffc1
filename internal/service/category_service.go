package service

import (
	"github.com/gosimple/slug"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
)

// CategoryService manages the question/test subject categories.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CategoryRequest struct {
	Name         string             `json:"name" binding:"required"`
	Type         model.CategoryType `json:"type"`
	Description  string             `json:"description"`
	DisplayOrder int                `json:"displayOrder"`
}

func (s *CategoryService) Create(req CategoryRequest) (*model.Category, error) {
	categorySlug := slug.Make(req.Name)
	if _, err := s.categoryRepo.FindBySlug(categorySlug); err == nil {
		return nil, util.ErrDuplicateSlug
	}

	category := &model.Category{
		Name:         req.Name,
		Slug:         categorySlug,
		Type:         model.CategoryLOTG,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if req.Type != "" {
		category.Type = req.Type
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, util.ErrPersistence
	}
	return category, nil
}

func (s *CategoryService) Update(id string, req CategoryRequest) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrCategoryNotFound
	}

	newSlug := slug.Make(req.Name)
	if newSlug != category.Slug {
		if existing, err := s.categoryRepo.FindBySlug(newSlug); err == nil && existing.ID != id {
			return nil, util.ErrDuplicateSlug
		}
	}

	category.Name = req.Name
	category.Slug = newSlug
	category.Description = req.Description
	category.DisplayOrder = req.DisplayOrder
	if req.Type != "" {
		category.Type = req.Type
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, util.ErrPersistence
	}
	return category, nil
}

// Delete refuses while questions or sessions still reference the category.
func (s *CategoryService) Delete(id string) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return util.ErrCategoryNotFound
	}
	dependents, err := s.categoryRepo.CountDependents(id)
	if err != nil {
		return util.ErrPersistence
	}
	if dependents > 0 {
		return util.ErrConflict
	}
	return s.categoryRepo.Delete(id)
}

func (s *CategoryService) List() ([]model.Category, error) {
	return s.categoryRepo.List()
}

func (s *CategoryService) Get(id string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrCategoryNotFound
	}
	return category, nil
}
