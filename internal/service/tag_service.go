package service

import (
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
	"referee_training_backend/pkg/logger"
)

// TagService manages the clip taxonomy: tag categories and tags.
type TagService struct {
	tagRepo  *repository.TagRepository
	taxonomy *TaxonomyService
}

func NewTagService(tagRepo *repository.TagRepository, taxonomy *TaxonomyService) *TagService {
	return &TagService{tagRepo: tagRepo, taxonomy: taxonomy}
}

// --- tag categories ---

type TagCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
	AllowLinks   *bool  `json:"allowLinks"`
}

func (s *TagService) CreateCategory(req TagCategoryRequest) (*model.TagCategory, error) {
	categorySlug := slug.Make(req.Name)
	taken, err := s.tagRepo.CategorySlugTaken(categorySlug, "")
	if err != nil {
		return nil, util.ErrPersistence
	}
	if taken {
		return nil, util.ErrDuplicateSlug
	}

	tc := &model.TagCategory{
		Name:         req.Name,
		Slug:         categorySlug,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		tc.IsActive = *req.IsActive
	}
	if req.AllowLinks != nil {
		tc.AllowLinks = *req.AllowLinks
	}
	if err := s.tagRepo.CreateCategory(tc); err != nil {
		logger.Log.Error("create tag category", zap.Error(err))
		return nil, util.ErrPersistence
	}
	return tc, nil
}

func (s *TagService) UpdateCategory(id string, req TagCategoryRequest) (*model.TagCategory, error) {
	tc, err := s.tagRepo.FindCategoryByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}

	newSlug := slug.Make(req.Name)
	if newSlug != tc.Slug {
		taken, err := s.tagRepo.CategorySlugTaken(newSlug, id)
		if err != nil {
			return nil, util.ErrPersistence
		}
		if taken {
			return nil, util.ErrDuplicateSlug
		}
	}

	oldSlug := tc.Slug
	tc.Name = req.Name
	tc.Slug = newSlug
	tc.Description = req.Description
	tc.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		tc.IsActive = *req.IsActive
	}
	if req.AllowLinks != nil {
		tc.AllowLinks = *req.AllowLinks
	}
	if err := s.tagRepo.UpdateCategory(tc); err != nil {
		return nil, util.ErrPersistence
	}
	s.taxonomy.Invalidate(oldSlug)
	s.taxonomy.Invalidate(newSlug)
	return tc, nil
}

// DeleteCategory refuses while tags still live under the category.
func (s *TagService) DeleteCategory(id string) error {
	tc, err := s.tagRepo.FindCategoryByID(id)
	if err != nil {
		return util.ErrNotFound
	}
	count, err := s.tagRepo.CountCategoryTags(id)
	if err != nil {
		return util.ErrPersistence
	}
	if count > 0 {
		return util.ErrTagCategoryInUse
	}
	if err := s.tagRepo.DeleteCategory(id); err != nil {
		return util.ErrPersistence
	}
	s.taxonomy.Invalidate(tc.Slug)
	return nil
}

func (s *TagService) ListCategories(activeOnly bool) ([]model.TagCategory, error) {
	return s.tagRepo.ListCategories(activeOnly)
}

func (s *TagService) GetCategory(id string) (*model.TagCategory, error) {
	tc, err := s.tagRepo.FindCategoryByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}
	return tc, nil
}

// --- tags ---

type TagRequest struct {
	Name          string `json:"name" binding:"required"`
	Color         string `json:"color"`
	Description   string `json:"description"`
	LinkURL       string `json:"linkUrl"`
	TagCategoryID string `json:"tagCategoryId" binding:"required"`
	DisplayOrder  int    `json:"displayOrder"`
	IsActive      *bool  `json:"isActive"`
}

func (s *TagService) CreateTag(req TagRequest) (*model.Tag, error) {
	category, err := s.tagRepo.FindCategoryByID(req.TagCategoryID)
	if err != nil {
		return nil, util.ErrNotFound
	}
	if req.LinkURL != "" && !category.AllowLinks {
		return nil, util.ErrLinksNotAllowed
	}

	tagSlug := slug.Make(req.Name)
	taken, err := s.tagRepo.TagSlugTaken(tagSlug, "")
	if err != nil {
		return nil, util.ErrPersistence
	}
	if taken {
		return nil, util.ErrDuplicateSlug
	}

	tag := &model.Tag{
		Name:          req.Name,
		Slug:          tagSlug,
		Color:         req.Color,
		Description:   req.Description,
		LinkURL:       req.LinkURL,
		TagCategoryID: req.TagCategoryID,
		DisplayOrder:  req.DisplayOrder,
		IsActive:      true,
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}
	if err := s.tagRepo.CreateTag(tag); err != nil {
		logger.Log.Error("create tag", zap.Error(err))
		return nil, util.ErrPersistence
	}
	return tag, nil
}

func (s *TagService) UpdateTag(id string, req TagRequest) (*model.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}
	category, err := s.tagRepo.FindCategoryByID(req.TagCategoryID)
	if err != nil {
		return nil, util.ErrNotFound
	}
	if req.LinkURL != "" && !category.AllowLinks {
		return nil, util.ErrLinksNotAllowed
	}

	newSlug := slug.Make(req.Name)
	if newSlug != tag.Slug {
		taken, err := s.tagRepo.TagSlugTaken(newSlug, id)
		if err != nil {
			return nil, util.ErrPersistence
		}
		if taken {
			return nil, util.ErrDuplicateSlug
		}
	}

	tag.Name = req.Name
	tag.Slug = newSlug
	tag.Color = req.Color
	tag.Description = req.Description
	tag.LinkURL = req.LinkURL
	tag.TagCategoryID = req.TagCategoryID
	tag.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}
	tag.Category = nil
	if err := s.tagRepo.UpdateTag(tag); err != nil {
		return nil, util.ErrPersistence
	}
	return tag, nil
}

// DeleteTag refuses while clips still carry the tag.
func (s *TagService) DeleteTag(id string) error {
	if _, err := s.tagRepo.FindTagByID(id); err != nil {
		return util.ErrNotFound
	}
	count, err := s.tagRepo.CountTagUsages(id)
	if err != nil {
		return util.ErrPersistence
	}
	if count > 0 {
		return util.ErrTagInUse
	}
	return s.tagRepo.DeleteTag(id)
}

func (s *TagService) ListTags(categorySlug string, activeOnly bool) ([]model.Tag, error) {
	return s.tagRepo.ListTags(categorySlug, activeOnly)
}

func (s *TagService) GetTag(id string) (*model.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}
	return tag, nil
}
