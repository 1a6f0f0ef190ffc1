package service

import (
	"fmt"
	"sync"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
)

// TaxonomyService resolves the well-known tag categories (restarts, sanction,
// criteria, category) by slug. Handles are cached for the process lifetime;
// these rows are seeded at startup and never renamed.
type TaxonomyService struct {
	tagRepo *repository.TagRepository

	mu    sync.RWMutex
	cache map[string]*model.TagCategory
}

func NewTaxonomyService(tagRepo *repository.TagRepository) *TaxonomyService {
	return &TaxonomyService{
		tagRepo: tagRepo,
		cache:   make(map[string]*model.TagCategory),
	}
}

// Resolve returns the tag category for a well-known slug.
func (s *TaxonomyService) Resolve(kind string) (*model.TagCategory, error) {
	s.mu.RLock()
	if tc, ok := s.cache[kind]; ok {
		s.mu.RUnlock()
		return tc, nil
	}
	s.mu.RUnlock()

	tc, err := s.tagRepo.FindCategoryBySlug(kind)
	if err != nil {
		return nil, fmt.Errorf("resolve tag category %q: %w", kind, util.ErrNotFound)
	}

	s.mu.Lock()
	s.cache[kind] = tc
	s.mu.Unlock()
	return tc, nil
}

// Invalidate drops a cached handle after an admin edit to that category.
func (s *TaxonomyService) Invalidate(kind string) {
	s.mu.Lock()
	delete(s.cache, kind)
	s.mu.Unlock()
}
