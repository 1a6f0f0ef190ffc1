package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
	"referee_training_backend/pkg/logger"
)

const filterCountTTL = 5 * time.Minute

// VideoService manages the clip library: categories, clips, their tag links
// and the filter-count dropdowns.
type VideoService struct {
	videoRepo *repository.VideoRepository
	tagRepo   *repository.TagRepository
	taxonomy  *TaxonomyService
	rdb       *redis.Client
}

func NewVideoService(videoRepo *repository.VideoRepository, tagRepo *repository.TagRepository, taxonomy *TaxonomyService, rdb *redis.Client) *VideoService {
	return &VideoService{videoRepo: videoRepo, tagRepo: tagRepo, taxonomy: taxonomy, rdb: rdb}
}

// translateWriteErr maps store-level write failures onto the error taxonomy;
// a unique-index hit means a name collision on the slug column.
func translateWriteErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateSlug
	}
	return util.ErrPersistence
}

// --- video categories ---

type VideoCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

func (s *VideoService) CreateCategory(req VideoCategoryRequest) (*model.VideoCategory, error) {
	vc := &model.VideoCategory{
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.videoRepo.CreateCategory(vc); err != nil {
		return nil, translateWriteErr(err)
	}
	return vc, nil
}

func (s *VideoService) UpdateCategory(id string, req VideoCategoryRequest) (*model.VideoCategory, error) {
	vc, err := s.videoRepo.FindCategoryByID(id)
	if err != nil {
		return nil, util.ErrNotFound
	}
	vc.Name = req.Name
	vc.Slug = slug.Make(req.Name)
	vc.DisplayOrder = req.DisplayOrder
	if err := s.videoRepo.UpdateCategory(vc); err != nil {
		return nil, translateWriteErr(err)
	}
	return vc, nil
}

func (s *VideoService) DeleteCategory(id string) error {
	if _, err := s.videoRepo.FindCategoryByID(id); err != nil {
		return util.ErrNotFound
	}
	count, err := s.videoRepo.CountCategoryClips(id)
	if err != nil {
		return util.ErrPersistence
	}
	if count > 0 {
		return util.ErrConflict
	}
	return s.videoRepo.DeleteCategory(id)
}

func (s *VideoService) ListCategories() ([]model.VideoCategory, error) {
	return s.videoRepo.ListCategories()
}

// --- clips ---

// ClipTagRequest links a tag to a clip with its decision metadata.
type ClipTagRequest struct {
	TagID             string `json:"tagId" binding:"required"`
	IsCorrectDecision bool   `json:"isCorrectDecision"`
	DecisionOrder     int    `json:"decisionOrder"`
}

// ClipRequest is a partial-update payload; nil pointers leave the stored
// value alone. Tags, when present, replace the link set by diff.
type ClipRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	FileURL         *string          `json:"fileUrl"`
	ThumbnailURL    *string          `json:"thumbnailUrl"`
	Duration        *float64         `json:"duration"`
	TrimMeta        datatypes.JSON   `json:"trimMeta"`
	LawNumbers      []int            `json:"lawNumbers"`
	PlayOn          *bool            `json:"playOn"`
	NoOffence       *bool            `json:"noOffence"`
	VarRelevant     *bool            `json:"varRelevant"`
	IsActive        *bool            `json:"isActive"`
	IsEducational   *bool            `json:"isEducational"`
	IsFeatured      *bool            `json:"isFeatured"`
	VideoCategoryID *string          `json:"videoCategoryId"`
	Tags            []ClipTagRequest `json:"tags"`
}

func (s *VideoService) CreateClip(req ClipRequest) (*model.VideoClip, error) {
	if req.Title == nil || *req.Title == "" || req.FileURL == nil || *req.FileURL == "" {
		return nil, util.ErrValidation
	}

	clip := &model.VideoClip{
		Title:    *req.Title,
		FileURL:  *req.FileURL,
		IsActive: true,
	}
	applyClipFields(clip, req)

	if err := s.validateTagLinks(req.Tags); err != nil {
		return nil, err
	}
	for _, t := range req.Tags {
		clip.Tags = append(clip.Tags, model.VideoTag{
			TagID:             t.TagID,
			IsCorrectDecision: t.IsCorrectDecision,
			DecisionOrder:     t.DecisionOrder,
		})
	}

	if err := s.videoRepo.CreateClip(clip); err != nil {
		logger.Log.Error("create video clip", zap.Error(err))
		return nil, util.ErrPersistence
	}
	s.invalidateFilterCounts(context.Background())
	return s.videoRepo.FindClipByID(clip.ID)
}

// UpdateClip applies the partial payload. Tag links are reconciled by diff
// so untouched rows keep their metadata.
func (s *VideoService) UpdateClip(id string, req ClipRequest) (*model.VideoClip, error) {
	clip, err := s.videoRepo.FindClipByID(id)
	if err != nil {
		return nil, util.ErrClipNotFound
	}

	applyClipFields(clip, req)
	if req.Title != nil {
		clip.Title = *req.Title
	}
	if req.FileURL != nil {
		clip.FileURL = *req.FileURL
	}
	if err := s.videoRepo.UpdateClip(clip); err != nil {
		logger.Log.Error("update video clip", zap.Error(err))
		return nil, util.ErrPersistence
	}

	if req.Tags != nil {
		if err := s.validateTagLinks(req.Tags); err != nil {
			return nil, err
		}
		desired := make([]model.VideoTag, len(req.Tags))
		for i, t := range req.Tags {
			desired[i] = model.VideoTag{
				TagID:             t.TagID,
				IsCorrectDecision: t.IsCorrectDecision,
				DecisionOrder:     t.DecisionOrder,
			}
		}
		if err := s.videoRepo.ReplaceClipTags(id, desired); err != nil {
			logger.Log.Error("reconcile clip tags", zap.Error(err))
			return nil, util.ErrPersistence
		}
	}

	s.invalidateFilterCounts(context.Background())
	return s.videoRepo.FindClipByID(id)
}

func (s *VideoService) validateTagLinks(links []ClipTagRequest) error {
	if len(links) == 0 {
		return nil
	}
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.TagID
	}
	tags, err := s.tagRepo.FindTagsByIDs(ids)
	if err != nil {
		return util.ErrPersistence
	}
	known := make(map[string]bool, len(tags))
	for _, t := range tags {
		known[t.ID] = true
	}
	for _, l := range links {
		if !known[l.TagID] {
			return fmt.Errorf("unknown tag %s: %w", l.TagID, util.ErrValidation)
		}
	}
	return nil
}

func (s *VideoService) GetClip(id string) (*model.VideoClip, error) {
	clip, err := s.videoRepo.FindClipByID(id)
	if err != nil {
		return nil, util.ErrClipNotFound
	}
	return clip, nil
}

func (s *VideoService) ListClips(filter ClipFilter, page, limit int) ([]model.VideoClip, int64, error) {
	return s.videoRepo.FindClips(BuildClipScopes(filter), page, limit)
}

// RetireClip deactivates a clip; stored sessions keep referencing it.
func (s *VideoService) RetireClip(id string) error {
	if _, err := s.videoRepo.FindClipByID(id); err != nil {
		return util.ErrClipNotFound
	}
	if err := s.videoRepo.RetireClip(id); err != nil {
		return util.ErrPersistence
	}
	s.invalidateFilterCounts(context.Background())
	return nil
}

// DeleteClip removes the clip and its tag links; refused while a video test
// still pins the clip.
func (s *VideoService) DeleteClip(id string) error {
	if _, err := s.videoRepo.FindClipByID(id); err != nil {
		return util.ErrClipNotFound
	}
	usages, err := s.videoRepo.CountClipTestUsages(id)
	if err != nil {
		return util.ErrPersistence
	}
	if usages > 0 {
		return util.ErrConflict
	}
	if err := s.videoRepo.DeleteClip(id); err != nil {
		return util.ErrPersistence
	}
	s.invalidateFilterCounts(context.Background())
	return nil
}

// EligibleClip is the summary row shown in the admin picker when composing
// a video test.
type EligibleClip struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ThumbnailURL  string  `json:"thumbnailUrl"`
	Duration      float64 `json:"duration"`
	CategoryLabel string  `json:"categoryTagLabel"`
}

const defaultEligibleLimit = 500

// EligibleClips returns the total number of clips matching the filter plus
// summaries for the newest `limit` of them. The label aggregates the names of
// the clip's category-kind tags.
func (s *VideoService) EligibleClips(filter ClipFilter, limit int) ([]EligibleClip, int64, error) {
	if limit <= 0 {
		limit = defaultEligibleLimit
	}
	scopes := BuildClipScopes(filter)

	total, err := s.videoRepo.CountClips(scopes)
	if err != nil {
		return nil, 0, util.ErrPersistence
	}
	ids, err := s.videoRepo.FindClipIDs(scopes, limit)
	if err != nil {
		return nil, 0, util.ErrPersistence
	}
	if len(ids) == 0 {
		return []EligibleClip{}, total, nil
	}

	categoryKind, err := s.taxonomy.Resolve(model.TagCategoryCategory)
	if err != nil {
		return nil, 0, err
	}
	clips, err := s.videoRepo.FindClipsByIDs(ids)
	if err != nil {
		return nil, 0, util.ErrPersistence
	}
	byID := make(map[string]model.VideoClip, len(clips))
	for _, clip := range clips {
		byID[clip.ID] = clip
	}

	out := make([]EligibleClip, 0, len(ids))
	for _, id := range ids {
		clip, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, EligibleClip{
			ID:            clip.ID,
			Title:         clip.Title,
			ThumbnailURL:  clip.ThumbnailURL,
			Duration:      clip.Duration,
			CategoryLabel: categoryLabel(clip, categoryKind.ID),
		})
	}
	return out, total, nil
}

// categoryLabel joins the names of the clip's tags belonging to the given
// tag category, in their stored link order.
func categoryLabel(clip model.VideoClip, categoryID string) string {
	var names []string
	for _, vt := range clip.Tags {
		if vt.Tag == nil || vt.Tag.TagCategoryID != categoryID {
			continue
		}
		names = append(names, vt.Tag.Name)
	}
	return strings.Join(names, ", ")
}

// GroupTagSlugs buckets the given tag slugs by their tag-category slug,
// turning a flat query-string selection into filter groups. Unknown slugs
// are dropped.
func (s *VideoService) GroupTagSlugs(tagSlugs []string) (map[string][]string, error) {
	if len(tagSlugs) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.FindTagsBySlugs(tagSlugs)
	if err != nil {
		return nil, util.ErrPersistence
	}
	return GroupsFromTags(tags), nil
}

// --- filter counts ---

// GroupCounts maps tag id to matching-clip count for one dropdown.
type GroupCounts struct {
	CategorySlug string           `json:"categorySlug"`
	Counts       map[string]int64 `json:"counts"`
}

// FilterCounts computes per-tag clip counts for every active tag category.
// Each group's counts are taken with that group excluded from the filter so
// selecting a tag never zeroes out its own dropdown. Results are cached in
// redis keyed by the filter shape.
func (s *VideoService) FilterCounts(ctx context.Context, filter ClipFilter) ([]GroupCounts, error) {
	cacheKey := filterCountsKey(filter)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var out []GroupCounts
			if json.Unmarshal(cached, &out) == nil {
				return out, nil
			}
		}
	}

	categories, err := s.tagRepo.ListCategories(true)
	if err != nil {
		return nil, util.ErrPersistence
	}

	out := make([]GroupCounts, 0, len(categories))
	for _, tc := range categories {
		scopes := BuildClipScopes(filter.WithoutGroup(tc.Slug))
		counts, err := s.videoRepo.CountClipsPerTag(scopes)
		if err != nil {
			return nil, util.ErrPersistence
		}

		byTag := make(map[string]int64, len(counts))
		for _, c := range counts {
			byTag[c.TagID] = c.Count
		}
		group := GroupCounts{CategorySlug: tc.Slug, Counts: make(map[string]int64, len(tc.Tags))}
		for _, tag := range tc.Tags {
			group.Counts[tag.ID] = byTag[tag.ID]
		}
		out = append(out, group)
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, filterCountTTL).Err(); err != nil {
				logger.Log.Warn("cache filter counts", zap.Error(err))
			}
		}
	}
	return out, nil
}

func (s *VideoService) invalidateFilterCounts(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, "filtercounts:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Log.Warn("invalidate filter counts", zap.Error(err))
			return
		}
	}
}

func filterCountsKey(filter ClipFilter) string {
	type keyShape struct {
		Groups   map[string][]string
		Search   string
		Category string
		Law      int
		Var      *bool
		Featured *bool
		Edu      *bool
		Inactive bool
	}
	shape := keyShape{
		Groups:   filter.Groups,
		Search:   filter.Search,
		Category: filter.VideoCategoryID,
		Law:      filter.LawNumber,
		Var:      filter.VarRelevant,
		Featured: filter.IsFeatured,
		Edu:      filter.IsEducational,
		Inactive: filter.IncludeInactive,
	}
	for slug := range shape.Groups {
		sort.Strings(shape.Groups[slug])
	}
	payload, _ := json.Marshal(shape)
	sum := sha1.Sum(payload)
	return "filtercounts:" + hex.EncodeToString(sum[:])
}

func applyClipFields(clip *model.VideoClip, req ClipRequest) {
	if req.Description != nil {
		clip.Description = *req.Description
	}
	if req.ThumbnailURL != nil {
		clip.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Duration != nil {
		clip.Duration = *req.Duration
	}
	if req.TrimMeta != nil {
		clip.TrimMeta = req.TrimMeta
	}
	if req.LawNumbers != nil {
		clip.LawNumbers = model.IntList(util.ValidLawNumbers(req.LawNumbers))
	}
	if req.PlayOn != nil {
		clip.PlayOn = *req.PlayOn
	}
	if req.NoOffence != nil {
		clip.NoOffence = *req.NoOffence
	}
	if req.VarRelevant != nil {
		clip.VarRelevant = *req.VarRelevant
	}
	if req.IsActive != nil {
		clip.IsActive = *req.IsActive
	}
	if req.IsEducational != nil {
		clip.IsEducational = *req.IsEducational
	}
	if req.IsFeatured != nil {
		clip.IsFeatured = *req.IsFeatured
	}
	if req.VideoCategoryID != nil {
		if *req.VideoCategoryID == "" {
			clip.VideoCategoryID = nil
		} else {
			clip.VideoCategoryID = req.VideoCategoryID
		}
	}
}
