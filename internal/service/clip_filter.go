package service

import (
	"sort"

	"gorm.io/gorm"

	"referee_training_backend/internal/model"
)

// ClipFilter describes the library search surface. Each entry in Groups maps
// a tag-category slug to the tag slugs selected from that dropdown; groups
// combine with AND, slugs within one group with OR.
type ClipFilter struct {
	Groups          map[string][]string
	Search          string
	VideoCategoryID string
	LawNumber       int
	VarRelevant     *bool
	IsFeatured      *bool
	IsEducational   *bool
	// IncludeInactive widens the scope for admin listings; user-facing
	// queries always see active clips only.
	IncludeInactive bool
}

// WithoutGroup returns a copy of the filter with one tag group removed.
// Dropdown counts for a group are computed against the other groups only,
// otherwise picking a tag would zero out its siblings.
func (f ClipFilter) WithoutGroup(categorySlug string) ClipFilter {
	if _, ok := f.Groups[categorySlug]; !ok {
		return f
	}
	groups := make(map[string][]string, len(f.Groups))
	for slug, tags := range f.Groups {
		if slug == categorySlug {
			continue
		}
		groups[slug] = tags
	}
	f.Groups = groups
	return f
}

// BuildClipScopes turns a filter into gorm scopes over video_clips.
func BuildClipScopes(f ClipFilter) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if !f.IncludeInactive {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("video_clips.is_active = ?", true)
		})
	}

	for _, slugs := range sortedGroups(f.Groups) {
		slugs := slugs
		if len(slugs) == 0 {
			continue
		}
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"EXISTS (SELECT 1 FROM video_tags vt JOIN tags t ON t.id = vt.tag_id"+
					" WHERE vt.video_clip_id = video_clips.id AND t.is_active = ? AND t.slug IN ?)",
				true, slugs)
		})
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("video_clips.title LIKE ? OR video_clips.description LIKE ?", pattern, pattern)
		})
	}
	if f.VideoCategoryID != "" {
		id := f.VideoCategoryID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("video_clips.video_category_id = ?", id)
		})
	}
	if f.LawNumber > 0 {
		law := f.LawNumber
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("JSON_CONTAINS(video_clips.law_numbers, CAST(? AS JSON))", law)
		})
	}
	if f.VarRelevant != nil {
		v := *f.VarRelevant
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("video_clips.var_relevant = ?", v)
		})
	}
	if f.IsFeatured != nil {
		v := *f.IsFeatured
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("video_clips.is_featured = ?", v)
		})
	}
	if f.IsEducational != nil {
		v := *f.IsEducational
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("video_clips.is_educational = ?", v)
		})
	}

	return scopes
}

// sortedGroups walks the group map in a stable slug order so the generated
// SQL is deterministic across requests.
func sortedGroups(groups map[string][]string) [][]string {
	if len(groups) == 0 {
		return nil
	}
	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	out := make([][]string, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, groups[slug])
	}
	return out
}

// GroupsFromTags buckets loaded tags by their category slug, the inverse of
// the dropdown selection. Used when echoing an applied filter back.
func GroupsFromTags(tags []model.Tag) map[string][]string {
	groups := make(map[string][]string)
	for _, tag := range tags {
		if tag.Category == nil {
			continue
		}
		groups[tag.Category.Slug] = append(groups[tag.Category.Slug], tag.Slug)
	}
	return groups
}
