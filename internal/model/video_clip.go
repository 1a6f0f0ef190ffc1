package model

import "gorm.io/datatypes"

// swagger:model VideoCategory
type VideoCategory struct {
	UUIDBase
	Name         string `gorm:"size:255;not null" json:"name"`
	Slug         string `gorm:"size:255;uniqueIndex" json:"slug"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}

func (VideoCategory) TableName() string {
	return "video_categories"
}

// VideoClip references a stored media asset plus the decision metadata used
// for video tests. PlayOn/NoOffence clips have no correct restart or sanction.
// swagger:model VideoClip
type VideoClip struct {
	UUIDBase
	Title           string         `gorm:"size:255;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	FileURL         string         `gorm:"size:512;not null" json:"fileUrl"`
	ThumbnailURL    string         `gorm:"size:512" json:"thumbnailUrl"`
	Duration        float64        `gorm:"default:0" json:"duration"`
	TrimMeta        datatypes.JSON `gorm:"type:json" json:"trimMeta,omitempty"`
	LawNumbers      IntList        `gorm:"type:json" json:"lawNumbers"`
	PlayOn          bool           `gorm:"default:false" json:"playOn"`
	NoOffence       bool           `gorm:"default:false" json:"noOffence"`
	VarRelevant     bool           `gorm:"default:false" json:"varRelevant"`
	IsActive        bool           `gorm:"default:true" json:"isActive"`
	IsEducational   bool           `gorm:"default:false" json:"isEducational"`
	IsFeatured      bool           `gorm:"default:false" json:"isFeatured"`
	VideoCategoryID *string        `gorm:"index;type:varchar(36)" json:"videoCategoryId"`
	VideoCategory   *VideoCategory `gorm:"foreignKey:VideoCategoryID" json:"videoCategory,omitempty"`
	Tags            []VideoTag     `gorm:"foreignKey:VideoClipID" json:"tags,omitempty"`
}

func (VideoClip) TableName() string {
	return "video_clips"
}

// VideoTag joins a clip to a tag and carries per-relationship decision data.
// swagger:model VideoTag
type VideoTag struct {
	UUIDBase
	VideoClipID       string `gorm:"uniqueIndex:idx_clip_tag;type:varchar(36);not null" json:"videoClipId"`
	TagID             string `gorm:"uniqueIndex:idx_clip_tag;type:varchar(36);not null" json:"tagId"`
	Tag               *Tag   `gorm:"foreignKey:TagID" json:"tag,omitempty"`
	IsCorrectDecision bool   `gorm:"default:false" json:"isCorrectDecision"`
	DecisionOrder     int    `gorm:"default:0" json:"decisionOrder"`
}

func (VideoTag) TableName() string {
	return "video_tags"
}
