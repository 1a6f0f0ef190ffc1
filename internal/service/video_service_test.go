package service

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/util"
)

func TestTranslateWriteErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"duplicate key", gorm.ErrDuplicatedKey, util.ErrDuplicateSlug},
		{"wrapped duplicate key", fmt.Errorf("save category: %w", gorm.ErrDuplicatedKey), util.ErrDuplicateSlug},
		{"other failure", gorm.ErrInvalidData, util.ErrPersistence},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translateWriteErr(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("translateWriteErr(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	categoryID := "tc-category"
	clip := model.VideoClip{
		Tags: []model.VideoTag{
			{TagID: "t1", Tag: &model.Tag{Name: "Penalty Area", TagCategoryID: categoryID}},
			{TagID: "t2", Tag: &model.Tag{Name: "Direct Free Kick", TagCategoryID: "tc-restarts"}},
			{TagID: "t3", Tag: &model.Tag{Name: "Handball", TagCategoryID: categoryID}},
			{TagID: "t4", Tag: nil},
		},
	}
	if got, want := categoryLabel(clip, categoryID), "Penalty Area, Handball"; got != want {
		t.Fatalf("categoryLabel = %q, want %q", got, want)
	}
	if got := categoryLabel(model.VideoClip{}, categoryID); got != "" {
		t.Fatalf("categoryLabel on untagged clip = %q, want empty", got)
	}
}
