package service

import (
	"testing"

	"referee_training_backend/internal/model"
)

func TestBuildClipScopesComposition(t *testing.T) {
	boolPtr := func(v bool) *bool { return &v }

	cases := []struct {
		name   string
		filter ClipFilter
		want   int
	}{
		{"empty filter gates on active only", ClipFilter{}, 1},
		{"admin empty filter has no scopes", ClipFilter{IncludeInactive: true}, 0},
		{
			"one scope per tag group",
			ClipFilter{Groups: map[string][]string{
				"restarts": {"penalty-kick"},
				"sanction": {"yellow-card", "red-card"},
			}},
			3,
		},
		{
			"empty group contributes nothing",
			ClipFilter{Groups: map[string][]string{"restarts": {}}},
			1,
		},
		{
			"all dimensions",
			ClipFilter{
				Groups:          map[string][]string{"criteria": {"handball"}},
				Search:          "corner",
				VideoCategoryID: "vc1",
				LawNumber:       12,
				VarRelevant:     boolPtr(true),
				IsFeatured:      boolPtr(false),
				IsEducational:   boolPtr(true),
			},
			8,
		},
	}
	for _, c := range cases {
		if got := len(BuildClipScopes(c.filter)); got != c.want {
			t.Fatalf("%s: %d scopes, want %d", c.name, got, c.want)
		}
	}
}

func TestWithoutGroup(t *testing.T) {
	filter := ClipFilter{Groups: map[string][]string{
		"restarts": {"penalty-kick"},
		"sanction": {"yellow-card"},
	}}

	reduced := filter.WithoutGroup("restarts")
	if _, ok := reduced.Groups["restarts"]; ok {
		t.Fatal("restarts group should be gone")
	}
	if _, ok := reduced.Groups["sanction"]; !ok {
		t.Fatal("sanction group should survive")
	}
	// the original filter is untouched
	if len(filter.Groups) != 2 {
		t.Fatalf("original mutated: %d groups", len(filter.Groups))
	}

	same := filter.WithoutGroup("unknown")
	if len(same.Groups) != 2 {
		t.Fatalf("removing an absent group changed the filter: %d groups", len(same.Groups))
	}
}

func TestSortedGroupsDeterministic(t *testing.T) {
	groups := map[string][]string{
		"sanction": {"s"},
		"criteria": {"c"},
		"restarts": {"r"},
	}
	first := sortedGroups(groups)
	for trial := 0; trial < 10; trial++ {
		again := sortedGroups(groups)
		for i := range first {
			if first[i][0] != again[i][0] {
				t.Fatalf("group order unstable at %d", i)
			}
		}
	}
	if first[0][0] != "c" || first[1][0] != "r" || first[2][0] != "s" {
		t.Fatalf("groups not in slug order: %v", first)
	}
}

func TestGroupsFromTags(t *testing.T) {
	restarts := &model.TagCategory{Slug: "restarts"}
	sanction := &model.TagCategory{Slug: "sanction"}
	tags := []model.Tag{
		{Slug: "penalty-kick", Category: restarts},
		{Slug: "free-kick", Category: restarts},
		{Slug: "red-card", Category: sanction},
		{Slug: "orphan"}, // no category loaded
	}

	groups := GroupsFromTags(tags)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups["restarts"]) != 2 || len(groups["sanction"]) != 1 {
		t.Fatalf("unexpected bucketing: %v", groups)
	}
}
