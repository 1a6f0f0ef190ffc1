package service

import (
	"testing"

	"referee_training_backend/internal/model"
)

var testGroups = DecisionGroups{
	RestartsID: "tc-restarts",
	SanctionID: "tc-sanction",
	CriteriaID: "tc-criteria",
}

// decisionClip builds a clip whose correct decision is a direct free kick,
// a yellow card and two criteria tags.
func decisionClip() model.VideoClip {
	link := func(tagID, categoryID string) model.VideoTag {
		return model.VideoTag{
			TagID:             tagID,
			IsCorrectDecision: true,
			Tag:               &model.Tag{TagCategoryID: categoryID},
		}
	}
	clip := model.VideoClip{
		Tags: []model.VideoTag{
			link("dfk", testGroups.RestartsID),
			link("yc", testGroups.SanctionID),
			link("holding", testGroups.CriteriaID),
			link("careless", testGroups.CriteriaID),
			// a descriptive tag that is not part of the correct decision
			{TagID: "zone-pa", Tag: &model.Tag{TagCategoryID: testGroups.RestartsID}},
		},
	}
	return clip
}

func TestScoreClipAnswer(t *testing.T) {
	clip := decisionClip()

	cases := []struct {
		name    string
		entry   VideoAnswerEntry
		correct bool
		partial bool
	}{
		{
			"all three groups match",
			VideoAnswerEntry{RestartTagID: strPtr("dfk"), SanctionTagID: strPtr("yc"), CriteriaTagIDs: []string{"careless", "holding"}},
			true, false,
		},
		{
			"criteria order does not matter",
			VideoAnswerEntry{RestartTagID: strPtr("dfk"), SanctionTagID: strPtr("yc"), CriteriaTagIDs: []string{"holding", "careless"}},
			true, false,
		},
		{
			"two groups match",
			VideoAnswerEntry{RestartTagID: strPtr("dfk"), SanctionTagID: strPtr("yc"), CriteriaTagIDs: []string{"holding"}},
			false, true,
		},
		{
			"one group matches",
			VideoAnswerEntry{RestartTagID: strPtr("ifk"), SanctionTagID: strPtr("yc"), CriteriaTagIDs: nil},
			false, true,
		},
		{
			"nothing matches",
			VideoAnswerEntry{RestartTagID: strPtr("ifk"), SanctionTagID: strPtr("rc"), CriteriaTagIDs: []string{"reckless"}},
			false, false,
		},
		{
			"missing sanction answer does not match",
			VideoAnswerEntry{RestartTagID: strPtr("dfk"), CriteriaTagIDs: []string{"careless", "holding"}},
			false, true,
		},
		{
			"extra criteria tag breaks the set match",
			VideoAnswerEntry{RestartTagID: strPtr("dfk"), SanctionTagID: strPtr("yc"), CriteriaTagIDs: []string{"careless", "holding", "reckless"}},
			false, true,
		},
		{
			"play-on call on an offence clip fails outright",
			VideoAnswerEntry{PlayOnNoOffence: true, RestartTagID: strPtr("dfk"), SanctionTagID: strPtr("yc")},
			false, false,
		},
	}
	for _, c := range cases {
		correct, partial := ScoreClipAnswer(clip, c.entry, testGroups)
		if correct != c.correct || partial != c.partial {
			t.Fatalf("%s: got correct=%v partial=%v, want correct=%v partial=%v",
				c.name, correct, partial, c.correct, c.partial)
		}
	}
}

func TestScoreClipAnswerPlayOnClip(t *testing.T) {
	clip := model.VideoClip{PlayOn: true}

	correct, partial := ScoreClipAnswer(clip, VideoAnswerEntry{PlayOnNoOffence: true}, testGroups)
	if !correct || partial {
		t.Fatalf("play-on call on play-on clip: correct=%v partial=%v", correct, partial)
	}

	// choosing decisions on a play-on clip is simply wrong, never partial
	correct, partial = ScoreClipAnswer(clip, VideoAnswerEntry{RestartTagID: strPtr("dfk")}, testGroups)
	if correct || partial {
		t.Fatalf("decision call on play-on clip: correct=%v partial=%v", correct, partial)
	}
}

func TestScoreClipAnswerNoOffenceClip(t *testing.T) {
	clip := model.VideoClip{NoOffence: true}
	correct, partial := ScoreClipAnswer(clip, VideoAnswerEntry{PlayOnNoOffence: true}, testGroups)
	if !correct || partial {
		t.Fatalf("no-offence call: correct=%v partial=%v", correct, partial)
	}
}

func TestScoreClipAnswerNoCriteriaClip(t *testing.T) {
	// a clip whose correct decision has restart and sanction but no criteria
	clip := model.VideoClip{
		Tags: []model.VideoTag{
			{TagID: "dfk", IsCorrectDecision: true, Tag: &model.Tag{TagCategoryID: testGroups.RestartsID}},
			{TagID: "yc", IsCorrectDecision: true, Tag: &model.Tag{TagCategoryID: testGroups.SanctionID}},
		},
	}
	correct, partial := ScoreClipAnswer(clip, VideoAnswerEntry{RestartTagID: strPtr("dfk"), SanctionTagID: strPtr("yc")}, testGroups)
	if !correct || partial {
		t.Fatalf("empty criteria sets should match: correct=%v partial=%v", correct, partial)
	}
}

func TestDecisionsForIgnoresUnknownGroups(t *testing.T) {
	clip := model.VideoClip{
		Tags: []model.VideoTag{
			{TagID: "dfk", IsCorrectDecision: true, Tag: &model.Tag{TagCategoryID: testGroups.RestartsID}},
			// tags of a custom category never enter the judged groups
			{TagID: "angle", IsCorrectDecision: true, Tag: &model.Tag{TagCategoryID: "tc-camera"}},
			{TagID: "orphan", IsCorrectDecision: true},
		},
	}
	d := decisionsFor(clip, testGroups)
	if d.restartID == nil || *d.restartID != "dfk" {
		t.Fatalf("restart decision not classified: %+v", d)
	}
	if d.sanctionID != nil || len(d.criteriaID) != 0 {
		t.Fatalf("unknown-group tags leaked into decisions: %+v", d)
	}
}
