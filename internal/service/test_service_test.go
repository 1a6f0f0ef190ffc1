package service

import (
	"testing"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/util"
)

func intPtr(v int) *int       { return &v }
func boolP(v bool) *bool      { return &v }
func strPtr(v string) *string { return &v }

func TestResolvePlanDefaults(t *testing.T) {
	plan := ResolvePlan(StartSessionRequest{}, nil)
	if plan.total != util.DefaultSessionQuestions {
		t.Fatalf("total = %d, want %d", plan.total, util.DefaultSessionQuestions)
	}
	if !plan.includeIfab {
		t.Fatal("ifab questions should be included by default")
	}
	if plan.includeVar || plan.includeCust {
		t.Fatal("var and custom pools are opt-in")
	}
	if plan.mandatoryID != nil {
		t.Fatal("free session should carry no template id")
	}
}

func TestResolvePlanTemplateOverlay(t *testing.T) {
	template := &model.MandatoryTest{
		CategoryID:     "cat1",
		TotalQuestions: 25,
		IncludeIfab:    false,
		IncludeCustom:  true,
		LawNumbers:     model.IntList{11, 12},
		QuestionIDs:    model.StringList{"q1", "q2"},
	}
	template.ID = "mt1"

	plan := ResolvePlan(StartSessionRequest{}, template)
	if plan.categoryID != "cat1" || plan.total != 25 {
		t.Fatalf("template fields not applied: %+v", plan)
	}
	if plan.includeIfab || !plan.includeCust {
		t.Fatalf("template include flags not applied: %+v", plan)
	}
	if len(plan.lawNumbers) != 2 || len(plan.explicitIDs) != 2 {
		t.Fatalf("template selection lists not applied: %+v", plan)
	}
	if plan.mandatoryID == nil || *plan.mandatoryID != "mt1" {
		t.Fatal("template id not carried")
	}
}

func TestResolvePlanRequestWinsOverTemplate(t *testing.T) {
	template := &model.MandatoryTest{
		TotalQuestions: 25,
		IncludeIfab:    false,
		LawNumbers:     model.IntList{11},
		QuestionIDs:    model.StringList{"q1"},
	}
	req := StartSessionRequest{
		TotalQuestions: intPtr(5),
		IncludeIfab:    boolP(true),
		IncludeVar:     boolP(true),
		LawNumbers:     []int{14},
		QuestionIDs:    []string{"q9"},
	}

	plan := ResolvePlan(req, template)
	if plan.total != 5 {
		t.Fatalf("total = %d, want request value 5", plan.total)
	}
	if !plan.includeIfab || !plan.includeVar {
		t.Fatalf("request include flags should win: %+v", plan)
	}
	if len(plan.lawNumbers) != 1 || plan.lawNumbers[0] != 14 {
		t.Fatalf("request law numbers should win: %v", plan.lawNumbers)
	}
	if len(plan.explicitIDs) != 1 || plan.explicitIDs[0] != "q9" {
		t.Fatalf("request question ids should win: %v", plan.explicitIDs)
	}
}

func TestResolvePlanDropsInvalidLaws(t *testing.T) {
	plan := ResolvePlan(StartSessionRequest{LawNumbers: []int{0, 3, 42}}, nil)
	if len(plan.lawNumbers) != 1 || plan.lawNumbers[0] != 3 {
		t.Fatalf("law numbers = %v, want [3]", plan.lawNumbers)
	}
}

func TestGradeEntries(t *testing.T) {
	questions := []model.Question{
		{Options: []model.AnswerOption{
			{IsCorrect: true},
			{IsCorrect: false},
		}},
		{Options: []model.AnswerOption{
			{IsCorrect: false},
			{IsCorrect: true},
		}},
	}
	questions[0].ID = "q1"
	questions[0].Options[0].ID = "q1a"
	questions[0].Options[1].ID = "q1b"
	questions[1].ID = "q2"
	questions[1].Options[0].ID = "q2a"
	questions[1].Options[1].ID = "q2b"

	entries := []AnswerEntry{
		{QuestionID: "q1", OptionID: "q1a"}, // correct
		{QuestionID: "q2", OptionID: "q2a"}, // wrong
		{QuestionID: "q3", OptionID: "x"},   // unknown question
		{QuestionID: "q2", OptionID: "q1b"}, // option from another question
	}

	graded := GradeEntries("s1", entries, questions)
	if len(graded) != 2 {
		t.Fatalf("graded %d entries, want 2", len(graded))
	}
	if !graded[0].IsCorrect || graded[0].QuestionID != "q1" {
		t.Fatalf("first entry misgraded: %+v", graded[0])
	}
	if graded[1].IsCorrect || graded[1].QuestionID != "q2" {
		t.Fatalf("second entry misgraded: %+v", graded[1])
	}
	for _, g := range graded {
		if g.TestSessionID != "s1" {
			t.Fatalf("session id not stamped: %+v", g)
		}
	}
}

func TestGradeEntriesEmpty(t *testing.T) {
	if got := GradeEntries("s1", nil, nil); len(got) != 0 {
		t.Fatalf("expected no graded entries, got %d", len(got))
	}
}
