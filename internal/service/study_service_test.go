package service

import (
	"reflect"
	"testing"
	"time"

	"referee_training_backend/internal/model"
)

func studyQuestionFixture(id string, laws ...int) model.Question {
	q := model.Question{
		Text:        "text " + id,
		Explanation: "explanation " + id,
		LawNumbers:  model.IntList(laws),
	}
	q.ID = id
	return q
}

func TestAnnotateStudyQuestions(t *testing.T) {
	readAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	questions := []model.Question{
		studyQuestionFixture("q1", 11),
		studyQuestionFixture("q2", 12),
		studyQuestionFixture("q3", 12, 14),
	}
	progress := []model.StudyProgress{
		{UserID: "u1", QuestionID: "q1", IsRead: true, ReadAt: &readAt},
		{UserID: "u1", QuestionID: "q3", IsRead: false},
	}

	got := annotateStudyQuestions(questions, progress, []string{"q2"})
	if len(got) != 3 {
		t.Fatalf("annotated %d questions, want 3", len(got))
	}
	if !got[0].IsRead || got[0].ReadAt == nil || !got[0].ReadAt.Equal(readAt) {
		t.Fatalf("q1 markers = %+v, want read at %v", got[0], readAt)
	}
	if got[0].IsStarred {
		t.Fatalf("q1 should not be starred")
	}
	if got[1].IsRead || !got[1].IsStarred {
		t.Fatalf("q2 markers = %+v, want unread and starred", got[1])
	}
	// A reset marker row counts as unread.
	if got[2].IsRead || got[2].ReadAt != nil {
		t.Fatalf("q3 markers = %+v, want unread with no timestamp", got[2])
	}
}

func TestFilterByReadStatus(t *testing.T) {
	questions := []StudyQuestion{
		{ID: "q1", IsRead: true},
		{ID: "q2"},
		{ID: "q3", IsRead: true},
	}
	cases := []struct {
		status string
		want   []string
	}{
		{ReadStatusRead, []string{"q1", "q3"}},
		{ReadStatusUnread, []string{"q2"}},
		{ReadStatusAll, []string{"q1", "q2", "q3"}},
		{"", []string{"q1", "q2", "q3"}},
		{"bogus", []string{"q1", "q2", "q3"}},
	}
	for _, tc := range cases {
		got := filterByReadStatus(questions, tc.status)
		ids := make([]string, len(got))
		for i, q := range got {
			ids[i] = q.ID
		}
		if !reflect.DeepEqual(ids, tc.want) {
			t.Fatalf("filterByReadStatus(%q) = %v, want %v", tc.status, ids, tc.want)
		}
	}
}

func TestDistinctLaws(t *testing.T) {
	lists := []model.IntList{{14, 12}, {12}, nil, {5, 14, 11}}
	want := []int{5, 11, 12, 14}
	if got := distinctLaws(lists); !reflect.DeepEqual(got, want) {
		t.Fatalf("distinctLaws = %v, want %v", got, want)
	}
	if got := distinctLaws(nil); len(got) != 0 {
		t.Fatalf("distinctLaws(nil) = %v, want empty", got)
	}
}

func TestStudyFilter(t *testing.T) {
	f := studyFilter([]int{3, 0, 42, 12}, false)
	if f.Type != model.QuestionLOTGText {
		t.Fatalf("type = %q, want %q", f.Type, model.QuestionLOTGText)
	}
	if !f.IncludeIfab || !f.IncludeCustom {
		t.Fatalf("study pool must span both question sources: %+v", f)
	}
	if f.IncludeVar {
		t.Fatalf("var questions must stay out unless asked for")
	}
	if want := []int{3, 12}; !reflect.DeepEqual(f.LawNumbers, want) {
		t.Fatalf("law numbers = %v, want %v", f.LawNumbers, want)
	}
}
