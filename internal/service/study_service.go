package service

import (
	"sort"
	"time"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
)

// StudyService backs the self-paced reading mode: browsing law questions,
// tracking read markers and starring questions for later review.
type StudyService struct {
	studyRepo    *repository.StudyRepository
	questionRepo *repository.QuestionRepository
}

func NewStudyService(studyRepo *repository.StudyRepository, questionRepo *repository.QuestionRepository) *StudyService {
	return &StudyService{studyRepo: studyRepo, questionRepo: questionRepo}
}

// Read-status filter values accepted by ListQuestions.
const (
	ReadStatusAll    = "all"
	ReadStatusRead   = "read"
	ReadStatusUnread = "unread"
)

// StudyQuestion is the reading-mode projection of a question: text and
// explanation with the caller's own markers, no answer options.
type StudyQuestion struct {
	ID          string        `json:"id"`
	Text        string        `json:"text"`
	Explanation string        `json:"explanation"`
	LawNumbers  model.IntList `json:"lawNumbers"`
	CreatedAt   time.Time     `json:"createdAt"`
	IsRead      bool          `json:"isRead"`
	ReadAt      *time.Time    `json:"readAt"`
	IsStarred   bool          `json:"isStarred"`
}

// StudyListRequest narrows the reading pool.
type StudyListRequest struct {
	LawNumbers []int
	IncludeVar bool
	ReadStatus string
}

func studyFilter(lawNumbers []int, includeVar bool) repository.EligibleFilter {
	return repository.EligibleFilter{
		Type:          model.QuestionLOTGText,
		IncludeVar:    includeVar,
		IncludeIfab:   true,
		IncludeCustom: true,
		LawNumbers:    util.ValidLawNumbers(lawNumbers),
	}
}

// MarkRead stamps the question read for the user; rereading refreshes the
// timestamp.
func (s *StudyService) MarkRead(userID, questionID string) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		return util.ErrNotFound
	}
	now := time.Now()
	progress := &model.StudyProgress{
		UserID:     userID,
		QuestionID: questionID,
		IsRead:     true,
		ReadAt:     &now,
	}
	if err := s.studyRepo.UpsertProgress(progress); err != nil {
		return util.ErrPersistence
	}
	return nil
}

// ResetProgress flips every question back to unread for the user.
func (s *StudyService) ResetProgress(userID string) error {
	if err := s.studyRepo.ResetProgress(userID); err != nil {
		return util.ErrPersistence
	}
	return nil
}

// Favorites lists the user's starred question ids, newest star first.
func (s *StudyService) Favorites(userID string) ([]string, error) {
	ids, err := s.studyRepo.FindFavoriteQuestionIDs(userID)
	if err != nil {
		return nil, util.ErrPersistence
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *StudyService) AddFavorite(userID, questionID string) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		return util.ErrNotFound
	}
	fav := &model.QuestionFavorite{UserID: userID, QuestionID: questionID}
	if err := s.studyRepo.UpsertFavorite(fav); err != nil {
		return util.ErrPersistence
	}
	return nil
}

func (s *StudyService) RemoveFavorite(userID, questionID string) error {
	if err := s.studyRepo.DeleteFavorite(userID, questionID); err != nil {
		return util.ErrPersistence
	}
	return nil
}

// LawNumbers returns the distinct law numbers covered by the reading pool,
// ascending. VAR questions are left out unless asked for.
func (s *StudyService) LawNumbers(includeVar bool) ([]int, error) {
	lists, err := s.questionRepo.StudyLawNumbers(studyFilter(nil, includeVar))
	if err != nil {
		return nil, util.ErrPersistence
	}
	return distinctLaws(lists), nil
}

// ListQuestions returns the reading pool, oldest first, annotated with the
// user's read markers and stars, then narrowed by the read-status filter.
func (s *StudyService) ListQuestions(userID string, req StudyListRequest) ([]StudyQuestion, int64, error) {
	questions, err := s.questionRepo.FindForStudy(studyFilter(req.LawNumbers, req.IncludeVar))
	if err != nil {
		return nil, 0, util.ErrPersistence
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	progress, err := s.studyRepo.FindProgress(userID, ids)
	if err != nil {
		return nil, 0, util.ErrPersistence
	}
	starred, err := s.studyRepo.FindFavoritesAmong(userID, ids)
	if err != nil {
		return nil, 0, util.ErrPersistence
	}

	annotated := annotateStudyQuestions(questions, progress, starred)
	filtered := filterByReadStatus(annotated, req.ReadStatus)
	return filtered, int64(len(filtered)), nil
}

func annotateStudyQuestions(questions []model.Question, progress []model.StudyProgress, starredIDs []string) []StudyQuestion {
	readBy := make(map[string]model.StudyProgress, len(progress))
	for _, p := range progress {
		readBy[p.QuestionID] = p
	}
	starred := make(map[string]bool, len(starredIDs))
	for _, id := range starredIDs {
		starred[id] = true
	}

	out := make([]StudyQuestion, len(questions))
	for i, q := range questions {
		sq := StudyQuestion{
			ID:          q.ID,
			Text:        q.Text,
			Explanation: q.Explanation,
			LawNumbers:  q.LawNumbers,
			CreatedAt:   q.CreatedAt,
			IsStarred:   starred[q.ID],
		}
		if p, ok := readBy[q.ID]; ok && p.IsRead {
			sq.IsRead = true
			sq.ReadAt = p.ReadAt
		}
		out[i] = sq
	}
	return out
}

func filterByReadStatus(questions []StudyQuestion, status string) []StudyQuestion {
	switch status {
	case ReadStatusRead, ReadStatusUnread:
	default:
		return questions
	}
	wantRead := status == ReadStatusRead
	out := make([]StudyQuestion, 0, len(questions))
	for _, q := range questions {
		if q.IsRead == wantRead {
			out = append(out, q)
		}
	}
	return out
}

func distinctLaws(lists []model.IntList) []int {
	seen := make(map[int]bool)
	for _, list := range lists {
		for _, n := range list {
			seen[n] = true
		}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
