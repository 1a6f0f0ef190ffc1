package service

import (
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
	"referee_training_backend/pkg/logger"
	"referee_training_backend/pkg/monitoring"
)

// VideoTestService manages clip-based decision tests: templates, sessions,
// answer scoring against the correct-decision tags and completions.
type VideoTestService struct {
	videoTestRepo *repository.VideoTestRepository
	videoRepo     *repository.VideoRepository
	taxonomy      *TaxonomyService

	newRng func() *rand.Rand
}

func NewVideoTestService(videoTestRepo *repository.VideoTestRepository, videoRepo *repository.VideoRepository, taxonomy *TaxonomyService) *VideoTestService {
	return &VideoTestService{
		videoTestRepo: videoTestRepo,
		videoRepo:     videoRepo,
		taxonomy:      taxonomy,
		newRng: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// --- scoring core ---

// VideoAnswerEntry is the caller's decision for one clip.
type VideoAnswerEntry struct {
	ClipID          string   `json:"clipId"`
	PlayOnNoOffence bool     `json:"playOnNoOffence"`
	RestartTagID    *string  `json:"restartTagId"`
	SanctionTagID   *string  `json:"sanctionTagId"`
	CriteriaTagIDs  []string `json:"criteriaTagIds"`
}

// DecisionGroups holds the resolved tag-category ids the scorer classifies
// correct-decision tags against.
type DecisionGroups struct {
	RestartsID string
	SanctionID string
	CriteriaID string
}

// decisionGroups resolves the three judged categories through the cached
// taxonomy; the rows are seeded at startup so a miss is a deployment error.
func (s *VideoTestService) decisionGroups() (DecisionGroups, error) {
	var groups DecisionGroups
	for _, bind := range []struct {
		kind string
		dst  *string
	}{
		{model.TagCategoryRestarts, &groups.RestartsID},
		{model.TagCategorySanction, &groups.SanctionID},
		{model.TagCategoryCriteria, &groups.CriteriaID},
	} {
		tc, err := s.taxonomy.Resolve(bind.kind)
		if err != nil {
			return DecisionGroups{}, err
		}
		*bind.dst = tc.ID
	}
	return groups, nil
}

// correctDecisions splits the clip's correct-decision tags into the three
// judged groups.
type correctDecisions struct {
	restartID  *string
	sanctionID *string
	criteriaID map[string]bool
}

func decisionsFor(clip model.VideoClip, groups DecisionGroups) correctDecisions {
	d := correctDecisions{criteriaID: make(map[string]bool)}
	for _, vt := range clip.Tags {
		if !vt.IsCorrectDecision || vt.Tag == nil {
			continue
		}
		tagID := vt.TagID
		switch vt.Tag.TagCategoryID {
		case groups.RestartsID:
			d.restartID = &tagID
		case groups.SanctionID:
			d.sanctionID = &tagID
		case groups.CriteriaID:
			d.criteriaID[tagID] = true
		}
	}
	return d
}

// ScoreClipAnswer judges one answer against the clip's correct decisions.
// A play-on or no-offence clip is judged on that single call alone. For
// everything else the restart, sanction and criteria groups are compared
// independently: all three matching is correct, one or two is partial.
func ScoreClipAnswer(clip model.VideoClip, entry VideoAnswerEntry, groups DecisionGroups) (correct, partial bool) {
	if clip.PlayOn || clip.NoOffence {
		return entry.PlayOnNoOffence, false
	}
	if entry.PlayOnNoOffence {
		return false, false
	}

	d := decisionsFor(clip, groups)
	matches := 0
	if tagIDEqual(entry.RestartTagID, d.restartID) {
		matches++
	}
	if tagIDEqual(entry.SanctionTagID, d.sanctionID) {
		matches++
	}
	if criteriaEqual(entry.CriteriaTagIDs, d.criteriaID) {
		matches++
	}

	switch {
	case matches == 3:
		return true, false
	case matches > 0:
		return false, true
	default:
		return false, false
	}
}

func tagIDEqual(got, want *string) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return *got == *want
}

func criteriaEqual(got []string, want map[string]bool) bool {
	seen := make(map[string]bool, len(got))
	for _, id := range got {
		if !want[id] {
			return false
		}
		seen[id] = true
	}
	return len(seen) == len(want)
}

// --- templates ---

// VideoTestRequest is the admin create/update payload. ClipIDs keep their
// order.
type VideoTestRequest struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	Type         model.VideoTestType `json:"type"`
	PassingScore *int                `json:"passingScore"`
	DueDate      *time.Time          `json:"dueDate"`
	IsActive     *bool               `json:"isActive"`
	ClipIDs      []string            `json:"clipIds"`
}

func (s *VideoTestService) CreateTest(createdByID string, req VideoTestRequest) (*model.VideoTest, error) {
	if len(req.ClipIDs) == 0 {
		return nil, util.ErrVideoTestNoClips
	}
	clips, err := s.videoRepo.FindClipsByIDs(req.ClipIDs)
	if err != nil {
		return nil, util.ErrPersistence
	}
	if len(clips) != len(req.ClipIDs) {
		return nil, util.ErrClipNotFound
	}

	testType := req.Type
	if testType == "" {
		testType = model.VideoTestPublic
	}
	vt := &model.VideoTest{
		Title:        req.Title,
		Description:  req.Description,
		Type:         testType,
		PassingScore: req.PassingScore,
		DueDate:      req.DueDate,
		IsActive:     true,
		CreatedByID:  createdByID,
	}
	if req.IsActive != nil {
		vt.IsActive = *req.IsActive
	}

	links := make([]model.VideoTestClip, len(req.ClipIDs))
	for i, clipID := range req.ClipIDs {
		links[i] = model.VideoTestClip{VideoClipID: clipID, Order: i}
	}
	if err := s.videoTestRepo.CreateTest(vt, links); err != nil {
		logger.Log.Error("create video test", zap.Error(err))
		return nil, util.ErrPersistence
	}
	return vt, nil
}

func (s *VideoTestService) UpdateTest(id string, req VideoTestRequest) (*model.VideoTest, error) {
	vt, err := s.videoTestRepo.FindTestByID(id)
	if err != nil {
		return nil, util.ErrTestNotFound
	}

	vt.Title = req.Title
	vt.Description = req.Description
	if req.Type != "" {
		vt.Type = req.Type
	}
	vt.PassingScore = req.PassingScore
	vt.DueDate = req.DueDate
	if req.IsActive != nil {
		vt.IsActive = *req.IsActive
	}
	if err := s.videoTestRepo.UpdateTest(vt); err != nil {
		return nil, util.ErrPersistence
	}

	if len(req.ClipIDs) > 0 {
		clips, err := s.videoRepo.FindClipsByIDs(req.ClipIDs)
		if err != nil {
			return nil, util.ErrPersistence
		}
		if len(clips) != len(req.ClipIDs) {
			return nil, util.ErrClipNotFound
		}
		links := make([]model.VideoTestClip, len(req.ClipIDs))
		for i, clipID := range req.ClipIDs {
			links[i] = model.VideoTestClip{VideoClipID: clipID, Order: i}
		}
		if err := s.videoTestRepo.ReplaceTestClips(id, links); err != nil {
			return nil, util.ErrPersistence
		}
	}
	return s.videoTestRepo.FindTestByID(id)
}

func (s *VideoTestService) DeleteTest(id string) error {
	if _, err := s.videoTestRepo.FindTestByID(id); err != nil {
		return util.ErrTestNotFound
	}
	sessions, err := s.videoTestRepo.CountTestSessions(id)
	if err != nil {
		return util.ErrPersistence
	}
	if sessions > 0 {
		return util.ErrConflict
	}
	return s.videoTestRepo.DeleteTest(id)
}

func (s *VideoTestService) GetTest(id string) (*model.VideoTest, error) {
	vt, err := s.videoTestRepo.FindTestByID(id)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	return vt, nil
}

// VideoTestView pairs a template with the caller's completion, if any.
type VideoTestView struct {
	model.VideoTest
	Completion *model.VideoTestCompletion `json:"completion,omitempty"`
}

func (s *VideoTestService) ListTestsForUser(userID string, testType model.VideoTestType) ([]VideoTestView, error) {
	tests, err := s.videoTestRepo.ListTests(testType, true)
	if err != nil {
		return nil, util.ErrPersistence
	}
	completions, err := s.videoTestRepo.FindCompletionsForUser(userID)
	if err != nil {
		return nil, util.ErrPersistence
	}

	byTest := make(map[string]model.VideoTestCompletion, len(completions))
	for _, c := range completions {
		byTest[c.VideoTestID] = c
	}

	views := make([]VideoTestView, 0, len(tests))
	for _, t := range tests {
		view := VideoTestView{VideoTest: t}
		if c, ok := byTest[t.ID]; ok {
			completion := c
			view.Completion = &completion
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *VideoTestService) ListTests(testType model.VideoTestType, activeOnly bool) ([]model.VideoTest, error) {
	return s.videoTestRepo.ListTests(testType, activeOnly)
}

// --- sessions ---

// StartSession instantiates a session over the template's clips in a fresh
// shuffled order.
func (s *VideoTestService) StartSession(userID, testID string) (*model.VideoTestSession, error) {
	vt, err := s.videoTestRepo.FindTestByID(testID)
	if err != nil || !vt.IsActive {
		return nil, util.ErrTestNotFound
	}

	clipIDs := make([]string, 0, len(vt.Clips))
	for _, link := range vt.Clips {
		if link.VideoClip != nil && !link.VideoClip.IsActive {
			continue
		}
		clipIDs = append(clipIDs, link.VideoClipID)
	}
	if len(clipIDs) == 0 {
		return nil, util.ErrVideoTestNoClips
	}

	session := &model.VideoTestSession{
		UserID:      userID,
		VideoTestID: testID,
		ClipIDs:     model.StringList(util.Shuffle(clipIDs, s.newRng())),
		TotalClips:  len(clipIDs),
	}
	if err := s.videoTestRepo.CreateSession(session); err != nil {
		logger.Log.Error("create video test session", zap.Error(err))
		return nil, util.ErrPersistence
	}
	monitoring.SessionsStarted.WithLabelValues("video").Inc()
	return session, nil
}

// SessionClips returns the session's clips in stored order.
func (s *VideoTestService) SessionClips(userID, sessionID string) (*model.VideoTestSession, []model.VideoClip, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	clips, err := s.videoRepo.FindClipsByIDs([]string(session.ClipIDs))
	if err != nil {
		return nil, nil, util.ErrPersistence
	}

	byID := make(map[string]model.VideoClip, len(clips))
	for _, clip := range clips {
		byID[clip.ID] = clip
	}
	ordered := make([]model.VideoClip, 0, len(session.ClipIDs))
	for _, id := range session.ClipIDs {
		if clip, ok := byID[id]; ok {
			ordered = append(ordered, clip)
		}
	}
	return session, ordered, nil
}

// VideoSubmitResult is the outcome of a video batch submission.
type VideoSubmitResult struct {
	Score       int       `json:"score"`
	Partial     int       `json:"partial"`
	Total       int       `json:"total"`
	Recorded    int       `json:"recorded"`
	Skipped     int       `json:"skipped"`
	CompletedAt time.Time `json:"completedAt"`
	Passed      *bool     `json:"passed,omitempty"`
}

// SubmitAnswers scores a batch of clip decisions, upserts the answer rows
// and stamps session completion. Entries addressing clips outside the
// session are skipped.
func (s *VideoTestService) SubmitAnswers(userID, sessionID string, entries []VideoAnswerEntry) (*VideoSubmitResult, error) {
	if len(entries) == 0 {
		return nil, util.ErrValidation
	}
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	clips, err := s.videoRepo.FindClipsByIDs([]string(session.ClipIDs))
	if err != nil {
		return nil, util.ErrPersistence
	}
	byID := make(map[string]model.VideoClip, len(clips))
	for _, clip := range clips {
		byID[clip.ID] = clip
	}

	groups, err := s.decisionGroups()
	if err != nil {
		return nil, err
	}

	recorded, skipped := 0, 0
	for _, entry := range entries {
		clip, ok := byID[entry.ClipID]
		if !ok {
			skipped++
			continue
		}
		correct, isPartial := ScoreClipAnswer(clip, entry, groups)
		answer := &model.VideoTestAnswer{
			VideoTestSessionID: sessionID,
			VideoClipID:        entry.ClipID,
			PlayOnNoOffence:    entry.PlayOnNoOffence,
			RestartTagID:       entry.RestartTagID,
			SanctionTagID:      entry.SanctionTagID,
			CriteriaTagIDs:     model.StringList(entry.CriteriaTagIDs),
			IsCorrect:          correct,
			IsPartial:          isPartial,
		}
		if err := s.videoTestRepo.UpsertAnswer(answer); err != nil {
			logger.Log.Error("upsert video answer", zap.Error(err), zap.String("clipId", entry.ClipID))
			return nil, util.ErrPersistence
		}
		monitoring.AnswersRecorded.WithLabelValues("video", strconv.FormatBool(correct)).Inc()
		recorded++
	}

	answers, err := s.videoTestRepo.FindAnswers(sessionID)
	if err != nil {
		return nil, util.ErrPersistence
	}
	score, partialCount := 0, 0
	for _, a := range answers {
		if a.IsCorrect {
			score++
		} else if a.IsPartial {
			partialCount++
		}
	}

	completedAt := time.Now()
	if err := s.videoTestRepo.UpdateSessionSummary(sessionID, score, &completedAt); err != nil {
		return nil, util.ErrPersistence
	}

	result := &VideoSubmitResult{
		Score:       score,
		Partial:     partialCount,
		Total:       session.TotalClips,
		Recorded:    recorded,
		Skipped:     skipped,
		CompletedAt: completedAt,
	}

	vt, err := s.videoTestRepo.FindTestByID(session.VideoTestID)
	if err == nil && vt.Type == model.VideoTestMandatory {
		var passed *bool
		if vt.PassingScore != nil {
			p := score >= *vt.PassingScore
			passed = &p
		}
		result.Passed = passed
		if err := s.videoTestRepo.UpsertCompletion(&model.VideoTestCompletion{
			UserID:             userID,
			VideoTestID:        vt.ID,
			VideoTestSessionID: sessionID,
			Score:              score,
			Passed:             passed,
			CompletedAt:        completedAt,
		}); err != nil {
			logger.Log.Error("record video test completion", zap.Error(err))
		}
	}
	return result, nil
}

// VideoSessionSummary joins stored answers with each clip's correct
// decisions for the review screen.
type VideoSessionSummary struct {
	Session *model.VideoTestSession `json:"session"`
	Answers []model.VideoTestAnswer `json:"answers"`
	Clips   []model.VideoClip       `json:"clips"`
	Score   int                     `json:"score"`
}

func (s *VideoTestService) Summary(userID, sessionID string) (*VideoSessionSummary, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.videoTestRepo.FindAnswers(sessionID)
	if err != nil {
		return nil, util.ErrPersistence
	}
	clips, err := s.videoRepo.FindClipsByIDs([]string(session.ClipIDs))
	if err != nil {
		return nil, util.ErrPersistence
	}

	score := 0
	for _, a := range answers {
		if a.IsCorrect {
			score++
		}
	}
	stale := session.Score == nil || *session.Score != score
	if stale || session.CompletedAt == nil {
		var completedAt *time.Time
		if session.CompletedAt == nil {
			now := time.Now()
			completedAt = &now
			session.CompletedAt = completedAt
		}
		if err := s.videoTestRepo.UpdateSessionSummary(sessionID, score, completedAt); err != nil {
			return nil, util.ErrPersistence
		}
		session.Score = &score
	}

	return &VideoSessionSummary{Session: session, Answers: answers, Clips: clips, Score: score}, nil
}

func (s *VideoTestService) ListSessions(userID string, page, limit int) ([]model.VideoTestSession, int64, error) {
	return s.videoTestRepo.ListSessionsForUser(userID, page, limit)
}

func (s *VideoTestService) ownedSession(userID, sessionID string) (*model.VideoTestSession, error) {
	session, err := s.videoTestRepo.FindSessionByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}
