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

// TestService assembles quiz sessions, records answers and finalizes scores.
type TestService struct {
	testRepo     *repository.TestRepository
	questionRepo *repository.QuestionRepository
	categoryRepo *repository.CategoryRepository

	// newRng is swapped for a seeded source in tests.
	newRng func() *rand.Rand
}

func NewTestService(testRepo *repository.TestRepository, questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository) *TestService {
	return &TestService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		newRng: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// StartSessionRequest carries the caller's session parameters. Pointer
// fields distinguish "not provided" from explicit zero values so template
// defaults apply only where the caller stayed silent.
type StartSessionRequest struct {
	CategorySlug    string             `json:"categorySlug"`
	Type            model.QuestionType `json:"type"`
	TotalQuestions  *int               `json:"totalQuestions"`
	LawNumbers      []int              `json:"lawNumbers"`
	IncludeVar      *bool              `json:"includeVar"`
	IncludeIfab     *bool              `json:"includeIfab"`
	IncludeCustom   *bool              `json:"includeCustom"`
	QuestionIDs     []string           `json:"questionIds"`
	MandatoryTestID string             `json:"mandatoryTestId"`
}

// sessionPlan is the request merged with template defaults.
type sessionPlan struct {
	categoryID  string
	qType       model.QuestionType
	total       int
	lawNumbers  []int
	includeVar  bool
	includeIfab bool
	includeCust bool
	explicitIDs []string
	mandatoryID *string
}

// ResolvePlan merges template fields into the request. Precedence is
// explicit request, then template, then the default of ten questions.
func ResolvePlan(req StartSessionRequest, template *model.MandatoryTest) sessionPlan {
	plan := sessionPlan{
		qType:       req.Type,
		total:       util.DefaultSessionQuestions,
		lawNumbers:  util.ValidLawNumbers(req.LawNumbers),
		includeIfab: true,
		explicitIDs: req.QuestionIDs,
	}

	if template != nil {
		plan.mandatoryID = &template.ID
		plan.categoryID = template.CategoryID
		plan.includeIfab = template.IncludeIfab
		plan.includeCust = template.IncludeCustom
		if template.TotalQuestions > 0 {
			plan.total = template.TotalQuestions
		}
		if len(plan.lawNumbers) == 0 {
			plan.lawNumbers = []int(template.LawNumbers)
		}
		if len(plan.explicitIDs) == 0 {
			plan.explicitIDs = []string(template.QuestionIDs)
		}
	}

	if req.TotalQuestions != nil && *req.TotalQuestions > 0 {
		plan.total = *req.TotalQuestions
	}
	if req.IncludeVar != nil {
		plan.includeVar = *req.IncludeVar
	}
	if req.IncludeIfab != nil {
		plan.includeIfab = *req.IncludeIfab
	}
	if req.IncludeCustom != nil {
		plan.includeCust = *req.IncludeCustom
	}
	return plan
}

// StartSession resolves the category, merges template defaults, samples the
// eligible pool and persists the session with its ordered question list.
func (s *TestService) StartSession(userID string, req StartSessionRequest) (*model.TestSession, error) {
	var template *model.MandatoryTest
	if req.MandatoryTestID != "" {
		var err error
		template, err = s.testRepo.FindMandatoryTestByID(req.MandatoryTestID)
		if err != nil {
			return nil, util.ErrTestNotFound
		}
		if !template.IsActive {
			return nil, util.ErrTestNotFound
		}
	}

	plan := ResolvePlan(req, template)

	if plan.categoryID == "" {
		category, err := s.categoryRepo.Resolve(req.CategorySlug, categoryTypeFor(plan.qType))
		if err != nil {
			return nil, util.ErrCategoryNotFound
		}
		plan.categoryID = category.ID
	}

	filter := repository.EligibleFilter{
		Type:          plan.qType,
		CategoryID:    plan.categoryID,
		IncludeVar:    plan.includeVar,
		IncludeIfab:   plan.includeIfab,
		IncludeCustom: plan.includeCust,
		LawNumbers:    plan.lawNumbers,
	}

	chosen, err := s.selectQuestionIDs(plan, filter)
	if err != nil {
		return nil, err
	}

	session := &model.TestSession{
		UserID:          userID,
		CategoryID:      plan.categoryID,
		Type:            plan.qType,
		MandatoryTestID: plan.mandatoryID,
		QuestionIDs:     model.StringList(chosen),
		TotalQuestions:  len(chosen),
	}
	if err := s.testRepo.CreateSession(session); err != nil {
		logger.Log.Error("create test session", zap.Error(err))
		return nil, util.ErrPersistence
	}

	monitoring.SessionsStarted.WithLabelValues("quiz").Inc()
	logger.Log.Info("test session started",
		zap.String("sessionId", session.ID),
		zap.String("userId", userID),
		zap.Int("questions", session.TotalQuestions))
	return session, nil
}

// selectQuestionIDs validates an explicit subset and fills the remainder
// from the eligible pool by unbiased sampling.
func (s *TestService) selectQuestionIDs(plan sessionPlan, filter repository.EligibleFilter) ([]string, error) {
	if len(plan.explicitIDs) > plan.total {
		return nil, util.ErrOversizedSelection
	}

	var chosen []string
	if len(plan.explicitIDs) > 0 {
		eligibleFilter := filter
		eligibleFilter.IDs = plan.explicitIDs
		count, err := s.questionRepo.CountEligible(eligibleFilter)
		if err != nil {
			return nil, util.ErrPersistence
		}
		if int(count) != len(plan.explicitIDs) {
			return nil, util.ErrOversizedSelection
		}
		chosen = append(chosen, plan.explicitIDs...)
	}

	remaining := plan.total - len(chosen)
	if remaining > 0 {
		pool, err := s.questionRepo.FindEligible(filter)
		if err != nil {
			return nil, util.ErrPersistence
		}

		var poolIDs []string
		picked := make(map[string]bool, len(chosen))
		for _, id := range chosen {
			picked[id] = true
		}
		for _, q := range pool {
			if !picked[q.ID] {
				poolIDs = append(poolIDs, q.ID)
			}
		}
		if len(chosen) == 0 && len(poolIDs) == 0 {
			return nil, util.ErrInsufficientPool
		}
		// A pool smaller than the target yields the whole pool.
		chosen = append(chosen, util.SampleIDs(poolIDs, remaining, s.newRng())...)
	}
	return chosen, nil
}

func categoryTypeFor(qType model.QuestionType) model.CategoryType {
	if qType == model.QuestionVideo {
		return model.CategoryVideo
	}
	return model.CategoryLOTG
}

// SessionQuestions returns the session's questions in stored order with
// answer options permuted per fetch. The permutation is presentation only.
func (s *TestService) SessionQuestions(userID, sessionID string) (*model.TestSession, []model.Question, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.questionRepo.FindByIDs([]string(session.QuestionIDs))
	if err != nil {
		return nil, nil, util.ErrPersistence
	}

	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	rng := s.newRng()
	ordered := make([]model.Question, 0, len(session.QuestionIDs))
	for _, id := range session.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			continue
		}
		q.Options = util.Shuffle(q.Options, rng)
		ordered = append(ordered, q)
	}
	return session, ordered, nil
}

// AnswerEntry is one (question, option) pick from the client.
type AnswerEntry struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// GradeEntries resolves the correctness of each entry against the question
// set. Entries addressing an unknown question, or an option that does not
// belong to the question, are skipped.
func GradeEntries(sessionID string, entries []AnswerEntry, questions []model.Question) []model.TestAnswer {
	options := make(map[string]map[string]bool, len(questions))
	for _, q := range questions {
		opts := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			opts[o.ID] = o.IsCorrect
		}
		options[q.ID] = opts
	}

	var graded []model.TestAnswer
	for _, e := range entries {
		opts, ok := options[e.QuestionID]
		if !ok {
			continue
		}
		correct, ok := opts[e.OptionID]
		if !ok {
			continue
		}
		graded = append(graded, model.TestAnswer{
			TestSessionID:    sessionID,
			QuestionID:       e.QuestionID,
			SelectedOptionID: e.OptionID,
			IsCorrect:        correct,
		})
	}
	return graded
}

// SubmitAnswer records a single answer; resubmission overwrites.
func (s *TestService) SubmitAnswer(userID, sessionID string, entry AnswerEntry) (*model.TestAnswer, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !containsID(session.QuestionIDs, entry.QuestionID) {
		return nil, util.ErrQuestionNotFound
	}

	question, err := s.questionRepo.FindByID(entry.QuestionID)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	graded := GradeEntries(sessionID, []AnswerEntry{entry}, []model.Question{*question})
	if len(graded) == 0 {
		return nil, util.ErrValidation
	}

	answer := graded[0]
	if err := s.testRepo.UpsertAnswer(&answer); err != nil {
		logger.Log.Error("upsert answer", zap.Error(err))
		return nil, util.ErrPersistence
	}
	monitoring.AnswersRecorded.WithLabelValues("quiz", strconv.FormatBool(answer.IsCorrect)).Inc()
	return &answer, nil
}

// SubmitResult is the outcome of a batch submission.
type SubmitResult struct {
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Recorded    int       `json:"recorded"`
	Skipped     int       `json:"skipped"`
	CompletedAt time.Time `json:"completedAt"`
	Passed      *bool     `json:"passed,omitempty"`
}

// SubmitAnswers applies a whole batch in one transaction, recomputes the
// score over every stored answer and stamps completion. Entries naming an
// unknown question or a foreign option are skipped, not fatal.
func (s *TestService) SubmitAnswers(userID, sessionID string, entries []AnswerEntry) (*SubmitResult, error) {
	if len(entries) == 0 {
		return nil, util.ErrValidation
	}
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByIDs([]string(session.QuestionIDs))
	if err != nil {
		return nil, util.ErrPersistence
	}
	graded := GradeEntries(sessionID, entries, questions)

	completedAt := time.Now()
	score, err := s.testRepo.UpsertAnswersAndFinalize(sessionID, graded, completedAt)
	if err != nil {
		logger.Log.Error("submit answers", zap.Error(err), zap.String("sessionId", sessionID))
		return nil, util.ErrPersistence
	}
	for _, a := range graded {
		monitoring.AnswersRecorded.WithLabelValues("quiz", strconv.FormatBool(a.IsCorrect)).Inc()
	}

	result := &SubmitResult{
		Score:       score,
		Total:       session.TotalQuestions,
		Recorded:    len(graded),
		Skipped:     len(entries) - len(graded),
		CompletedAt: completedAt,
	}

	if session.MandatoryTestID != nil {
		if err := s.recordCompletion(session, score, completedAt, result); err != nil {
			logger.Log.Error("record mandatory completion", zap.Error(err))
		}
	}
	return result, nil
}

func (s *TestService) recordCompletion(session *model.TestSession, score int, completedAt time.Time, result *SubmitResult) error {
	template, err := s.testRepo.FindMandatoryTestByID(*session.MandatoryTestID)
	if err != nil {
		return err
	}
	var passed *bool
	if template.PassingScore != nil {
		p := score >= *template.PassingScore
		passed = &p
	}
	result.Passed = passed
	return s.testRepo.UpsertCompletion(&model.MandatoryTestCompletion{
		UserID:          session.UserID,
		MandatoryTestID: template.ID,
		TestSessionID:   session.ID,
		Score:           score,
		Passed:          passed,
		CompletedAt:     completedAt,
	})
}

// SessionSummary holds the session with its answers, recomputing and
// persisting the score when the stored one is stale or completion unset.
type SessionSummary struct {
	Session *model.TestSession `json:"session"`
	Answers []model.TestAnswer `json:"answers"`
	Score   int                `json:"score"`
}

// Summary recomputes the correct count from stored answers. The persisted
// score and completedAt are refreshed only when the stored score is stale or
// completion was never stamped; a current summary is a pure read.
func (s *TestService) Summary(userID, sessionID string) (*SessionSummary, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.testRepo.FindAnswers(sessionID)
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
		if err := s.testRepo.UpdateSessionSummary(sessionID, score, completedAt); err != nil {
			logger.Log.Error("refresh session summary", zap.Error(err))
			return nil, util.ErrPersistence
		}
		session.Score = &score
	}

	return &SessionSummary{Session: session, Answers: answers, Score: score}, nil
}

// ListSessions pages the caller's own sessions.
func (s *TestService) ListSessions(userID string, page, limit int) ([]model.TestSession, int64, error) {
	return s.testRepo.ListSessionsForUser(userID, page, limit)
}

func (s *TestService) ownedSession(userID, sessionID string) (*model.TestSession, error) {
	session, err := s.testRepo.FindSessionByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	// A foreign session reads as absent, not forbidden.
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

func containsID(ids model.StringList, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// --- mandatory tests (admin) ---

// MandatoryTestRequest is the admin create/update payload.
type MandatoryTestRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	CategoryID     string     `json:"categoryId" binding:"required"`
	LawNumbers     []int      `json:"lawNumbers"`
	QuestionIDs    []string   `json:"questionIds"`
	TotalQuestions int        `json:"totalQuestions"`
	PassingScore   *int       `json:"passingScore"`
	DueDate        *time.Time `json:"dueDate"`
	IsActive       *bool      `json:"isActive"`
	IsMandatory    *bool      `json:"isMandatory"`
	IncludeIfab    *bool      `json:"includeIfab"`
	IncludeCustom  *bool      `json:"includeCustom"`
}

func (s *TestService) CreateMandatoryTest(createdByID string, req MandatoryTestRequest) (*model.MandatoryTest, error) {
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, util.ErrCategoryNotFound
	}

	mt := &model.MandatoryTest{
		Title:          req.Title,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		LawNumbers:     model.IntList(util.ValidLawNumbers(req.LawNumbers)),
		QuestionIDs:    model.StringList(req.QuestionIDs),
		TotalQuestions: util.DefaultSessionQuestions,
		PassingScore:   req.PassingScore,
		DueDate:        req.DueDate,
		IsActive:       true,
		IsMandatory:    true,
		IncludeIfab:    true,
		CreatedByID:    createdByID,
	}
	if req.TotalQuestions > 0 {
		mt.TotalQuestions = req.TotalQuestions
	}
	if req.IsActive != nil {
		mt.IsActive = *req.IsActive
	}
	if req.IsMandatory != nil {
		mt.IsMandatory = *req.IsMandatory
	}
	if req.IncludeIfab != nil {
		mt.IncludeIfab = *req.IncludeIfab
	}
	if req.IncludeCustom != nil {
		mt.IncludeCustom = *req.IncludeCustom
	}

	if err := s.testRepo.CreateMandatoryTest(mt); err != nil {
		logger.Log.Error("create mandatory test", zap.Error(err))
		return nil, util.ErrPersistence
	}
	return mt, nil
}

func (s *TestService) UpdateMandatoryTest(id string, req MandatoryTestRequest) (*model.MandatoryTest, error) {
	mt, err := s.testRepo.FindMandatoryTestByID(id)
	if err != nil {
		return nil, util.ErrTestNotFound
	}

	sessions, err := s.testRepo.CountMandatoryTestSessions(id)
	if err != nil {
		return nil, util.ErrPersistence
	}

	mt.Title = req.Title
	mt.Description = req.Description
	mt.PassingScore = req.PassingScore
	mt.DueDate = req.DueDate
	if req.IsActive != nil {
		mt.IsActive = *req.IsActive
	}
	if req.IsMandatory != nil {
		mt.IsMandatory = *req.IsMandatory
	}
	// Selection fields freeze once sessions were instantiated from the
	// template, otherwise past attempts would stop matching their source.
	if sessions == 0 {
		mt.CategoryID = req.CategoryID
		mt.LawNumbers = model.IntList(util.ValidLawNumbers(req.LawNumbers))
		mt.QuestionIDs = model.StringList(req.QuestionIDs)
		if req.TotalQuestions > 0 {
			mt.TotalQuestions = req.TotalQuestions
		}
		if req.IncludeIfab != nil {
			mt.IncludeIfab = *req.IncludeIfab
		}
		if req.IncludeCustom != nil {
			mt.IncludeCustom = *req.IncludeCustom
		}
	}

	if err := s.testRepo.UpdateMandatoryTest(mt); err != nil {
		return nil, util.ErrPersistence
	}
	return mt, nil
}

func (s *TestService) DeleteMandatoryTest(id string) error {
	if _, err := s.testRepo.FindMandatoryTestByID(id); err != nil {
		return util.ErrTestNotFound
	}
	sessions, err := s.testRepo.CountMandatoryTestSessions(id)
	if err != nil {
		return util.ErrPersistence
	}
	if sessions > 0 {
		return util.ErrConflict
	}
	return s.testRepo.DeleteMandatoryTest(id)
}

// MandatoryTestView pairs a template with the caller's completion, if any.
type MandatoryTestView struct {
	model.MandatoryTest
	Completion *model.MandatoryTestCompletion `json:"completion,omitempty"`
}

// ListMandatoryTestsForUser joins active templates with the user's
// completions so the client can render done/pending state in one call.
func (s *TestService) ListMandatoryTestsForUser(userID string) ([]MandatoryTestView, error) {
	tests, err := s.testRepo.ListMandatoryTests(true)
	if err != nil {
		return nil, util.ErrPersistence
	}
	completions, err := s.testRepo.FindCompletionsForUser(userID)
	if err != nil {
		return nil, util.ErrPersistence
	}

	byTest := make(map[string]model.MandatoryTestCompletion, len(completions))
	for _, c := range completions {
		byTest[c.MandatoryTestID] = c
	}

	views := make([]MandatoryTestView, 0, len(tests))
	for _, t := range tests {
		view := MandatoryTestView{MandatoryTest: t}
		if c, ok := byTest[t.ID]; ok {
			completion := c
			view.Completion = &completion
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *TestService) ListMandatoryTests(activeOnly bool) ([]model.MandatoryTest, error) {
	return s.testRepo.ListMandatoryTests(activeOnly)
}

func (s *TestService) GetMandatoryTest(id string) (*model.MandatoryTest, error) {
	mt, err := s.testRepo.FindMandatoryTestByID(id)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	return mt, nil
}

func (s *TestService) TestCompletions(testID string) ([]model.MandatoryTestCompletion, error) {
	if _, err := s.testRepo.FindMandatoryTestByID(testID); err != nil {
		return nil, util.ErrTestNotFound
	}
	return s.testRepo.FindCompletionsForTest(testID)
}
