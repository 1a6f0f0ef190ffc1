package service

import (
	"go.uber.org/zap"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/util"
	"referee_training_backend/pkg/logger"
)

// QuestionService backs the admin question screens.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	categoryRepo *repository.CategoryRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, categoryRepo: categoryRepo}
}

// OptionRequest is one answer option in a create/update payload. ID is set
// when the option already exists.
type OptionRequest struct {
	ID           string `json:"id"`
	Label        string `json:"label" binding:"required"`
	Code         string `json:"code"`
	IsCorrect    bool   `json:"isCorrect"`
	DisplayOrder int    `json:"displayOrder"`
}

// QuestionRequest is the admin create/update payload.
type QuestionRequest struct {
	Text        string             `json:"text" binding:"required"`
	Explanation string             `json:"explanation"`
	Type        model.QuestionType `json:"type"`
	LawNumbers  []int              `json:"lawNumbers"`
	Difficulty  int                `json:"difficulty"`
	CategoryID  string             `json:"categoryId" binding:"required"`
	IsActive    *bool              `json:"isActive"`
	IsVar       *bool              `json:"isVar"`
	IsUpToDate  *bool              `json:"isUpToDate"`
	IsIfab      *bool              `json:"isIfab"`
	Options     []OptionRequest    `json:"options" binding:"required,min=2"`
}

func (s *QuestionService) Create(req QuestionRequest) (*model.Question, error) {
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, util.ErrCategoryNotFound
	}
	if countCorrect(req.Options) == 0 {
		return nil, util.ErrValidation
	}

	question := &model.Question{
		Text:        req.Text,
		Explanation: req.Explanation,
		Type:        model.QuestionLOTGText,
		LawNumbers:  model.IntList(util.ValidLawNumbers(req.LawNumbers)),
		Difficulty:  1,
		IsActive:    true,
		IsUpToDate:  true,
		IsIfab:      true,
		CategoryID:  req.CategoryID,
	}
	applyQuestionFlags(question, req)

	for i, opt := range req.Options {
		question.Options = append(question.Options, model.AnswerOption{
			Label:        opt.Label,
			Code:         opt.Code,
			IsCorrect:    opt.IsCorrect,
			DisplayOrder: optionOrder(opt, i),
		})
	}

	if err := s.questionRepo.Create(question); err != nil {
		logger.Log.Error("create question", zap.Error(err))
		return nil, util.ErrPersistence
	}
	return question, nil
}

// Update applies the payload with replace-set option semantics: options
// carrying a known ID are updated in place, new ones are created, stored
// options missing from the payload are deleted.
func (s *QuestionService) Update(id string, req QuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, util.ErrCategoryNotFound
	}
	if countCorrect(req.Options) == 0 {
		return nil, util.ErrValidation
	}

	existing := make(map[string]model.AnswerOption, len(question.Options))
	for _, opt := range question.Options {
		existing[opt.ID] = opt
	}

	question.Text = req.Text
	question.Explanation = req.Explanation
	question.LawNumbers = model.IntList(util.ValidLawNumbers(req.LawNumbers))
	question.CategoryID = req.CategoryID
	applyQuestionFlags(question, req)
	question.Options = nil

	if err := s.questionRepo.Update(question); err != nil {
		logger.Log.Error("update question", zap.Error(err))
		return nil, util.ErrPersistence
	}

	kept := make(map[string]bool, len(req.Options))
	for i, opt := range req.Options {
		if stored, ok := existing[opt.ID]; ok {
			kept[opt.ID] = true
			stored.Label = opt.Label
			stored.Code = opt.Code
			stored.IsCorrect = opt.IsCorrect
			stored.DisplayOrder = optionOrder(opt, i)
			if err := s.questionRepo.UpdateOption(&stored); err != nil {
				return nil, util.ErrPersistence
			}
			continue
		}
		created := model.AnswerOption{
			QuestionID:   question.ID,
			Label:        opt.Label,
			Code:         opt.Code,
			IsCorrect:    opt.IsCorrect,
			DisplayOrder: optionOrder(opt, i),
		}
		if err := s.questionRepo.CreateOption(&created); err != nil {
			return nil, util.ErrPersistence
		}
	}
	for optID := range existing {
		if !kept[optID] {
			if err := s.questionRepo.DeleteOption(optID); err != nil {
				return nil, util.ErrPersistence
			}
		}
	}

	return s.questionRepo.FindByID(id)
}

func (s *QuestionService) Get(id string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	return question, nil
}

// Retire flips isActive off; the question keeps serving stored sessions.
func (s *QuestionService) Retire(id string) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return util.ErrQuestionNotFound
	}
	return s.questionRepo.Retire(id)
}

func (s *QuestionService) List(page, limit int, categoryID, search string, lawNumber int) ([]model.Question, int64, error) {
	return s.questionRepo.AdminList(page, limit, categoryID, search, lawNumber)
}

// CountEligible reports the pool size for the given selection criteria, used
// by the admin template builder to show how many questions a filter reaches.
func (s *QuestionService) CountEligible(f repository.EligibleFilter) (int64, error) {
	return s.questionRepo.CountEligible(f)
}

func applyQuestionFlags(q *model.Question, req QuestionRequest) {
	if req.Type != "" {
		q.Type = req.Type
	}
	if req.Difficulty > 0 {
		q.Difficulty = req.Difficulty
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	if req.IsVar != nil {
		q.IsVar = *req.IsVar
	}
	if req.IsUpToDate != nil {
		q.IsUpToDate = *req.IsUpToDate
	}
	if req.IsIfab != nil {
		q.IsIfab = *req.IsIfab
	}
}

func countCorrect(options []OptionRequest) int {
	n := 0
	for _, opt := range options {
		if opt.IsCorrect {
			n++
		}
	}
	return n
}

func optionOrder(opt OptionRequest, index int) int {
	if opt.DisplayOrder > 0 {
		return opt.DisplayOrder
	}
	return index
}
