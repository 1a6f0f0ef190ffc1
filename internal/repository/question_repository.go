package repository

import (
	"referee_training_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// EligibleFilter narrows the question pool for session assembly. Zero values
// leave a dimension unconstrained except IsActive/IsUpToDate which always
// apply to user-facing selection.
type EligibleFilter struct {
	Type          model.QuestionType
	CategoryID    string
	IncludeVar    bool
	IncludeIfab   bool
	IncludeCustom bool
	LawNumbers    []int
	IDs           []string
}

func (r *QuestionRepository) applyEligible(query *gorm.DB, f EligibleFilter) *gorm.DB {
	query = query.Where("is_active = ? AND is_up_to_date = ?", true, true)
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.CategoryID != "" {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if len(f.IDs) > 0 {
		query = query.Where("id IN ?", f.IDs)
	}
	// IFAB source flags: only constrain when exactly one source is wanted.
	if f.IncludeIfab && !f.IncludeCustom {
		query = query.Where("is_ifab = ?", true)
	} else if !f.IncludeIfab && f.IncludeCustom {
		query = query.Where("is_ifab = ?", false)
	}
	if !f.IncludeVar {
		query = query.Where("is_var = ?", false)
	}
	// Any overlap with the requested law numbers qualifies. Law lists are
	// short (1..17), so JSON_CONTAINS per number keeps this on the index-free
	// happy path MySQL handles well.
	if len(f.LawNumbers) > 0 {
		clause := r.DB.Session(&gorm.Session{NewDB: true})
		for i, n := range f.LawNumbers {
			if i == 0 {
				clause = clause.Where("JSON_CONTAINS(law_numbers, CAST(? AS JSON))", n)
			} else {
				clause = clause.Or("JSON_CONTAINS(law_numbers, CAST(? AS JSON))", n)
			}
		}
		query = query.Where(clause)
	}
	return query
}

// FindEligible returns the eligible pool with answer options preloaded.
func (r *QuestionRepository) FindEligible(f EligibleFilter) ([]model.Question, error) {
	var questions []model.Question
	query := r.applyEligible(r.DB.Model(&model.Question{}), f)
	err := query.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountEligible(f EligibleFilter) (int64, error) {
	var count int64
	err := r.applyEligible(r.DB.Model(&model.Question{}), f).Count(&count).Error
	return count, err
}

// FindForStudy returns the study-mode reading pool ordered oldest first.
// Options are left unloaded; study mode shows text and explanation only.
func (r *QuestionRepository) FindForStudy(f EligibleFilter) ([]model.Question, error) {
	var questions []model.Question
	err := r.applyEligible(r.DB.Model(&model.Question{}), f).
		Order("created_at asc").Find(&questions).Error
	return questions, err
}

// StudyLawNumbers plucks the law lists over the eligible pool; the caller
// flattens and dedupes.
func (r *QuestionRepository) StudyLawNumbers(f EligibleFilter) ([]model.IntList, error) {
	var lists []model.IntList
	err := r.applyEligible(r.DB.Model(&model.Question{}), f).
		Pluck("law_numbers", &lists).Error
	return lists, err
}

func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.DB.Where("id IN ?", ids).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).First(&question, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

// Retire flips the active flag instead of deleting; historical sessions keep
// referencing the question.
func (r *QuestionRepository) Retire(id string) error {
	return r.DB.Model(&model.Question{}).Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *QuestionRepository) CreateOption(option *model.AnswerOption) error {
	return r.DB.Create(option).Error
}

func (r *QuestionRepository) UpdateOption(option *model.AnswerOption) error {
	return r.DB.Save(option).Error
}

func (r *QuestionRepository) DeleteOption(id string) error {
	return r.DB.Delete(&model.AnswerOption{}, "id = ?", id).Error
}

// AdminList pages questions for the admin screens, active or not.
func (r *QuestionRepository) AdminList(page, limit int, categoryID, search string, lawNumber int) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{})
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search != "" {
		query = query.Where("text LIKE ?", "%"+search+"%")
	}
	if lawNumber > 0 {
		query = query.Where("JSON_CONTAINS(law_numbers, CAST(? AS JSON))", lawNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	offset := (page - 1) * limit
	err := query.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).Order("created_at desc").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}
