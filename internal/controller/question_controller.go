package controller

import (
	"github.com/gin-gonic/gin"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/service"
	"referee_training_backend/internal/util"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// List godoc
// @Summary Page questions (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param categoryId query string false "category filter"
// @Param search query string false "text substring"
// @Param lawNumber query int false "law number filter"
// @Success 200 {object} util.PageResponse{data=[]model.Question}
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)
	lawNumber := util.ParseIntDefault(ctx.Query("lawNumber"), 0)

	questions, total, err := c.QuestionService.List(page, limit, ctx.Query("categoryId"), ctx.Query("search"), lawNumber)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Page(ctx, questions, total, page, limit)
}

// Count godoc
// @Summary Count the eligible pool for selection criteria (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param categoryId query string false "category filter"
// @Param lawNumber query int false "law number filter"
// @Param includeVar query bool false "include VAR questions"
// @Param includeIfab query bool false "include IFAB source"
// @Param includeCustom query bool false "include custom source"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/questions/count [get]
func (c *QuestionController) Count(ctx *gin.Context) {
	filter := repository.EligibleFilter{
		Type:          model.QuestionType(ctx.Query("type")),
		CategoryID:    ctx.Query("categoryId"),
		IncludeVar:    ctx.Query("includeVar") == "true",
		IncludeIfab:   ctx.DefaultQuery("includeIfab", "true") == "true",
		IncludeCustom: ctx.Query("includeCustom") == "true",
	}
	if law := util.ParseIntDefault(ctx.Query("lawNumber"), 0); law > 0 {
		filter.LawNumbers = []int{law}
	}

	count, err := c.QuestionService.CountEligible(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": count})
}

// Get godoc
// @Summary Fetch one question with its options (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "question id"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	question, err := c.QuestionService.Get(ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Create godoc
// @Summary Create a question with nested options (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := c.QuestionService.Create(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// Update godoc
// @Summary Update a question; options follow replace-set semantics (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "question id"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := c.QuestionService.Update(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Retire godoc
// @Summary Retire a question; stored sessions keep it (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Retire(ctx *gin.Context) {
	if err := c.QuestionService.Retire(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
