package controller

import (
	"github.com/gin-gonic/gin"

	"referee_training_backend/internal/service"
	"referee_training_backend/internal/util"
)

// TestController serves quiz sessions and mandatory test templates.
type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Resolves the category, merges mandatory-test defaults when a
// @Description template id is given and samples the eligible question pool.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.StartSessionRequest true "session parameters"
// @Success 201 {object} util.Response{data=model.TestSession}
// @Failure 400 {object} util.Response "empty pool or oversized explicit selection"
// @Failure 404 {object} util.Response "unknown category or template"
// @Router /api/tests/sessions [post]
func (c *TestController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.TestService.StartSession(claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// ListSessions godoc
// @Summary Page the caller's quiz sessions
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.PageResponse{data=[]model.TestSession}
// @Router /api/tests/sessions [get]
func (c *TestController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	sessions, total, err := c.TestService.ListSessions(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Page(ctx, sessions, total, page, limit)
}

// SessionQuestions godoc
// @Summary The session's questions in stored order, options shuffled per fetch
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "missing or foreign session"
// @Router /api/tests/sessions/{id}/questions [get]
func (c *TestController) SessionQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	session, questions, err := c.TestService.SessionQuestions(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"session": session, "questions": questions})
}

// SubmitAnswer godoc
// @Summary Record one answer; resubmission overwrites
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Param body body service.AnswerEntry true "answer"
// @Success 200 {object} util.Response{data=model.TestAnswer}
// @Router /api/tests/sessions/{id}/answer [post]
func (c *TestController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var entry service.AnswerEntry
	if err := ctx.ShouldBindJSON(&entry); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	answer, err := c.TestService.SubmitAnswer(claims.UserID, ctx.Param("id"), entry)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// SubmitAnswers godoc
// @Summary Submit a batch of answers and finalize the session
// @Description Applies the whole batch in one transaction. Entries naming an
// @Description unknown question or a foreign option are skipped.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Param body body []service.AnswerEntry true "answers"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response "empty or non-array body"
// @Router /api/tests/sessions/{id}/submit [post]
func (c *TestController) SubmitAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var entries []service.AnswerEntry
	if err := ctx.ShouldBindJSON(&entries); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.TestService.SubmitAnswers(claims.UserID, ctx.Param("id"), entries)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Summary godoc
// @Summary Session summary with stored answers
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=service.SessionSummary}
// @Router /api/tests/sessions/{id}/summary [get]
func (c *TestController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	summary, err := c.TestService.Summary(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// --- mandatory tests ---

// ListMandatoryTests godoc
// @Summary Active mandatory tests with the caller's completion state
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.MandatoryTestView}
// @Router /api/tests/mandatory [get]
func (c *TestController) ListMandatoryTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	views, err := c.TestService.ListMandatoryTestsForUser(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// AdminListMandatoryTests godoc
// @Summary List mandatory test templates (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param all query bool false "include inactive"
// @Success 200 {object} util.Response{data=[]model.MandatoryTest}
// @Router /api/admin/tests/mandatory [get]
func (c *TestController) AdminListMandatoryTests(ctx *gin.Context) {
	tests, err := c.TestService.ListMandatoryTests(ctx.Query("all") != "true")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// GetMandatoryTest godoc
// @Summary Fetch one mandatory test template (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "template id"
// @Success 200 {object} util.Response{data=model.MandatoryTest}
// @Router /api/admin/tests/mandatory/{id} [get]
func (c *TestController) GetMandatoryTest(ctx *gin.Context) {
	mt, err := c.TestService.GetMandatoryTest(ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, mt)
}

// CreateMandatoryTest godoc
// @Summary Create a mandatory test template (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MandatoryTestRequest true "template"
// @Success 201 {object} util.Response{data=model.MandatoryTest}
// @Router /api/admin/tests/mandatory [post]
func (c *TestController) CreateMandatoryTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.MandatoryTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	mt, err := c.TestService.CreateMandatoryTest(claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, mt)
}

// UpdateMandatoryTest godoc
// @Summary Update a template; selection fields freeze once sessions exist (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "template id"
// @Param body body service.MandatoryTestRequest true "template"
// @Success 200 {object} util.Response{data=model.MandatoryTest}
// @Router /api/admin/tests/mandatory/{id} [put]
func (c *TestController) UpdateMandatoryTest(ctx *gin.Context) {
	var req service.MandatoryTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	mt, err := c.TestService.UpdateMandatoryTest(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, mt)
}

// DeleteMandatoryTest godoc
// @Summary Delete a template with no instantiated sessions (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "template id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "sessions already instantiated"
// @Router /api/admin/tests/mandatory/{id} [delete]
func (c *TestController) DeleteMandatoryTest(ctx *gin.Context) {
	if err := c.TestService.DeleteMandatoryTest(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MandatoryTestCompletions godoc
// @Summary Completions recorded for one template (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "template id"
// @Success 200 {object} util.Response{data=[]model.MandatoryTestCompletion}
// @Router /api/admin/tests/mandatory/{id}/completions [get]
func (c *TestController) MandatoryTestCompletions(ctx *gin.Context) {
	completions, err := c.TestService.TestCompletions(ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, completions)
}
