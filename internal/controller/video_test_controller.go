package controller

import (
	"github.com/gin-gonic/gin"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/service"
	"referee_training_backend/internal/util"
)

// VideoTestController serves clip-based decision tests.
type VideoTestController struct {
	VideoTestService *service.VideoTestService
}

func NewVideoTestController(videoTestService *service.VideoTestService) *VideoTestController {
	return &VideoTestController{VideoTestService: videoTestService}
}

// List godoc
// @Summary Active video tests with the caller's completion state
// @Tags video-tests
// @Produce json
// @Security BearerAuth
// @Param type query string false "MANDATORY, PUBLIC or USER"
// @Success 200 {object} util.Response{data=[]service.VideoTestView}
// @Router /api/video-tests [get]
func (c *VideoTestController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	views, err := c.VideoTestService.ListTestsForUser(claims.UserID, model.VideoTestType(ctx.Query("type")))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Get godoc
// @Summary Fetch one video test with its ordered clips
// @Tags video-tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "video test id"
// @Success 200 {object} util.Response{data=model.VideoTest}
// @Router /api/video-tests/{id} [get]
func (c *VideoTestController) Get(ctx *gin.Context) {
	vt, err := c.VideoTestService.GetTest(ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, vt)
}

// StartSession godoc
// @Summary Start a session over a video test's clips in shuffled order
// @Tags video-tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "video test id"
// @Success 201 {object} util.Response{data=model.VideoTestSession}
// @Failure 400 {object} util.Response "test has no active clips"
// @Router /api/video-tests/{id}/sessions [post]
func (c *VideoTestController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	session, err := c.VideoTestService.StartSession(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// ListSessions godoc
// @Summary Page the caller's video test sessions
// @Tags video-tests
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.PageResponse{data=[]model.VideoTestSession}
// @Router /api/video-tests/sessions [get]
func (c *VideoTestController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	sessions, total, err := c.VideoTestService.ListSessions(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Page(ctx, sessions, total, page, limit)
}

// SessionClips godoc
// @Summary The session's clips in stored order
// @Tags video-tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/video-tests/sessions/{id}/clips [get]
func (c *VideoTestController) SessionClips(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	session, clips, err := c.VideoTestService.SessionClips(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"session": session, "clips": clips})
}

// SubmitAnswers godoc
// @Summary Score a batch of clip decisions
// @Description Each decision is judged on the restart, sanction and criteria
// @Description groups independently; play-on/no-offence clips on that single
// @Description call. One or two matching groups score as partial.
// @Tags video-tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Param body body []service.VideoAnswerEntry true "decisions"
// @Success 200 {object} util.Response{data=service.VideoSubmitResult}
// @Router /api/video-tests/sessions/{id}/submit [post]
func (c *VideoTestController) SubmitAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var entries []service.VideoAnswerEntry
	if err := ctx.ShouldBindJSON(&entries); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.VideoTestService.SubmitAnswers(claims.UserID, ctx.Param("id"), entries)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Summary godoc
// @Summary Session review with stored answers and correct decisions
// @Tags video-tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=service.VideoSessionSummary}
// @Router /api/video-tests/sessions/{id}/summary [get]
func (c *VideoTestController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	summary, err := c.VideoTestService.Summary(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// --- admin ---

// AdminList godoc
// @Summary List video tests (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type query string false "MANDATORY, PUBLIC or USER"
// @Param all query bool false "include inactive"
// @Success 200 {object} util.Response{data=[]model.VideoTest}
// @Router /api/admin/video-tests [get]
func (c *VideoTestController) AdminList(ctx *gin.Context) {
	tests, err := c.VideoTestService.ListTests(model.VideoTestType(ctx.Query("type")), ctx.Query("all") != "true")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// Create godoc
// @Summary Create a video test over an ordered clip list (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.VideoTestRequest true "video test"
// @Success 201 {object} util.Response{data=model.VideoTest}
// @Failure 400 {object} util.Response "no clips given"
// @Router /api/admin/video-tests [post]
func (c *VideoTestController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.VideoTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	vt, err := c.VideoTestService.CreateTest(claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, vt)
}

// Update godoc
// @Summary Update a video test; a non-empty clip list replaces it wholesale (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "video test id"
// @Param body body service.VideoTestRequest true "video test"
// @Success 200 {object} util.Response{data=model.VideoTest}
// @Router /api/admin/video-tests/{id} [put]
func (c *VideoTestController) Update(ctx *gin.Context) {
	var req service.VideoTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	vt, err := c.VideoTestService.UpdateTest(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, vt)
}

// Delete godoc
// @Summary Delete a video test with no sessions (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "video test id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "sessions already started"
// @Router /api/admin/video-tests/{id} [delete]
func (c *VideoTestController) Delete(ctx *gin.Context) {
	if err := c.VideoTestService.DeleteTest(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
