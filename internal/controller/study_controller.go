package controller

import (
	"strings"

	"github.com/gin-gonic/gin"

	"referee_training_backend/internal/service"
	"referee_training_backend/internal/util"
)

// StudyController serves the self-paced reading mode: law-number browsing,
// per-user read markers and starred questions.
type StudyController struct {
	StudyService *service.StudyService
}

func NewStudyController(studyService *service.StudyService) *StudyController {
	return &StudyController{StudyService: studyService}
}

// LawNumbers godoc
// @Summary Law numbers covered by the reading pool
// @Tags study
// @Produce json
// @Security BearerAuth
// @Param includeVar query bool false "include VAR questions"
// @Success 200 {object} util.Response{data=[]int}
// @Router /api/study/law-numbers [get]
func (c *StudyController) LawNumbers(ctx *gin.Context) {
	laws, err := c.StudyService.LawNumbers(ctx.Query("includeVar") == "true")
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, laws)
}

// ListQuestions godoc
// @Summary Browse the reading pool with the caller's markers
// @Description Questions come back oldest first without answer options,
// @Description annotated with the caller's read markers and stars.
// @Tags study
// @Produce json
// @Security BearerAuth
// @Param lawNumbers query string false "comma-separated law numbers; any overlap matches"
// @Param includeVar query bool false "include VAR questions"
// @Param readStatus query string false "read, unread or all"
// @Success 200 {object} util.Response{data=object}
// @Router /api/study/questions [get]
func (c *StudyController) ListQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	req := service.StudyListRequest{
		IncludeVar: ctx.Query("includeVar") == "true",
		ReadStatus: ctx.Query("readStatus"),
	}
	if raw := ctx.Query("lawNumbers"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if n := util.ParseIntDefault(strings.TrimSpace(part), 0); n > 0 {
				req.LawNumbers = append(req.LawNumbers, n)
			}
		}
	}

	questions, total, err := c.StudyService.ListQuestions(claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions, "total": total})
}

// MarkRead godoc
// @Summary Mark a question as read
// @Tags study
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controller.StudyProgressRequest true "question"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/study/progress [post]
func (c *StudyController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req StudyProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.StudyService.MarkRead(claims.UserID, req.QuestionID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ResetProgress godoc
// @Summary Reset all read markers of the caller
// @Tags study
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/study/progress [delete]
func (c *StudyController) ResetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if err := c.StudyService.ResetProgress(claims.UserID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// StudyProgressRequest names the question a marker or star applies to.
type StudyProgressRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
}

// ListFavorites godoc
// @Summary The caller's starred question ids, newest first
// @Tags study
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/study/favorites [get]
func (c *StudyController) ListFavorites(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	ids, err := c.StudyService.Favorites(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, ids)
}

// AddFavorite godoc
// @Summary Star a question
// @Tags study
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controller.StudyProgressRequest true "question"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/study/favorites [post]
func (c *StudyController) AddFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req StudyProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.StudyService.AddFavorite(claims.UserID, req.QuestionID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RemoveFavorite godoc
// @Summary Unstar a question
// @Tags study
// @Produce json
// @Security BearerAuth
// @Param id path string true "question id"
// @Success 200 {object} util.Response
// @Router /api/study/favorites/{id} [delete]
func (c *StudyController) RemoveFavorite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if err := c.StudyService.RemoveFavorite(claims.UserID, ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
