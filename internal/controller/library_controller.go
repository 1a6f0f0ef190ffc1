package controller

import (
	"strings"

	"github.com/gin-gonic/gin"

	"referee_training_backend/internal/model"
	"referee_training_backend/internal/service"
	"referee_training_backend/internal/util"
)

// LibraryController serves the clip library: browsing, filter counts, clip
// and video-category admin, and media ingest.
type LibraryController struct {
	VideoService *service.VideoService
	MediaService *service.MediaService
}

func NewLibraryController(videoService *service.VideoService, mediaService *service.MediaService) *LibraryController {
	return &LibraryController{VideoService: videoService, MediaService: mediaService}
}

// filterFromQuery reads the library filter surface off the query string.
// Tag selections arrive as a comma-separated slug list and are bucketed by
// tag category server side.
func (c *LibraryController) filterFromQuery(ctx *gin.Context, admin bool) (service.ClipFilter, error) {
	filter := service.ClipFilter{
		Search:          ctx.Query("search"),
		VideoCategoryID: ctx.Query("videoCategoryId"),
		LawNumber:       util.ParseIntDefault(ctx.Query("lawNumber"), 0),
	}
	if admin && ctx.Query("all") == "true" {
		filter.IncludeInactive = true
	}
	for name, dst := range map[string]**bool{
		"varRelevant":   &filter.VarRelevant,
		"isFeatured":    &filter.IsFeatured,
		"isEducational": &filter.IsEducational,
	} {
		switch ctx.Query(name) {
		case "true":
			v := true
			*dst = &v
		case "false":
			v := false
			*dst = &v
		}
	}

	if raw := ctx.Query("tags"); raw != "" {
		slugs := strings.Split(raw, ",")
		groups, err := c.VideoService.GroupTagSlugs(slugs)
		if err != nil {
			return filter, err
		}
		filter.Groups = groups
	}
	return filter, nil
}

// ListClips godoc
// @Summary Browse the clip library
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param tags query string false "comma-separated tag slugs; AND across categories, OR within"
// @Param search query string false "title/description substring"
// @Param videoCategoryId query string false "video category filter"
// @Param lawNumber query int false "law number filter"
// @Success 200 {object} util.PageResponse{data=[]model.VideoClip}
// @Router /api/library/clips [get]
func (c *LibraryController) ListClips(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	admin := claims != nil && claims.Role == model.RoleAdmin

	filter, err := c.filterFromQuery(ctx, admin)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	clips, total, err := c.VideoService.ListClips(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Page(ctx, clips, total, page, limit)
}

// FilterCounts godoc
// @Summary Per-tag clip counts for the filter dropdowns
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param tags query string false "currently selected tag slugs"
// @Success 200 {object} util.Response{data=[]service.GroupCounts}
// @Router /api/library/filter-counts [get]
func (c *LibraryController) FilterCounts(ctx *gin.Context) {
	filter, err := c.filterFromQuery(ctx, false)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	counts, err := c.VideoService.FilterCounts(ctx.Request.Context(), filter)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, counts)
}

// EligibleClips godoc
// @Summary Clips eligible for composing a video test (admin)
// @Description Returns the total match count for the filter plus summaries
// @Description for the newest clips, labelled by their category tags.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param tags query string false "comma-separated tag slugs"
// @Param limit query int false "max summaries returned (default 500)"
// @Success 200 {object} util.Response{data=[]service.EligibleClip}
// @Router /api/admin/video-tests/eligible [get]
func (c *LibraryController) EligibleClips(ctx *gin.Context) {
	filter, err := c.filterFromQuery(ctx, true)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	limit := util.ParseIntDefault(ctx.Query("limit"), 0)

	clips, total, err := c.VideoService.EligibleClips(filter, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"clips": clips, "total": total})
}

// GetClip godoc
// @Summary Fetch one clip with its tags
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param id path string true "clip id"
// @Success 200 {object} util.Response{data=model.VideoClip}
// @Failure 404 {object} util.Response
// @Router /api/library/clips/{id} [get]
func (c *LibraryController) GetClip(ctx *gin.Context) {
	clip, err := c.VideoService.GetClip(ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, clip)
}

// CreateClip godoc
// @Summary Create a clip record (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ClipRequest true "clip"
// @Success 201 {object} util.Response{data=model.VideoClip}
// @Router /api/admin/library/clips [post]
func (c *LibraryController) CreateClip(ctx *gin.Context) {
	var req service.ClipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	clip, err := c.VideoService.CreateClip(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, clip)
}

// UpdateClip godoc
// @Summary Partially update a clip; tag links reconcile by diff (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "clip id"
// @Param body body service.ClipRequest true "changed fields"
// @Success 200 {object} util.Response{data=model.VideoClip}
// @Router /api/admin/library/clips/{id} [put]
func (c *LibraryController) UpdateClip(ctx *gin.Context) {
	var req service.ClipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	clip, err := c.VideoService.UpdateClip(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, clip)
}

// RetireClip godoc
// @Summary Deactivate a clip (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "clip id"
// @Success 200 {object} util.Response
// @Router /api/admin/library/clips/{id}/retire [post]
func (c *LibraryController) RetireClip(ctx *gin.Context) {
	if err := c.VideoService.RetireClip(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteClip godoc
// @Summary Delete a clip and its tag links (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "clip id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "a video test still pins the clip"
// @Router /api/admin/library/clips/{id} [delete]
func (c *LibraryController) DeleteClip(ctx *gin.Context) {
	if err := c.VideoService.DeleteClip(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Upload godoc
// @Summary Ingest a video file (admin)
// @Description Sniffs the MIME type, probes the video, grabs a thumbnail
// @Description and applies an optional trim before storing the assets.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "video file"
// @Param trimStart formData number false "trim start seconds"
// @Param trimEnd formData number false "trim end seconds"
// @Success 201 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response "oversized, unsupported or unreadable file"
// @Router /api/admin/library/upload [post]
func (c *LibraryController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	var trim *util.TrimSpec
	start := ctx.PostForm("trimStart")
	end := ctx.PostForm("trimEnd")
	if start != "" || end != "" {
		trim = &util.TrimSpec{
			StartSeconds: util.ParseFloatDefault(start, 0),
			EndSeconds:   util.ParseFloatDefault(end, 0),
		}
	}

	result, err := c.MediaService.UploadVideo(ctx.Request.Context(), header, trim)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// --- video categories ---

// ListVideoCategories godoc
// @Summary List video categories
// @Tags library
// @Produce json
// @Success 200 {object} util.Response{data=[]model.VideoCategory}
// @Router /api/library/categories [get]
func (c *LibraryController) ListVideoCategories(ctx *gin.Context) {
	categories, err := c.VideoService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// CreateVideoCategory godoc
// @Summary Create a video category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.VideoCategoryRequest true "video category"
// @Success 201 {object} util.Response{data=model.VideoCategory}
// @Router /api/admin/library/categories [post]
func (c *LibraryController) CreateVideoCategory(ctx *gin.Context) {
	var req service.VideoCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	vc, err := c.VideoService.CreateCategory(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, vc)
}

// UpdateVideoCategory godoc
// @Summary Update a video category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "video category id"
// @Param body body service.VideoCategoryRequest true "video category"
// @Success 200 {object} util.Response{data=model.VideoCategory}
// @Router /api/admin/library/categories/{id} [put]
func (c *LibraryController) UpdateVideoCategory(ctx *gin.Context) {
	var req service.VideoCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	vc, err := c.VideoService.UpdateCategory(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, vc)
}

// DeleteVideoCategory godoc
// @Summary Delete a video category (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "video category id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "clips still assigned"
// @Router /api/admin/library/categories/{id} [delete]
func (c *LibraryController) DeleteVideoCategory(ctx *gin.Context) {
	if err := c.VideoService.DeleteCategory(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
