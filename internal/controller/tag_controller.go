package controller

import (
	"github.com/gin-gonic/gin"

	"referee_training_backend/internal/service"
	"referee_training_backend/internal/util"
)

type TagController struct {
	TagService *service.TagService
}

func NewTagController(tagService *service.TagService) *TagController {
	return &TagController{TagService: tagService}
}

// --- tag categories ---

// ListCategories godoc
// @Summary List tag categories with their tags
// @Tags taxonomy
// @Produce json
// @Param all query bool false "include inactive (admin views)"
// @Success 200 {object} util.Response{data=[]model.TagCategory}
// @Router /api/tag-categories [get]
func (c *TagController) ListCategories(ctx *gin.Context) {
	activeOnly := ctx.Query("all") != "true"
	categories, err := c.TagService.ListCategories(activeOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// CreateCategory godoc
// @Summary Create a tag category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TagCategoryRequest true "tag category"
// @Success 201 {object} util.Response{data=model.TagCategory}
// @Failure 409 {object} util.Response "slug already taken"
// @Router /api/admin/tag-categories [post]
func (c *TagController) CreateCategory(ctx *gin.Context) {
	var req service.TagCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tc, err := c.TagService.CreateCategory(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, tc)
}

// UpdateCategory godoc
// @Summary Update a tag category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "tag category id"
// @Param body body service.TagCategoryRequest true "tag category"
// @Success 200 {object} util.Response{data=model.TagCategory}
// @Router /api/admin/tag-categories/{id} [put]
func (c *TagController) UpdateCategory(ctx *gin.Context) {
	var req service.TagCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tc, err := c.TagService.UpdateCategory(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, tc)
}

// DeleteCategory godoc
// @Summary Delete a tag category (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "tag category id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "tags still attached"
// @Router /api/admin/tag-categories/{id} [delete]
func (c *TagController) DeleteCategory(ctx *gin.Context) {
	if err := c.TagService.DeleteCategory(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// --- tags ---

// ListTags godoc
// @Summary List tags, optionally by category slug
// @Tags taxonomy
// @Produce json
// @Param category query string false "tag category slug"
// @Param all query bool false "include inactive"
// @Success 200 {object} util.Response{data=[]model.Tag}
// @Router /api/tags [get]
func (c *TagController) ListTags(ctx *gin.Context) {
	activeOnly := ctx.Query("all") != "true"
	tags, err := c.TagService.ListTags(ctx.Query("category"), activeOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}

// CreateTag godoc
// @Summary Create a tag (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TagRequest true "tag"
// @Success 201 {object} util.Response{data=model.Tag}
// @Failure 400 {object} util.Response "link URL on a category that disallows links"
// @Failure 409 {object} util.Response "slug already taken"
// @Router /api/admin/tags [post]
func (c *TagController) CreateTag(ctx *gin.Context) {
	var req service.TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tag, err := c.TagService.CreateTag(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, tag)
}

// UpdateTag godoc
// @Summary Update a tag (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "tag id"
// @Param body body service.TagRequest true "tag"
// @Success 200 {object} util.Response{data=model.Tag}
// @Router /api/admin/tags/{id} [put]
func (c *TagController) UpdateTag(ctx *gin.Context) {
	var req service.TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tag, err := c.TagService.UpdateTag(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, tag)
}

// DeleteTag godoc
// @Summary Delete a tag (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "tag id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "clips still carry the tag"
// @Router /api/admin/tags/{id} [delete]
func (c *TagController) DeleteTag(ctx *gin.Context) {
	if err := c.TagService.DeleteTag(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
