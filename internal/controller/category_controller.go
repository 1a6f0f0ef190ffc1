package controller

import (
	"github.com/gin-gonic/gin"

	"referee_training_backend/internal/service"
	"referee_training_backend/internal/util"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// List godoc
// @Summary List question categories
// @Tags categories
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.CategoryService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// Get godoc
// @Summary Fetch one category
// @Tags categories
// @Produce json
// @Param id path string true "category id"
// @Success 200 {object} util.Response{data=model.Category}
// @Failure 404 {object} util.Response
// @Router /api/categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	category, err := c.CategoryService.Get(ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// Create godoc
// @Summary Create a category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CategoryRequest true "category"
// @Success 201 {object} util.Response{data=model.Category}
// @Failure 409 {object} util.Response "slug already taken"
// @Router /api/admin/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	category, err := c.CategoryService.Create(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// Update godoc
// @Summary Update a category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "category id"
// @Param body body service.CategoryRequest true "category"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/admin/categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	category, err := c.CategoryService.Update(ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// Delete godoc
// @Summary Delete a category (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "category id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "category still referenced"
// @Router /api/admin/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	if err := c.CategoryService.Delete(ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
