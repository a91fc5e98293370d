package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/middleware"
)

// DescriptionController handles generated descriptions and document previews
type DescriptionController struct {
	descriptionService services.DescriptionService
}

// NewDescriptionController creates a new DescriptionController
func NewDescriptionController(descriptionService services.DescriptionService) *DescriptionController {
	return &DescriptionController{descriptionService: descriptionService}
}

// DescribeChapter generates a chapter description
// @Summary Describe a chapter (admin)
// @Tags admin-descriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChapterDescriptionRequest true "Chapter"
// @Success 200 {object} dto.APIResponse{data=dto.DescriptionResponse} "Description"
// @Failure 502 {object} dto.ErrorResponse "Generator failed"
// @Failure 503 {object} dto.ErrorResponse "Generator not configured"
// @Router /admin/descriptions/chapter [post]
func (c *DescriptionController) DescribeChapter(ctx *gin.Context) {
	var req dto.ChapterDescriptionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.descriptionService.DescribeChapter(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// DescribeSeries generates a series description
// @Summary Describe a series (admin)
// @Tags admin-descriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SeriesDescriptionRequest true "Series"
// @Success 200 {object} dto.APIResponse{data=dto.DescriptionResponse} "Description"
// @Failure 502 {object} dto.ErrorResponse "Generator failed"
// @Failure 503 {object} dto.ErrorResponse "Generator not configured"
// @Router /admin/descriptions/series [post]
func (c *DescriptionController) DescribeSeries(ctx *gin.Context) {
	var req dto.SeriesDescriptionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.descriptionService.DescribeSeries(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// Preview returns the embeddable form of a document link
// @Summary Document preview
// @Tags courses
// @Produce json
// @Param url query string true "Document link"
// @Param title query string false "Document title"
// @Success 200 {object} dto.APIResponse{data=dto.PreviewResponse} "Preview"
// @Failure 400 {object} dto.ErrorResponse "Invalid link"
// @Router /preview [get]
func (c *DescriptionController) Preview(ctx *gin.Context) {
	resp, err := c.descriptionService.Preview(ctx.Query("url"), ctx.Query("title"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}
