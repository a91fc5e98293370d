package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/middleware"
)

// SeriesController handles TD, TP and exam series administration
type SeriesController struct {
	seriesService services.SeriesService
}

// NewSeriesController creates a new SeriesController
func NewSeriesController(seriesService services.SeriesService) *SeriesController {
	return &SeriesController{seriesService: seriesService}
}

// adminView renders series with their solutions visible
var adminView = domain.Gate{SolutionsUnlocked: true}

// ListSeries lists the series of a course
// @Summary List series (admin)
// @Tags admin-series
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Param type query string false "Series type" Enums(TD, TP, Exam)
// @Success 200 {object} dto.APIResponse{data=[]dto.SeriesResponse} "Series"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/series [get]
func (c *SeriesController) ListSeries(ctx *gin.Context) {
	courseID, ok := requireQueryID(ctx, "courseId")
	if !ok {
		return
	}
	seriesType, ok := seriesTypeQuery(ctx)
	if !ok {
		return
	}
	series, err := c.seriesService.ListSeries(ctx.Request.Context(), courseID, seriesType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, services.ViewSeries(series, adminView, true))
}

// CreateSeries handles series creation
// @Summary Create a series (admin)
// @Description A zero number is allocated per course and type; an empty title is generated
// @Tags admin-series
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SeriesRequest true "Series"
// @Success 201 {object} dto.APIResponse{data=dto.SeriesResponse} "Series created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Counter unavailable, retry"
// @Router /admin/series [post]
func (c *SeriesController) CreateSeries(ctx *gin.Context) {
	var req dto.SeriesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	series, err := c.seriesService.CreateSeries(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, dto.NewSeriesResponse(series, false))
}

// UpdateSeries replaces a series
// @Summary Update a series (admin)
// @Tags admin-series
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Series ID"
// @Param request body dto.SeriesRequest true "Series"
// @Success 200 {object} dto.APIResponse{data=dto.SeriesResponse} "Series updated"
// @Failure 404 {object} dto.ErrorResponse "Series not found"
// @Router /admin/series/{id} [put]
func (c *SeriesController) UpdateSeries(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SeriesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	series, err := c.seriesService.UpdateSeries(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewSeriesResponse(series, false))
}

// DeleteSeries deletes a series
// @Summary Delete a series (admin)
// @Tags admin-series
// @Produce json
// @Security BearerAuth
// @Param id path int true "Series ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Series deleted"
// @Failure 404 {object} dto.ErrorResponse "Series not found"
// @Router /admin/series/{id} [delete]
func (c *SeriesController) DeleteSeries(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.seriesService.DeleteSeries(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Series deleted"})
}

// ClearSeries deletes the series of a course, optionally of one type
// @Summary Clear series (admin)
// @Tags admin-series
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Param type query string false "Series type" Enums(TD, TP, Exam)
// @Success 200 {object} dto.APIResponse{data=dto.DeletedResponse} "Series deleted"
// @Router /admin/series [delete]
func (c *SeriesController) ClearSeries(ctx *gin.Context) {
	courseID, ok := requireQueryID(ctx, "courseId")
	if !ok {
		return
	}
	seriesType, ok := seriesTypeQuery(ctx)
	if !ok {
		return
	}
	n, err := c.seriesService.ClearSeries(ctx.Request.Context(), courseID, seriesType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.DeletedResponse{Deleted: n})
}

// GenerateTitle previews a generated series title
// @Summary Generate a series title (admin)
// @Tags admin-series
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TitleRequest true "Title parts"
// @Success 200 {object} dto.APIResponse{data=dto.TitleResponse} "Title"
// @Router /admin/series/title [post]
func (c *SeriesController) GenerateTitle(ctx *gin.Context) {
	var req dto.TitleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	respondOK(ctx, dto.TitleResponse{Title: c.seriesService.GenerateTitle(&req)})
}
