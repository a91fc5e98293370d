package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/middleware"
)

// ChapterController handles chapter administration
type ChapterController struct {
	chapterService services.ChapterService
}

// NewChapterController creates a new ChapterController
func NewChapterController(chapterService services.ChapterService) *ChapterController {
	return &ChapterController{chapterService: chapterService}
}

// ListChapters lists the chapters of a course
// @Summary List chapters (admin)
// @Tags admin-chapters
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ChapterResponse} "Chapters"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/chapters [get]
func (c *ChapterController) ListChapters(ctx *gin.Context) {
	courseID, ok := requireQueryID(ctx, "courseId")
	if !ok {
		return
	}
	chapters, err := c.chapterService.ListChapters(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	out := make([]*dto.ChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, dto.NewChapterResponse(ch))
	}
	respondOK(ctx, out)
}

// CreateChapter handles chapter creation
// @Summary Create a chapter (admin)
// @Description A zero chapterNumber is allocated from the course counter
// @Tags admin-chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChapterRequest true "Chapter"
// @Success 201 {object} dto.APIResponse{data=dto.ChapterResponse} "Chapter created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Counter unavailable, retry"
// @Router /admin/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req dto.ChapterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	chapter, err := c.chapterService.CreateChapter(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, dto.NewChapterResponse(chapter))
}

// UpdateChapter replaces a chapter
// @Summary Update a chapter (admin)
// @Tags admin-chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param request body dto.ChapterRequest true "Chapter"
// @Success 200 {object} dto.APIResponse{data=dto.ChapterResponse} "Chapter updated"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChapterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	chapter, err := c.chapterService.UpdateChapter(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewChapterResponse(chapter))
}

// DeleteChapter deletes a chapter
// @Summary Delete a chapter (admin)
// @Tags admin-chapters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Chapter deleted"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.chapterService.DeleteChapter(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Chapter deleted"})
}

// ClearChapters deletes every chapter of a course
// @Summary Clear chapters (admin)
// @Tags admin-chapters
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeletedResponse} "Chapters deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/chapters [delete]
func (c *ChapterController) ClearChapters(ctx *gin.Context) {
	courseID, ok := requireQueryID(ctx, "courseId")
	if !ok {
		return
	}
	n, err := c.chapterService.ClearChapters(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.DeletedResponse{Deleted: n})
}
