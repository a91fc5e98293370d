package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/auth"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/middleware"
)

// ProgressController handles viewed items and bookmarks of the caller
type ProgressController struct {
	progressService services.ProgressService
	bookmarkService services.BookmarkService
}

// NewProgressController creates a new ProgressController
func NewProgressController(progressService services.ProgressService, bookmarkService services.BookmarkService) *ProgressController {
	return &ProgressController{
		progressService: progressService,
		bookmarkService: bookmarkService,
	}
}

// ListProgress returns the caller's progress per course
// @Summary List progress
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProgressListResponse} "Progress"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /progress [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	userID := auth.SessionFrom(ctx).UserID()
	respondOK(ctx, dto.ProgressListResponse{Courses: c.progressService.ListProgress(ctx.Request.Context(), userID)})
}

// MarkViewed records an opened chapter or series
// @Summary Mark an item viewed
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.MarkViewedRequest true "Viewed item"
// @Success 200 {object} dto.APIResponse{data=dto.ProgressResponse} "Progress updated"
// @Failure 404 {object} dto.ErrorResponse "Course or item not found"
// @Router /progress/{courseId}/viewed [post]
func (c *ProgressController) MarkViewed(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}
	var req dto.MarkViewedRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	userID := auth.SessionFrom(ctx).UserID()
	resp, err := c.progressService.MarkViewed(ctx.Request.Context(), userID, courseID, req.Kind, req.ItemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// ListBookmarks returns the caller's bookmarked courses
// @Summary List bookmarks
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.BookmarksResponse} "Bookmarks"
// @Router /bookmarks [get]
func (c *ProgressController) ListBookmarks(ctx *gin.Context) {
	userID := auth.SessionFrom(ctx).UserID()
	respondOK(ctx, dto.BookmarksResponse{CourseIDs: c.bookmarkService.List(ctx.Request.Context(), userID)})
}

// AddBookmark bookmarks a course
// @Summary Bookmark a course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.BookmarksResponse} "Bookmarks"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /bookmarks/{courseId} [put]
func (c *ProgressController) AddBookmark(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}
	ids, err := c.bookmarkService.Add(ctx.Request.Context(), auth.SessionFrom(ctx).UserID(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.BookmarksResponse{CourseIDs: ids})
}

// RemoveBookmark removes a course bookmark
// @Summary Remove a bookmark
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.BookmarksResponse} "Bookmarks"
// @Router /bookmarks/{courseId} [delete]
func (c *ProgressController) RemoveBookmark(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}
	ids, err := c.bookmarkService.Remove(ctx.Request.Context(), auth.SessionFrom(ctx).UserID(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.BookmarksResponse{CourseIDs: ids})
}
