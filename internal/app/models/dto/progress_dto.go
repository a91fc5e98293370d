package dto

import "github.com/yigit/uniportal/internal/app/models"

// MarkViewedRequest records that the caller opened an item of a course
type MarkViewedRequest struct {
	Kind   models.ContentKind `json:"kind" binding:"required,oneof=chapter td tp exam"`
	ItemID int64              `json:"itemId" binding:"required,min=1"`
}

// ProgressListResponse lists every tracked course of the caller
type ProgressListResponse struct {
	Courses []ProgressResponse `json:"courses"`
}

// BookmarksResponse lists the bookmarked course ids of the caller
type BookmarksResponse struct {
	CourseIDs []int64 `json:"courseIds"`
}
