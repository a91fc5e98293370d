package dto

import (
	"time"

	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/domain"
)

// ChapterRequest creates or replaces a chapter.
// A zero ChapterNumber is allocated from the course's chapter counter.
type ChapterRequest struct {
	CourseID      int64  `json:"courseId" binding:"required,min=1"`
	ChapterNumber int    `json:"chapterNumber" binding:"min=0"`
	Title         string `json:"title" binding:"required,min=1,max=255"`
	Description   string `json:"description"`
	DocumentLink  string `json:"documentLink" binding:"omitempty,url"`
	Date          string `json:"date" example:"2024-02-15"`
}

// ChapterResponse is the public view of a chapter
type ChapterResponse struct {
	ID              int64      `json:"id"`
	CourseID        int64      `json:"courseId"`
	ChapterNumber   int        `json:"chapterNumber"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"descriptionHtml,omitempty"`
	DocumentLink    string     `json:"documentLink"`
	PreviewURL      string     `json:"previewUrl"`
	Date            *time.Time `json:"date,omitempty"`
	Viewed          bool       `json:"viewed"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewChapterResponse converts a chapter record
func NewChapterResponse(r *models.Resource) *ChapterResponse {
	return &ChapterResponse{
		ID:            r.ID,
		CourseID:      r.CourseID,
		ChapterNumber: r.ChapterNumber,
		Title:         r.Title,
		Description:   r.Description,
		DocumentLink:  r.DocumentLink,
		PreviewURL:    domain.PreviewURL(r.DocumentLink),
		Date:          r.Date,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
