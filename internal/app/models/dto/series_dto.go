package dto

import (
	"time"

	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/domain"
)

// SeriesRequest creates or replaces a series.
// A zero Number is allocated per course and type; an empty Title is generated.
type SeriesRequest struct {
	CourseID     int64             `json:"courseId" binding:"required,min=1"`
	Type         models.SeriesType `json:"type" binding:"required,seriestype"`
	Number       int               `json:"number" binding:"min=0"`
	Title        string            `json:"title" binding:"max=255"`
	ChapterTitle string            `json:"chapterTitle" binding:"max=255"`
	Language     string            `json:"language" binding:"omitempty,oneof=fr en"`
	DocumentLink string            `json:"documentLink" binding:"omitempty,url"`
	SolutionLink string            `json:"solutionLink" binding:"omitempty,url"`
	Date         string            `json:"date" example:"2024-03-01"`
}

// TitleRequest previews a generated series title
type TitleRequest struct {
	Type         models.SeriesType `json:"type" binding:"required,seriestype"`
	Language     string            `json:"language" binding:"omitempty,oneof=fr en"`
	Number       int               `json:"number" binding:"min=0"`
	ChapterTitle string            `json:"chapterTitle"`
	AcademicYear string            `json:"academicYear" binding:"omitempty,academicyear"`
}

// TitleResponse carries a generated title
type TitleResponse struct {
	Title string `json:"title" example:"TD1 : Logique : 2023-2024"`
}

// SeriesResponse is the public view of a series.
// SolutionLink is blank while the solution gate is locked for the caller.
type SeriesResponse struct {
	ID                 int64             `json:"id"`
	CourseID           int64             `json:"courseId"`
	Type               models.SeriesType `json:"type"`
	Number             int               `json:"number"`
	Title              string            `json:"title"`
	DocumentLink       string            `json:"documentLink"`
	PreviewURL         string            `json:"previewUrl"`
	SolutionLink       string            `json:"solutionLink"`
	SolutionPreviewURL string            `json:"solutionPreviewUrl,omitempty"`
	HasSolution        bool              `json:"hasSolution"`
	SolutionLocked     bool              `json:"solutionLocked"`
	Date               *time.Time        `json:"date,omitempty"`
	Viewed             bool              `json:"viewed"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// NewSeriesResponse converts a series record, hiding the solution when locked
func NewSeriesResponse(s *models.Series, locked bool) *SeriesResponse {
	resp := &SeriesResponse{
		ID:           s.ID,
		CourseID:     s.CourseID,
		Type:         s.Type,
		Number:       s.Number,
		Title:        s.Title,
		DocumentLink: s.DocumentLink,
		PreviewURL:   domain.PreviewURL(s.DocumentLink),
		HasSolution:  s.HasSolution,
		Date:         s.Date,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if locked && s.HasSolution {
		resp.SolutionLocked = true
		return resp
	}
	resp.SolutionLink = s.SolutionLink
	if s.SolutionLink != "" {
		resp.SolutionPreviewURL = domain.PreviewURL(s.SolutionLink)
	}
	return resp
}
