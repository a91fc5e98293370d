package dto

import (
	"time"

	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/domain"
)

// CourseRequest creates or replaces a course
type CourseRequest struct {
	Code         string              `json:"code" binding:"omitempty,max=32"`
	Name         string              `json:"name" binding:"required,min=2,max=255"`
	Professor    string              `json:"professor" binding:"max=255"`
	Level        models.Level        `json:"level" binding:"required,level"`
	Semester     int                 `json:"semester" binding:"required,oneof=1 2"`
	AcademicYear string              `json:"academicYear" binding:"required,academicyear"`
	Status       models.CourseStatus `json:"status" binding:"omitempty,coursestatus"`
	Credits      int                 `json:"credits" binding:"min=0,max=60"`
	Description  string              `json:"description"`
	// CodePrefix generates the code when Code is empty
	CodePrefix string `json:"codePrefix" binding:"omitempty,codeprefix"`
}

// NextCodeRequest asks for the next free course code of a prefix
type NextCodeRequest struct {
	Prefix string `json:"prefix" binding:"required,codeprefix"`
}

// NextCodeResponse carries a generated course code
type NextCodeResponse struct {
	Code string `json:"code" example:"INF004"`
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID              int64               `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Professor       string              `json:"professor"`
	Level           models.Level        `json:"level"`
	Semester        int                 `json:"semester"`
	AcademicYear    string              `json:"academicYear"`
	Status          models.CourseStatus `json:"status"`
	Credits         int                 `json:"credits"`
	Description     string              `json:"description"`
	DescriptionHTML string              `json:"descriptionHtml,omitempty"`
	HasCours        bool                `json:"hasCours"`
	HasTD           bool                `json:"hasTD"`
	HasTP           bool                `json:"hasTP"`
	HasExam         bool                `json:"hasExam"`
	Bookmarked      bool                `json:"bookmarked"`
	Progress        *int                `json:"progress,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// NewCourseResponse converts a course record
func NewCourseResponse(c *models.Course) *CourseResponse {
	return &CourseResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		Professor:    c.Professor,
		Level:        c.Level,
		Semester:     c.Semester,
		AcademicYear: c.AcademicYear,
		Status:       c.Status,
		Credits:      c.Credits,
		Description:  c.Description,
		HasCours:     c.HasCours,
		HasTD:        c.HasTD,
		HasTP:        c.HasTP,
		HasExam:      c.HasExam,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CourseListResponse is one page of courses
type CourseListResponse struct {
	Courses    []*CourseResponse `json:"courses"`
	Pagination PaginationInfo    `json:"pagination"`
}

// SeriesGroups lists a course's series by type
type SeriesGroups struct {
	TD   []*SeriesResponse `json:"td"`
	TP   []*SeriesResponse `json:"tp"`
	Exam []*SeriesResponse `json:"exam"`
}

// ProgressResponse is the progress of one course
type ProgressResponse struct {
	CourseID   int64                 `json:"courseId"`
	Percentage int                   `json:"percentage"`
	Progress   models.CourseProgress `json:"progress"`
}

// CourseDetailResponse is everything the course page shows
type CourseDetailResponse struct {
	Course   *CourseResponse     `json:"course"`
	Chapters []*ChapterResponse  `json:"chapters"`
	Series   SeriesGroups        `json:"series"`
	Gate     domain.Gate         `json:"gate"`
	Progress ProgressResponse    `json:"progress"`
}

// StatusCounts counts courses per lifecycle state
type StatusCounts struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Upcoming  int `json:"upcoming"`
}

// DashboardResponse is the year dashboard
type DashboardResponse struct {
	AcademicYear    string                 `json:"academicYear"`
	Courses         []*CourseResponse      `json:"courses"`
	Counts          StatusCounts           `json:"counts"`
	CoursesPerLevel map[models.Level]int   `json:"coursesPerLevel"`
	CreditsPerLevel map[models.Level]int   `json:"creditsPerLevel"`
	AverageProgress int                    `json:"averageProgress"`
	Pagination      PaginationInfo         `json:"pagination"`
}
