package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/middleware"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// CourseController handles the course catalog, course pages and the dashboard
type CourseController struct {
	courseService    services.CourseService
	dashboardService services.DashboardService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, dashboardService services.DashboardService) *CourseController {
	return &CourseController{
		courseService:    courseService,
		dashboardService: dashboardService,
	}
}

// ListCourses lists the catalog for the caller
// @Summary Browse courses
// @Description Filters, sorts and pages the catalog; each course carries the caller's bookmark flag and progress
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param level query string false "Level" Enums(L1, L2, L3, M1, M2)
// @Param semester query int false "Semester" Enums(1, 2)
// @Param academicYear query string false "Academic year range, matches intersecting courses" example(2023-2024)
// @Param search query string false "Case-insensitive search over code, name and professor"
// @Param status query string false "Status" Enums(Active, Completed, Upcoming)
// @Param bookmarked query bool false "Only bookmarked courses"
// @Param sort query string false "Sort key" Enums(code, name, professor, credits)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	resp, err := c.dashboardService.BrowseCourses(ctx.Request.Context(), viewer(ctx), courseQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// GetCourseDetail returns the course page
// @Summary Course detail
// @Description Chapters by number, series grouped by type, the solution gate and the caller's reconciled progress
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course detail"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseDetail(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.dashboardService.CourseDetail(ctx.Request.Context(), viewer(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// Dashboard returns the year dashboard
// @Summary Year dashboard
// @Description Filtered courses with progress, counts by status and per-level totals
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param academicYear query string false "Academic year" example(2023-2024)
// @Param level query string false "Level"
// @Param semester query int false "Semester"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Router /dashboard [get]
func (c *CourseController) Dashboard(ctx *gin.Context) {
	resp, err := c.dashboardService.Dashboard(ctx.Request.Context(), viewer(ctx), courseQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

func courseResponses(courses []*models.Course) []*dto.CourseResponse {
	out := make([]*dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, dto.NewCourseResponse(course))
	}
	return out
}

// AdminListCourses lists courses for the admin table
// @Summary List courses (admin)
// @Tags admin-courses
// @Produce json
// @Security BearerAuth
// @Param level query string false "Level"
// @Param semester query int false "Semester"
// @Param academicYear query string false "Academic year"
// @Param search query string false "Search"
// @Param status query string false "Status"
// @Param sort query string false "Sort key" Enums(code, name, professor, credits)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/courses [get]
func (c *CourseController) AdminListCourses(ctx *gin.Context) {
	q := courseQuery(ctx)
	q.Filter.BookmarkedOnly = false
	courses, info, err := c.courseService.ListCourses(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.CourseListResponse{Courses: courseResponses(courses), Pagination: helpers.NewPaginationInfo(info)})
}

// ExportCourses exports the filtered course table as CSV
// @Summary Export courses (admin)
// @Description Same filters as the admin list, without paging
// @Tags admin-courses
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Router /admin/courses/export [get]
func (c *CourseController) ExportCourses(ctx *gin.Context) {
	q := courseQuery(ctx)
	q.Filter.BookmarkedOnly = false
	courses, err := c.courseService.FindCourses(ctx.Request.Context(), q.Filter, q.Sort)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCSV(ctx, "courses", domain.ExportCSV(courses, domain.CourseColumns))
}

// CreateCourse handles course creation
// @Summary Create a course (admin)
// @Description An empty code is generated from codePrefix
// @Tags admin-courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 503 {object} dto.ErrorResponse "Could not allocate a code, retry"
// @Router /admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, dto.NewCourseResponse(course))
}

// UpdateCourse replaces a course
// @Summary Update a course (admin)
// @Tags admin-courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewCourseResponse(course))
}

// DeleteCourse deletes a course with its chapters and series
// @Summary Delete a course (admin)
// @Tags admin-courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Course deleted"})
}

// NextCode allocates the next course code of a prefix
// @Summary Next course code (admin)
// @Tags admin-courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NextCodeRequest true "Prefix"
// @Success 200 {object} dto.APIResponse{data=dto.NextCodeResponse} "Code"
// @Failure 503 {object} dto.ErrorResponse "Counter unavailable, retry"
// @Router /admin/courses/next-code [post]
func (c *CourseController) NextCode(ctx *gin.Context) {
	var req dto.NextCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	code, err := c.courseService.NextCode(ctx.Request.Context(), req.Prefix)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NextCodeResponse{Code: code})
}
