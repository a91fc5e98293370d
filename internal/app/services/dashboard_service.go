package services

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/helpers"
	"github.com/yigit/uniportal/internal/pkg/markdown"
)

// Viewer identifies the caller of a student-facing read
type Viewer struct {
	UserID  int64
	IsAdmin bool
}

// DashboardService assembles the student-facing course views
type DashboardService interface {
	// BrowseCourses lists the catalog with the caller's bookmarks and progress
	BrowseCourses(ctx context.Context, viewer Viewer, q CourseQuery) (*dto.CourseListResponse, error)
	CourseDetail(ctx context.Context, viewer Viewer, courseID int64) (*dto.CourseDetailResponse, error)
	Dashboard(ctx context.Context, viewer Viewer, q CourseQuery) (*dto.DashboardResponse, error)
}

type dashboardServiceImpl struct {
	courses   CourseService
	chapters  repositories.Repository[models.Resource]
	series    SeriesService
	settings  SettingsService
	progress  ProgressService
	bookmarks BookmarkService
	markdown  *markdown.Renderer
	logger    zerolog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	courses CourseService,
	chapters repositories.Repository[models.Resource],
	series SeriesService,
	settings SettingsService,
	progress ProgressService,
	bookmarks BookmarkService,
	renderer *markdown.Renderer,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		courses:   courses,
		chapters:  chapters,
		series:    series,
		settings:  settings,
		progress:  progress,
		bookmarks: bookmarks,
		markdown:  renderer,
		logger:    logger,
	}
}

// annotated lists the filtered courses with their bookmark flag and progress
func (s *dashboardServiceImpl) annotated(ctx context.Context, viewer Viewer, q CourseQuery) ([]*dto.CourseResponse, error) {
	bookmarks := s.bookmarks.Set(ctx, viewer.UserID)
	q.Filter.Bookmarks = bookmarks

	courses, err := s.courses.FindCourses(ctx, q.Filter, q.Sort)
	if err != nil {
		return nil, err
	}
	progress := s.progress.All(ctx, viewer.UserID)

	out := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp := dto.NewCourseResponse(c)
		resp.Bookmarked = bookmarks[c.ID]
		pct := domain.Percentage(progress[c.ID])
		resp.Progress = &pct
		out = append(out, resp)
	}
	return out, nil
}

func (s *dashboardServiceImpl) BrowseCourses(ctx context.Context, viewer Viewer, q CourseQuery) (*dto.CourseListResponse, error) {
	courses, err := s.annotated(ctx, viewer, q)
	if err != nil {
		return nil, err
	}
	page, info := domain.Paginate(courses, q.Page)
	return &dto.CourseListResponse{Courses: page, Pagination: helpers.NewPaginationInfo(info)}, nil
}

func (s *dashboardServiceImpl) render(src string) string {
	if src == "" {
		return ""
	}
	html, err := s.markdown.Render(src)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to render description")
		return ""
	}
	return html
}

func (s *dashboardServiceImpl) CourseDetail(ctx context.Context, viewer Viewer, courseID int64) (*dto.CourseDetailResponse, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	chapters, err := s.chapters.GetByParent(ctx, courseID)
	if err != nil {
		return nil, err
	}
	series, err := s.series.ListSeries(ctx, courseID, "")
	if err != nil {
		return nil, err
	}
	gate := s.settings.Gate(ctx)

	progress, err := s.progress.Reconcile(ctx, viewer.UserID, courseID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", viewer.UserID).Int64("courseID", courseID).Msg("Failed to reconcile progress")
		progress = s.progress.All(ctx, viewer.UserID)[courseID]
		domain.Reconcile(&progress, contentOf(chapters, series))
		domain.Normalize(&progress)
	}

	resp := &dto.CourseDetailResponse{
		Course:   dto.NewCourseResponse(course),
		Chapters: make([]*dto.ChapterResponse, 0, len(chapters)),
		Series: dto.SeriesGroups{
			TD:   []*dto.SeriesResponse{},
			TP:   []*dto.SeriesResponse{},
			Exam: []*dto.SeriesResponse{},
		},
		Gate: gate,
		Progress: dto.ProgressResponse{
			CourseID:   courseID,
			Percentage: domain.Percentage(progress),
			Progress:   progress,
		},
	}
	resp.Course.DescriptionHTML = s.render(course.Description)
	resp.Course.Bookmarked = s.bookmarks.Set(ctx, viewer.UserID)[courseID]
	resp.Course.Progress = &resp.Progress.Percentage

	for _, ch := range chapters {
		item := dto.NewChapterResponse(ch)
		item.DescriptionHTML = s.render(ch.Description)
		item.Viewed = domain.IsViewed(progress, models.KindChapter, ch.ID)
		resp.Chapters = append(resp.Chapters, item)
	}

	for _, item := range ViewSeries(series, gate, viewer.IsAdmin) {
		item.Viewed = domain.IsViewed(progress, models.KindForSeries(item.Type), item.ID)
		switch item.Type {
		case models.SeriesTD:
			resp.Series.TD = append(resp.Series.TD, item)
		case models.SeriesTP:
			resp.Series.TP = append(resp.Series.TP, item)
		default:
			resp.Series.Exam = append(resp.Series.Exam, item)
		}
	}
	return resp, nil
}

func (s *dashboardServiceImpl) Dashboard(ctx context.Context, viewer Viewer, q CourseQuery) (*dto.DashboardResponse, error) {
	courses, err := s.annotated(ctx, viewer, q)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		AcademicYear:    q.Filter.AcademicYear,
		CoursesPerLevel: make(map[models.Level]int, len(models.Levels)),
		CreditsPerLevel: make(map[models.Level]int, len(models.Levels)),
	}
	total := 0
	for _, c := range courses {
		switch c.Status {
		case models.CourseStatusActive:
			resp.Counts.Active++
		case models.CourseStatusCompleted:
			resp.Counts.Completed++
		case models.CourseStatusUpcoming:
			resp.Counts.Upcoming++
		}
		resp.CoursesPerLevel[c.Level]++
		resp.CreditsPerLevel[c.Level] += c.Credits
		total += *c.Progress
	}
	if len(courses) > 0 {
		resp.AverageProgress = int(math.Round(float64(total) / float64(len(courses))))
	}

	page, info := domain.Paginate(courses, q.Page)
	resp.Courses = page
	resp.Pagination = helpers.NewPaginationInfo(info)
	return resp, nil
}
