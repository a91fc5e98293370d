package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/auth"
	"github.com/yigit/uniportal/internal/pkg/describer"
	"github.com/yigit/uniportal/internal/pkg/geocoding"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
	"github.com/yigit/uniportal/internal/pkg/markdown"
)

// maxAllocationSkips bounds how many already-taken numbers an allocation skips
const maxAllocationSkips = 1000

// Dependencies holds everything the services are built from
type Dependencies struct {
	Repos     *repositories.Repositories
	State     kvstore.Store
	JWT       *auth.JWTService
	Describer describer.Describer
	Geocoder  geocoding.Geocoder
	Markdown  *markdown.Renderer
	Location  *time.Location
	Logger    zerolog.Logger
}

// Services groups every application service
type Services struct {
	Auth        AuthService
	Users       UserService
	Settings    SettingsService
	Courses     CourseService
	Chapters    ChapterService
	Series      SeriesService
	Progress    ProgressService
	Bookmarks   BookmarkService
	Dashboard   DashboardService
	Payments    PaymentService
	Description DescriptionService
	Address     AddressService
}

// NewServices wires the services together
func NewServices(deps Dependencies) *Services {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Markdown == nil {
		deps.Markdown = markdown.NewRenderer()
	}
	repos := deps.Repos

	settings := NewSettingsService(repos.Settings, deps.Location, deps.Logger)
	progress := NewProgressService(repos.Chapters, repos.Series, deps.State, deps.Logger)
	bookmarks := NewBookmarkService(repos.Courses, deps.State, deps.Logger)
	courses := NewCourseService(repos, deps.Logger)
	series := NewSeriesService(repos, deps.Location, deps.Logger)

	return &Services{
		Auth:        NewAuthService(repos.Users, repos.Tokens, deps.JWT, deps.Logger),
		Users:       NewUserService(repos.Users, repos.Payments, repos.Tokens, deps.State, deps.Logger),
		Settings:    settings,
		Courses:     courses,
		Chapters:    NewChapterService(repos, deps.Location, deps.Logger),
		Series:      series,
		Progress:    progress,
		Bookmarks:   bookmarks,
		Dashboard:   NewDashboardService(courses, repos.Chapters, series, settings, progress, bookmarks, deps.Markdown, deps.Logger),
		Payments:    NewPaymentService(repos.Payments, repos.Users, deps.Location),
		Description: NewDescriptionService(deps.Describer, deps.Markdown),
		Address:     NewAddressService(deps.Geocoder),
	}
}

// allocateNumber draws from the counter until it returns a number not in taken.
// Each draw is a single NextSequence call; a failed draw is returned as is.
func allocateNumber(ctx context.Context, counters repositories.CounterRepository, key string, taken map[int64]bool) (int64, error) {
	for i := 0; i < maxAllocationSkips; i++ {
		n, err := counters.NextSequence(ctx, key)
		if err != nil {
			return 0, err
		}
		if !taken[n] {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: counter %s has no free value", apperrors.ErrSequenceUnavailable, key)
}

// loadContent lists the chapter and series ids currently attached to a course
func loadContent(ctx context.Context, chapters repositories.Repository[models.Resource], series repositories.Repository[models.Series], courseID int64) (domain.CourseContent, error) {
	chapterList, err := chapters.GetByParent(ctx, courseID)
	if err != nil {
		return domain.CourseContent{}, fmt.Errorf("error listing chapters: %w", err)
	}
	seriesList, err := series.GetByParent(ctx, courseID)
	if err != nil {
		return domain.CourseContent{}, fmt.Errorf("error listing series: %w", err)
	}
	return contentOf(chapterList, seriesList), nil
}

// contentOf groups chapter and series ids by content kind
func contentOf(chapters []*models.Resource, series []*models.Series) domain.CourseContent {
	var content domain.CourseContent
	for _, ch := range chapters {
		content.Chapters = append(content.Chapters, ch.ID)
	}
	for _, item := range series {
		switch item.Type {
		case models.SeriesTD:
			content.TD = append(content.TD, item.ID)
		case models.SeriesTP:
			content.TP = append(content.TP, item.ID)
		case models.SeriesExam:
			content.Exams = append(content.Exams, item.ID)
		}
	}
	return content
}

// syncCourseFlags recomputes hasCours/hasTD/hasTP/hasExam from the course's content
func syncCourseFlags(ctx context.Context, repos *repositories.Repositories, courseID int64) error {
	course, err := repos.Courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	content, err := loadContent(ctx, repos.Chapters, repos.Series, courseID)
	if err != nil {
		return err
	}

	hasCours, hasTD, hasTP, hasExam := len(content.Chapters) > 0, len(content.TD) > 0, len(content.TP) > 0, len(content.Exams) > 0
	if course.HasCours == hasCours && course.HasTD == hasTD && course.HasTP == hasTP && course.HasExam == hasExam {
		return nil
	}
	course.HasCours, course.HasTD, course.HasTP, course.HasExam = hasCours, hasTD, hasTP, hasExam
	return repos.Courses.Update(ctx, course)
}

// requireCourse loads a course, rejecting non-positive ids
func requireCourse(ctx context.Context, courses repositories.Repository[models.Course], id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	course, err := courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}
